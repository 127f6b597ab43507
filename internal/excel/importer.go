// Package excel imports catalog content from Excel or CSV files produced by
// the content pipeline. Items and questions are upserted, so re-running an
// import is safe.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/phrasedrill/internal/database"
	"github.com/example/phrasedrill/internal/normalize"
	"github.com/example/phrasedrill/pkg/models"
)

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Item rows: id, skill, module, category, expression, ja_hint, typing_enabled
const itemColumns = 7

// Question rows: id, skill, mode, module, category, prompt,
// correct_expression, choices (pipe-separated), item_id
const questionColumns = 9

// ImportItems imports items from an Excel or CSV file
func ImportItems(ctx context.Context, filePath string) (*ImportResult, error) {
	rows, err := readRows(filePath, itemColumns)
	if err != nil {
		return nil, err
	}

	repo := database.NewItemRepository()
	result := &ImportResult{}
	for i, row := range rows {
		result.TotalProcessed++
		item, err := parseItemRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		if err := repo.Upsert(ctx, item); err != nil {
			return result, fmt.Errorf("row %d: %v", i+2, err)
		}
		result.Created++
	}
	return result, nil
}

// ImportQuestions imports questions from an Excel or CSV file. Typing hints
// are derived here, from the normalized answer key, so they always agree
// with the matching rule.
func ImportQuestions(ctx context.Context, filePath string) (*ImportResult, error) {
	rows, err := readRows(filePath, questionColumns)
	if err != nil {
		return nil, err
	}

	repo := database.NewQuestionRepository()
	result := &ImportResult{}
	for i, row := range rows {
		result.TotalProcessed++
		q, err := parseQuestionRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		if err := repo.Upsert(ctx, q); err != nil {
			return result, fmt.Errorf("row %d: %v", i+2, err)
		}
		result.Created++
	}
	return result, nil
}

func parseItemRow(row []string) (*models.Item, error) {
	id := strings.TrimSpace(row[0])
	if id == "" {
		return nil, fmt.Errorf("missing item id")
	}
	skill := strings.TrimSpace(row[1])
	if !models.ValidSkill(skill) {
		return nil, fmt.Errorf("unknown skill %q", skill)
	}
	module := strings.TrimSpace(row[2])
	if !models.ValidModule(module) {
		return nil, fmt.Errorf("unknown module %q", module)
	}
	expression := strings.TrimSpace(row[4])
	if expression == "" {
		return nil, fmt.Errorf("missing expression")
	}
	return &models.Item{
		ID:            id,
		Skill:         skill,
		Module:        module,
		Category:      strings.TrimSpace(row[3]),
		Expression:    expression,
		JaHint:        strings.TrimSpace(row[5]),
		TypingEnabled: parseBool(row[6]),
	}, nil
}

func parseQuestionRow(row []string) (*models.Question, error) {
	id := strings.TrimSpace(row[0])
	if id == "" {
		return nil, fmt.Errorf("missing question id")
	}
	skill := strings.TrimSpace(row[1])
	if !models.ValidSkill(skill) {
		return nil, fmt.Errorf("unknown skill %q", skill)
	}
	mode := strings.TrimSpace(row[2])
	if !models.ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	module := strings.TrimSpace(row[3])
	if !models.ValidModule(module) {
		return nil, fmt.Errorf("unknown module %q", module)
	}
	prompt := strings.TrimSpace(row[5])
	if prompt == "" {
		return nil, fmt.Errorf("missing prompt")
	}
	correct := strings.TrimSpace(row[6])
	if correct == "" {
		return nil, fmt.Errorf("missing correct expression")
	}

	q := &models.Question{
		ID:                id,
		Skill:             skill,
		Mode:              mode,
		Module:            module,
		Category:          strings.TrimSpace(row[4]),
		Prompt:            prompt,
		CorrectExpression: correct,
	}
	switch mode {
	case models.ModeClick:
		for _, choice := range strings.Split(row[7], "|") {
			if choice = strings.TrimSpace(choice); choice != "" {
				q.Choices = append(q.Choices, choice)
			}
		}
		if len(q.Choices) < 2 {
			return nil, fmt.Errorf("click question needs at least two choices")
		}
	case models.ModeTyping:
		canonical := normalize.Normalize(correct)
		q.HintFirstChar = normalize.FirstCharHint(canonical)
		q.HintLength = normalize.LengthHint(canonical)
	}
	if itemID := strings.TrimSpace(row[8]); itemID != "" {
		q.ItemID = &itemID
	}
	return q, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// readRows reads the data rows of an .xlsx or .csv file, padding each row to
// at least want columns. The header row is skipped.
func readRows(filePath string, want int) ([][]string, error) {
	var rows [][]string
	var err error
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		rows, err = readCSV(filePath)
	} else {
		rows, err = readExcel(filePath)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}
	for i := range rows {
		for len(rows[i]) < want {
			rows[i] = append(rows[i], "")
		}
	}
	return rows, nil
}

func readExcel(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", sheet, err)
	}
	return rows, nil
}

func readCSV(filePath string) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
