package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/phrasedrill/internal/database"
	"github.com/example/phrasedrill/pkg/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "test.db"))
	require.NoError(t, database.Connect())
	t.Cleanup(func() { database.Close() })
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportItems_CSV(t *testing.T) {
	setupTestDB(t)
	path := writeCSV(t, "items.csv",
		"id,skill,module,category,expression,ja_hint,typing_enabled\n"+
			"lex-1,writing,lexicon,graph,in contrast,対照的に,true\n"+
			"lex-2,writing,lexicon,graph,on the whole,全体として,false\n"+
			"bad-1,juggling,lexicon,graph,nope,,true\n")

	result, err := ImportItems(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "juggling")

	items, err := database.NewItemRepository().List(context.Background(),
		models.SkillWriting, models.ModuleLexicon, "graph")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "in contrast", items[0].Expression)
	assert.True(t, items[0].TypingEnabled)
	assert.False(t, items[1].TypingEnabled)
}

func TestImportItems_Rerunnable(t *testing.T) {
	setupTestDB(t)
	path := writeCSV(t, "items.csv",
		"id,skill,module,category,expression,ja_hint,typing_enabled\n"+
			"lex-1,writing,lexicon,,in contrast,,true\n")

	for i := 0; i < 2; i++ {
		_, err := ImportItems(context.Background(), path)
		require.NoError(t, err)
	}
	items, err := database.NewItemRepository().List(context.Background(),
		models.SkillWriting, models.ModuleLexicon, "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestImportQuestions_CSV(t *testing.T) {
	setupTestDB(t)

	// Items first: questions reference them.
	itemsPath := writeCSV(t, "items.csv",
		"id,skill,module,category,expression,ja_hint,typing_enabled\n"+
			"lex-1,writing,lexicon,graph,in contrast,,true\n")
	_, err := ImportItems(context.Background(), itemsPath)
	require.NoError(t, err)

	path := writeCSV(t, "questions.csv",
		"id,skill,mode,module,category,prompt,correct_expression,choices,item_id\n"+
			"q1,writing,click,lexicon,graph,pick one,in contrast,in contrast|for example|in short,lex-1\n"+
			"q2,writing,typing,lexicon,graph,however / by comparison,In Contrast.,,lex-1\n"+
			"q3,writing,click,lexicon,graph,pick one,in short,only-one-choice,\n")

	result, err := ImportQuestions(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)

	repo := database.NewQuestionRepository()

	click, err := repo.Get(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"in contrast", "for example", "in short"}, click.Choices)
	require.NotNil(t, click.ItemID)
	assert.Equal(t, "lex-1", *click.ItemID)

	// Typing hints are derived from the normalized answer key.
	typing, err := repo.Get(context.Background(), "q2")
	require.NoError(t, err)
	assert.Equal(t, "I", typing.HintFirstChar)
	assert.Equal(t, 10, typing.HintLength)
	assert.Nil(t, typing.Choices)
}
