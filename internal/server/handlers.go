package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/phrasedrill/internal/judge"
	"github.com/example/phrasedrill/pkg/models"
)

// questionView is the question DTO served to clients. The answer key is
// withheld; click questions carry choices, typing questions carry hints.
type questionView struct {
	ID            string   `json:"id"`
	Skill         string   `json:"skill"`
	Mode          string   `json:"mode"`
	Module        string   `json:"module"`
	Category      string   `json:"category,omitempty"`
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices,omitempty"`
	HintFirstChar string   `json:"hint_first_char,omitempty"`
	HintLength    int      `json:"hint_length,omitempty"`
}

func toQuestionView(q models.Question) questionView {
	v := questionView{
		ID:       q.ID,
		Skill:    q.Skill,
		Mode:     q.Mode,
		Module:   q.Module,
		Category: q.Category,
		Prompt:   q.Prompt,
	}
	switch q.Mode {
	case models.ModeClick:
		v.Choices = q.Choices
	case models.ModeTyping:
		v.HintFirstChar = q.HintFirstChar
		v.HintLength = q.HintLength
	}
	return v
}

func parseLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0 // selector rejects it as invalid input
	}
	return n
}

// handleReviewBatch serves the multi-module balanced selection.
// GET /api/v1/review/batch?skill=writing&modules=lexicon,idiom&limit=10
func (s *Server) handleReviewBatch(c *gin.Context) {
	ctx, cancel := s.storeContext(c)
	defer cancel()

	var modules []string
	for _, m := range strings.Split(c.Query("modules"), ",") {
		if m = strings.TrimSpace(m); m != "" {
			modules = append(modules, m)
		}
	}

	ids, err := s.selector.BalancedDueItems(ctx, learnerID(c),
		c.Query("skill"), modules, parseLimit(c, 10), time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	// A sparse catalog is not an error; an empty batch is a valid day.
	c.JSON(http.StatusOK, gin.H{"item_ids": ids})
}

// handleDrillQuestions serves the single-module due-then-new selection bound
// to concrete questions.
// GET /api/v1/drill/questions?skill=writing&module=lexicon&mode=typing&category=x&limit=5
func (s *Server) handleDrillQuestions(c *gin.Context) {
	ctx, cancel := s.storeContext(c)
	defer cancel()

	skill := c.Query("skill")
	module := c.Query("module")
	category := c.Query("category")
	mode := c.Query("mode")
	limit := parseLimit(c, 5)

	ids, err := s.selector.DueThenNewItems(ctx, learnerID(c),
		skill, module, category, mode, limit, time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	questions, err := s.binder.Bind(ctx, ids, skill, mode, module, category, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, toQuestionView(q))
	}
	c.JSON(http.StatusOK, gin.H{"questions": views})
}

type answerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
	ElapsedMS  int    `json:"elapsed_ms"`
}

// handleDrillAnswer judges one submission.
// POST /api/v1/drill/answers
func (s *Server) handleDrillAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx, cancel := s.storeContext(c)
	defer cancel()

	result, err := s.judge.Submit(ctx, judge.Submission{
		LearnerID:  learnerID(c),
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
		ElapsedMS:  req.ElapsedMS,
	})
	if err != nil {
		if result == nil {
			abortWithError(c, err)
			return
		}
		// The answer was judged but the log write failed; return the
		// judgment with a warning rather than losing the result.
		c.JSON(http.StatusOK, gin.H{
			"is_correct":         result.IsCorrect,
			"correct_expression": result.CorrectExpression,
			"scheduled":          false,
			"warning":            "progress tracking is delayed",
		})
		return
	}

	resp := gin.H{
		"is_correct":         result.IsCorrect,
		"correct_expression": result.CorrectExpression,
		"scheduled":          result.Scheduled,
	}
	if result.ItemResolved && !result.Scheduled {
		resp["warning"] = "progress tracking is delayed"
	}
	c.JSON(http.StatusOK, resp)
}

// handleReviewStats serves a learner's progress summary.
// GET /api/v1/review/stats
func (s *Server) handleReviewStats(c *gin.Context) {
	ctx, cancel := s.storeContext(c)
	defer cancel()

	stats, err := s.stats.LearnerStats(ctx, learnerID(c), time.Now(), s.masteredStage)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
