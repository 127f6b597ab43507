// Package server exposes the engine over HTTP/JSON. The transport is a thin
// shell: learner identity comes from a header, every store call runs under a
// bounded timeout and engine errors map onto status codes.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/phrasedrill/internal/judge"
	"github.com/example/phrasedrill/internal/selection"
	"github.com/example/phrasedrill/pkg/models"
)

// learnerKey is the gin context key holding the authenticated learner ID
const learnerKey = "learner_id"

// StatsSource reads learner progress summaries
type StatsSource interface {
	LearnerStats(ctx context.Context, learnerID int64, asOf time.Time, masteredStage int) (map[string]interface{}, error)
}

// Server wires the engine components behind HTTP routes
type Server struct {
	selector      *selection.Selector
	binder        *selection.Binder
	judge         *judge.Judge
	stats         StatsSource
	storeTimeout  time.Duration
	masteredStage int
	engine        *gin.Engine
}

// New creates a server around the engine components
func New(sel *selection.Selector, binder *selection.Binder, j *judge.Judge, stats StatsSource, storeTimeout time.Duration, masteredStage int) *Server {
	s := &Server{
		selector:      sel,
		binder:        binder,
		judge:         j,
		stats:         stats,
		storeTimeout:  storeTimeout,
		masteredStage: masteredStage,
	}
	s.engine = s.buildRouter()
	return s
}

// Handler returns the HTTP handler for serving or testing
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on addr until the listener fails
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api := router.Group("/api/v1")
	api.Use(requireLearner())
	{
		api.GET("/review/batch", s.handleReviewBatch)
		api.GET("/review/stats", s.handleReviewStats)
		api.GET("/drill/questions", s.handleDrillQuestions)
		api.POST("/drill/answers", s.handleDrillAnswer)
	}
	return router
}

// requireLearner extracts the caller-supplied learner identity. The engine
// does no authentication of its own; an absent or malformed header is the
// only rejection.
func requireLearner() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Learner-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-Learner-ID header"})
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid X-Learner-ID header"})
			return
		}
		c.Set(learnerKey, id)
		c.Next()
	}
}

func learnerID(c *gin.Context) int64 {
	return c.GetInt64(learnerKey)
}

// storeContext bounds every store call so a stalled database fails the
// request instead of hanging it
func (s *Server) storeContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.storeTimeout)
}

// httpStatus maps engine errors onto status codes
func httpStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(httpStatus(err), gin.H{"error": err.Error()})
}
