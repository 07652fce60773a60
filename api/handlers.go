package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franklinfx2/master-trader-sub000/journal"
	"github.com/franklinfx2/master-trader-sub000/pkg/id"
	"github.com/franklinfx2/master-trader-sub000/trade"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.config.Version,
	})
}

// handleRules mines the journal. Insufficient data is still a 200: the
// report's status says so.
func (s *Server) handleRules(c *gin.Context) {
	recent, ok := s.recentParam(c, s.config.RecentTrades)
	if !ok {
		return
	}

	trades, err := s.store.ListRecentTrades(c.Request.Context(), recent)
	if err != nil {
		s.logger.Error().Err(err).Msg("list trades for mining")
		errorResponse(c, http.StatusInternalServerError, "Failed to load trades")
		return
	}

	rep, err := s.cache.Mine(c.Request.Context(), trades)
	if err != nil {
		errorResponse(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.cache.Stats())
}

func (s *Server) handleListTrades(c *gin.Context) {
	recent, ok := s.recentParam(c, 0)
	if !ok {
		return
	}

	trades, err := s.store.ListRecentTrades(c.Request.Context(), recent)
	if err != nil {
		s.logger.Error().Err(err).Msg("list trades")
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch trades")
		return
	}
	if trades == nil {
		trades = []trade.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades})
}

func (s *Server) handleGetTrade(c *gin.Context) {
	rec, err := s.store.GetTrade(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleCreateTrade(c *gin.Context) {
	var rec trade.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	outcome, err := trade.ParseOutcome(string(rec.Outcome))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	rec.Outcome = outcome
	if rec.TradeID == "" {
		rec.TradeID = id.NewAt(rec.ExecutedAt)
	}

	if err := s.store.RecordTrade(c.Request.Context(), rec); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleDeleteTrade(c *gin.Context) {
	if err := s.store.DeleteTrade(c.Request.Context(), c.Param("id")); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recentParam parses ?recent=N, writing a 400 when it is not a
// non-negative integer.
func (s *Server) recentParam(c *gin.Context, def int) (int, bool) {
	raw := c.Query("recent")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		errorResponse(c, http.StatusBadRequest, "recent must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, journal.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, journal.ErrDuplicateTrade):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, journal.ErrInvalidTrade):
		errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("journal store failed")
		errorResponse(c, http.StatusInternalServerError, "Journal store failed")
	}
}
