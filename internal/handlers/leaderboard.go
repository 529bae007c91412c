package handlers

import (
	"net/http"
	"strconv"

	"fakeout/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultLeaderboardSize = 10

type LeaderboardHandler struct {
	log *zap.Logger
}

func NewLeaderboardHandler(log *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{log: log}
}

type leaderboardEntry struct {
	Rank            int    `json:"rank"`
	PlayerID        string `json:"playerId"`
	TotalTokens     int64  `json:"totalTokens"`
	PerfectSessions int64  `json:"perfectSessions"`
	CurrentStreak   int    `json:"currentStreak"`
}

// Top returns the highest token totals from the durable store.
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit := defaultLeaderboardSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	rows, err := repository.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("Failed to load leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}

	entries := make([]leaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, leaderboardEntry{
			Rank:            i + 1,
			PlayerID:        row.PlayerID,
			TotalTokens:     row.TotalTokens,
			PerfectSessions: row.PerfectSessions,
			CurrentStreak:   row.CurrentStreak,
		})
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
