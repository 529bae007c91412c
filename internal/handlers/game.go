package handlers

import (
	"errors"
	"net/http"

	"fakeout/internal/game"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlayerIDContextKey is where the identity middleware stores the resolved
// player id for handlers to read.
const PlayerIDContextKey = "player_id"

type GameHandler struct {
	log    *zap.Logger
	engine *game.Engine
}

func NewGameHandler(log *zap.Logger, engine *game.Engine) *GameHandler {
	return &GameHandler{log: log, engine: engine}
}

// Start begins a session for the resolved player. 429 carries the cooldown
// end so the client can show a countdown.
func (h *GameHandler) Start(c *gin.Context) {
	playerID := c.GetString(PlayerIDContextKey)

	result, err := h.engine.StartSession(c.Request.Context(), playerID)
	if err != nil {
		var rl *game.RateLimitedError
		if errors.As(err, &rl) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":          "rate_limited",
				"cooldownEndsAt": rl.CooldownEndsAt,
			})
			return
		}
		h.log.Error("Failed to start session", zap.String("playerID", playerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Options returns the current round's answer set.
func (h *GameHandler) Options(c *gin.Context) {
	sessionID := c.Query("sessionId")
	nonce := c.Query("nonce")
	if sessionID == "" || nonce == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId and nonce are required"})
		return
	}

	result, err := h.engine.FetchOptions(sessionID, nonce)
	if err != nil {
		h.renderGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type submitRequest struct {
	SessionID    string `json:"sessionId" binding:"required"`
	ChosenNumber int    `json:"chosenNumber" binding:"required"`
	RoundNonce   string `json:"roundNonce" binding:"required"`
}

// Submit resolves one round of the player's session.
func (h *GameHandler) Submit(c *gin.Context) {
	playerID := c.GetString(PlayerIDContextKey)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.engine.SubmitAnswer(c.Request.Context(), playerID, req.SessionID, req.ChosenNumber, req.RoundNonce)
	if err != nil {
		h.renderGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Stats is the read-only player view used by the host platform.
func (h *GameHandler) Stats(c *gin.Context) {
	playerID := c.GetString(PlayerIDContextKey)
	c.JSON(http.StatusOK, h.engine.PlayerStats(c.Request.Context(), playerID))
}

// renderGameError maps the engine's error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500; storage problems never reach here.
func (h *GameHandler) renderGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, game.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "session belongs to another player"})
	case errors.Is(err, game.ErrInvalidNonce):
		c.JSON(http.StatusConflict, gin.H{"error": "stale or mismatched nonce"})
	case errors.Is(err, game.ErrAlreadyCompleted):
		c.JSON(http.StatusGone, gin.H{"error": "session already completed"})
	default:
		h.log.Error("Unexpected game error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
