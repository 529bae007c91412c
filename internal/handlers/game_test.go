package handlers

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fakeout/internal/game"
	"fakeout/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// nopStore satisfies game.DurableStore without any persistence.
type nopStore struct{}

func (nopStore) GetTotal(ctx context.Context, playerID string) (int64, error) { return 0, nil }
func (nopStore) IncrementTotal(ctx context.Context, playerID string, amount int64) (int64, error) {
	return amount, nil
}
func (nopStore) RecordOutcome(ctx context.Context, playerID string, wasPerfect bool, streak int, streakDate time.Time) error {
	return nil
}
func (nopStore) SaveArchive(ctx context.Context, arch *models.SessionArchive) error { return nil }

func newTestRouter(playerID string) (*gin.Engine, *game.Engine) {
	gin.SetMode(gin.TestMode)

	engine := game.NewEngine(zap.NewNop(), nopStore{}, game.Config{
		Rand: rand.NewSource(1),
	})
	h := NewGameHandler(zap.NewNop(), engine)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(PlayerIDContextKey, playerID)
		c.Next()
	})
	r.POST("/api/game/start", h.Start)
	r.GET("/api/game/options", h.Options)
	r.POST("/api/game/submit", h.Submit)
	r.GET("/api/player/stats", h.Stats)
	return r, engine
}

func TestGameHandler_StartAndOptions(t *testing.T) {
	r, _ := newTestRouter("p1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/start", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var start game.StartResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))
	assert.Equal(t, 1, start.Round)
	assert.NotEmpty(t, start.SessionID)
	assert.Len(t, start.ShownNumbers, 5)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/game/options?sessionId="+start.SessionID+"&nonce="+start.RoundNonce, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var opts game.OptionsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Len(t, opts.SelectionOptions, 3)
}

func TestGameHandler_SecondStartIs429(t *testing.T) {
	r, _ := newTestRouter("p1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/start", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/start", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "cooldownEndsAt")
}

func TestGameHandler_ErrorMapping(t *testing.T) {
	r, _ := newTestRouter("p1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/game/options?sessionId=missing&nonce=n", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/start", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var start game.StartResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))

	body := `{"sessionId":"` + start.SessionID + `","chosenNumber":123,"roundNonce":"bogus"}`
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/game/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/game/submit", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameHandler_Stats(t *testing.T) {
	r, _ := newTestRouter("p1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/player/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats game.StatsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.True(t, stats.CanPlay)
	assert.Zero(t, stats.TotalTokens)
}
