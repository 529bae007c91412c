package router

import (
	"net/http"

	"fakeout/internal/handlers"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlayerHeader is set by the external identity provider in front of us.
// The id is opaque and already authenticated upstream.
const PlayerHeader = "X-Player-ID"

// PlayerResolver resolves the caller's player id. The first contact comes
// with the identity header; after that the id is pinned to the cookie
// session so in-game requests don't need to carry it. If the header and the
// session disagree, the header wins and the session is repinned.
func PlayerResolver(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		headerID := c.GetHeader(PlayerHeader)
		sessionID, _ := session.Get(handlers.PlayerIDContextKey).(string)

		playerID := sessionID
		if headerID != "" && headerID != sessionID {
			playerID = headerID
			session.Set(handlers.PlayerIDContextKey, headerID)
			if err := session.Save(); err != nil {
				log.Error("Failed to pin player id to session", zap.Error(err))
			}
		}

		if playerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no player identity"})
			return
		}

		c.Set(handlers.PlayerIDContextKey, playerID)
		c.Next()
	}
}
