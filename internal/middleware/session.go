package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/hanamizu/collab-api/internal/constants"
)

// SessionUserID reads the logged-in user directly from the session store,
// independent of RequireAuth. Used by login/logout/register to guard session
// state transitions.
func SessionUserID(c *gin.Context) (uint64, bool) {
	session := sessions.Default(c)
	value := session.Get(constants.ContextKeyUserID)
	if value == nil {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// StartSession marks the session as belonging to the given user.
func StartSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

// EndSession clears the session.
func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
