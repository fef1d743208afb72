package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voicecart/voicecart-server/pkg/util"
)

// Context key for the shopper session.
const SessionIDKey = "session_id"

// SessionCookie carries the signed session token between requests.
const SessionCookie = "vc_session"

// SessionHeader is the header alternative for clients that do not use
// cookies.
const SessionHeader = "X-Session-Token"

// SessionMiddleware identifies the shopper session behind each request.
// The session token names the browser session only; it is not the backend
// credential, which lives in durable storage and stays opaque.
type SessionMiddleware struct {
	secret string
	ttl    time.Duration
}

func NewSessionMiddleware(secret string, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		secret: secret,
		ttl:    ttl,
	}
}

// Attach resolves the session from the request, issuing a fresh session
// when none is presented or the token no longer validates. A shopper with
// an expired token gets a new empty session rather than an error.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := c.GetHeader(SessionHeader)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				token = cookie
			}
		}

		if token != "" {
			if claims, err := util.ValidateSessionToken(token, m.secret); err == nil {
				c.Set(SessionIDKey, claims.SessionID)
				c.Next()
				return
			}
			log.Debug("Session token rejected, issuing a new session", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
		}

		sessionID := uuid.NewString()
		fresh, err := util.GenerateSessionToken(sessionID, m.secret, m.ttl)
		if err != nil {
			log.Error("Failed to issue session token", err, nil)
			c.AbortWithStatus(500)
			return
		}

		c.SetCookie(SessionCookie, fresh, int(m.ttl.Seconds()), "/", "", false, true)
		c.Header(SessionHeader, fresh)
		c.Set(SessionIDKey, sessionID)

		log.Debug("New shopper session issued", map[string]interface{}{
			"session_id": sessionID,
		})

		c.Next()
	}
}

// GetSessionID extracts the session id from context.
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(SessionIDKey)
	if !exists {
		return "", false
	}
	id, ok := sessionID.(string)
	return id, ok
}
