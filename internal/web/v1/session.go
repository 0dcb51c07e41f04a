package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynhne/post-service/internal/core/domain"
	logicv1 "github.com/duynhne/post-service/internal/logic/v1"
	pkgzerolog "github.com/duynhne/post-service/pkg/logger/zerolog"
)

// tokenRecordKey is the gin context key of the admitted token record.
const tokenRecordKey = "session.token"

// RequireSession admits the request only when the raw Authorization header
// names a stored, unexpired token. The header value is used verbatim.
func RequireSession(gate *logicv1.SessionGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := gate.Admit(c.Request.Context(), c.GetHeader("Authorization"))
		if !d.Admitted() {
			pkgzerolog.FromContext(c.Request.Context()).Warn().
				Err(d.Reason).
				Str("path", c.Request.URL.Path).
				Msg("Session rejected")

			loggedIn := false
			abortWith(c, http.StatusUnauthorized, stamped(Envelope{
				Success:   false,
				IsLogined: &loggedIn,
				Message:   d.Message,
			}))
			return
		}

		c.Set(tokenRecordKey, d.Record)
		c.Next()
	}
}

// SessionRecord returns the token record admitted by RequireSession, or nil.
func SessionRecord(c *gin.Context) *domain.TokenRecord {
	v, ok := c.Get(tokenRecordKey)
	if !ok {
		return nil
	}
	rec, _ := v.(*domain.TokenRecord)
	return rec
}
