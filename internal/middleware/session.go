package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/internal/session"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/token"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "sessionId"

// sessionContextKey is the gin context key the current session lives under.
const sessionContextKey = "session"

// SessionMiddleware resolves the incoming session cookie against the store
// and attaches a session to the request context. The session is persisted
// lazily: just before the first byte of the response is written, and only
// when the session carries state. An empty session never sets a cookie.
func SessionMiddleware(store session.Store, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		incoming := ""
		var sess *session.Session

		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
			incoming = cookie
			if existing, ok := store.Get(cookie); ok {
				sess = existing
			}
		}
		if sess == nil {
			sess = session.New()
		}

		c.Set(sessionContextKey, sess)
		c.Writer = &sessionWriter{
			ResponseWriter: c.Writer,
			store:          store,
			sess:           sess,
			incoming:       incoming,
			secure:         cookieSecure,
		}

		c.Next()
	}
}

// GetSession returns the session attached by SessionMiddleware.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// sessionWriter intercepts the response so the session can be saved and the
// cookie issued before headers go out. Once headers are flushed the
// Set-Cookie window is gone, so the save has to run first.
type sessionWriter struct {
	gin.ResponseWriter
	store    session.Store
	sess     *session.Session
	incoming string
	secure   bool
	done     bool
}

func (w *sessionWriter) WriteHeader(code int) {
	w.save()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) WriteHeaderNow() {
	w.save()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.save()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.save()
	return w.ResponseWriter.WriteString(s)
}

// save persists the session and issues the cookie at most once per response.
// Sessions with no state are never stored, and a session already saved this
// request keeps its first token: later mutations don't reissue the cookie.
func (w *sessionWriter) save() {
	if w.done {
		return
	}
	w.done = true

	if w.sess.Empty() || w.sess.Saved() {
		return
	}

	tok := w.incoming
	if tok == "" {
		generated, err := token.NewSessionToken()
		if err != nil {
			logger.Error("failed to generate session token", zap.Error(err))
			return
		}
		tok = generated
	}

	w.sess.SetToken(tok)
	w.store.Put(tok, w.sess)
	w.sess.MarkSaved()

	http.SetCookie(w.ResponseWriter, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
