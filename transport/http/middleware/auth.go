package middleware

import (
	"backoffice/config"
	"backoffice/infras/jwt"
	"backoffice/infras/otel"
	"backoffice/internal/session"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"backoffice/transport/http/response"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Auth resolves the console session of every request from the signed session cookie.
type Auth interface {
	Session(next http.Handler) http.Handler
	// Open starts a session for actor and sets its cookie.
	Open(w http.ResponseWriter, r *http.Request, actor string) (*session.Session, error)
	// Close drops the current session and clears its cookie.
	Close(w http.ResponseWriter, r *http.Request)
}

type authImpl struct {
	jwtService jwt.JWT
	store      *session.Store
	otel       otel.Otel
	cfg        *config.Config
}

func NewAuthMiddleware(jwtService jwt.JWT, store *session.Store, otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		jwtService: jwtService,
		store:      store,
		otel:       otel,
		cfg:        cfg,
	}
}

// Session attaches the caller's session to the request context.
// With a password configured, callers without a valid cookie are sent to the login page;
// otherwise they get a guest session on first contact.
func (m *authImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "session.middleware")

		claims, err := m.claims(r)
		if err == nil {
			sess, created, err := m.store.GetOrCreate(claims.SessionID, claims.Actor)
			if err != nil {
				scope.TraceError(err)
				scope.End()
				response.WithError(w, failure.InternalError(err))

				return
			}

			// Sessions do not survive a restart or the idle sweep; the signed cookie does.
			if created {
				if err := m.setCookie(w, r, sess); err != nil {
					scope.TraceError(err)
					scope.End()
					response.WithError(w, failure.InternalError(err))

					return
				}
			}

			scope.SetAttributes(map[string]any{
				"session.actor":   sess.Actor,
				"session.created": created,
			})
			scope.End()

			next.ServeHTTP(w, r.WithContext(session.WithContext(ctx, sess)))

			return
		}

		if m.cfg.LoginRequired() {
			scope.SetAttribute("session.reason", err.Error())
			scope.End()

			if response.WantsJSON(r) {
				response.WithError(w, failure.SessionExpired)

				return
			}

			response.ToLogin(w, r)

			return
		}

		sess, err := m.Open(w, r, constant.ContextGuest)
		if err != nil {
			scope.TraceError(err)
			scope.End()
			response.WithError(w, failure.InternalError(err))

			return
		}

		scope.SetAttribute("session.actor", sess.Actor)
		scope.End()

		next.ServeHTTP(w, r.WithContext(session.WithContext(ctx, sess)))
	})
}

func (m *authImpl) Open(w http.ResponseWriter, r *http.Request, actor string) (*session.Session, error) {
	if cookie, err := r.Cookie(constant.SessionCookieName); err == nil {
		if claims, err := m.jwtService.ValidateSession(cookie.Value); err == nil {
			m.store.Delete(claims.SessionID)
		}
	}

	sess, err := m.store.Create(actor)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	if err := m.setCookie(w, r, sess); err != nil {
		m.store.Delete(sess.ID)

		return nil, err
	}

	log.Info().Str("actor", actor).Str("session_id", sess.ID).Msg("session started")

	return sess, nil
}

func (m *authImpl) Close(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		m.store.Delete(sess.ID)
		log.Info().Str("actor", sess.Actor).Str("session_id", sess.ID).Msg("session closed")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constant.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *authImpl) claims(r *http.Request) (*jwt.Claims, error) {
	cookie, err := r.Cookie(constant.SessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("no session cookie: %w", err)
	}

	claims, err := m.jwtService.ValidateSession(cookie.Value)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			log.Debug().Msg("session cookie expired")
		}

		return nil, fmt.Errorf("invalid session cookie: %w", err)
	}

	// A guest cookie does not open a console that now requires a password.
	if m.cfg.LoginRequired() && claims.Actor == constant.ContextGuest {
		return nil, errors.New("guest session on a protected console")
	}

	return claims, nil
}

func (m *authImpl) setCookie(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	token, expiresAt, err := m.jwtService.IssueSession(sess.Actor, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to issue session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constant.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// CurrentSession returns the session attached by Session. Without one the caller
// is answered with the login redirect (or a 401 for scripts) and ok is false.
func CurrentSession(w http.ResponseWriter, r *http.Request) (sess *session.Session, ok bool) {
	if sess, ok = session.FromContext(r.Context()); ok {
		return sess, true
	}

	if response.WantsJSON(r) {
		response.WithError(w, failure.SessionExpired)
	} else {
		response.ToLogin(w, r)
	}

	return nil, false
}
