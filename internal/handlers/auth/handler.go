package auth

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/internal/domains/auth/model/dto"
	"backoffice/internal/domains/auth/service"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"backoffice/shared/validator"
	"backoffice/transport/http/middleware"
	"backoffice/transport/http/render"
	"backoffice/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	auth    middleware.Auth
	render  *render.Renderer
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Auth, auth middleware.Auth, render *render.Renderer, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		render:  render,
		cfg:     cfg,
		otel:    otel,
	}
}

type loginData struct {
	Next     string
	Username string
}

// Router mounts the routes reachable without a session.
func (handler *Handler) Router(r chi.Router) {
	r.Get(constant.RouteLogin, handler.LoginForm)
	r.Post(constant.RouteLogin, handler.Login)
}

// SessionRouter mounts the routes that act on the current session.
func (handler *Handler) SessionRouter(r chi.Router) {
	r.Post("/logout", handler.Logout)
}

func (handler *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".LoginForm")
	defer scope.End()

	next := response.LocalPath(r.URL.Query().Get(constant.RequestParamNext), constant.RouteHome)

	if !handler.cfg.LoginRequired() {
		response.SeeOther(w, r, next)

		return
	}

	handler.render.HTML(w, r, http.StatusOK, "login", render.Page{
		Title: "Sign in",
		Data:  loginData{Next: next},
	})
}

func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	next := response.LocalPath(r.PostFormValue(constant.RequestParamNext), constant.RouteHome)

	req := dto.LoginRequest{}
	req.FromRequest(r)

	data := loginData{Next: next, Username: req.Username}

	if errs := validator.ValidateForm(&req); errs != nil {
		handler.render.HTML(w, r, http.StatusUnprocessableEntity, "login", render.Page{
			Title:  "Sign in",
			Errors: errs,
			Data:   data,
		})

		return
	}

	actor, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("username", req.Username).Msg("login rejected")

		status := failure.GetCode(err)
		if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
			status = http.StatusOK
		}

		handler.render.HTML(w, r, status, "login", render.Page{
			Title: "Sign in",
			Error: failure.Message(err),
			Data:  data,
		})

		return
	}

	if _, err := handler.auth.Open(w, r, actor); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("actor", actor).Msg("failed to open session")

		handler.render.HTML(w, r, http.StatusInternalServerError, "login", render.Page{
			Title: "Sign in",
			Error: "Could not start a session, please try again",
			Data:  data,
		})

		return
	}

	scope.AddEvent("Operator signed in: " + actor)
	response.SeeOther(w, r, next)
}

func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	handler.auth.Close(w, r)

	target := constant.RouteHome
	if handler.cfg.LoginRequired() {
		target = constant.RouteLogin
	}

	response.SeeOther(w, r, target)
}
