package todo

import (
	"backoffice/infras/otel"
	"backoffice/internal/domains/todo/model"
	"backoffice/internal/domains/todo/model/dto"
	"backoffice/internal/domains/todo/service"
	"backoffice/internal/session"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"backoffice/shared/pager"
	"backoffice/shared/validator"
	"backoffice/transport/http/middleware"
	"backoffice/transport/http/render"
	"backoffice/transport/http/response"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const dateLayoutTag = "datetime=2006-01-02"

type Handler struct {
	service service.Todo
	render  *render.Renderer
	otel    otel.Otel
}

func New(service service.Todo, render *render.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		render:  render,
		otel:    otel,
	}
}

type formData struct {
	ID       string
	NotFound bool
	Form     dto.TodoRequest
}

type dateData struct {
	Date  string
	Todos []model.Todo
}

type undatedData struct {
	Todos   []model.Todo
	HasMore bool
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Get("/new", handler.NewForm)
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/date", handler.GetByDate)
		routerGroup.Get("/without-due-date", handler.GetWithoutDueDate)
		routerGroup.Get("/without-due-date/more", handler.GetMoreWithoutDueDate)
		routerGroup.Get("/{id}/edit", handler.Edit)
		routerGroup.Post("/{id}", handler.Update)
		routerGroup.Post("/{id}/delete", handler.Delete)
	})
}

// NewForm renders an empty TODO form. A valid ?date= preselects a due date on that day.
func (handler *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".NewForm")
	defer scope.End()

	form := dto.TodoRequest{DateKind: model.DateKindNone}

	if date := r.URL.Query().Get(constant.RequestParamDate); date != "" && validator.ValidateVar(date, dateLayoutTag) == nil {
		form.DateKind = model.DateKindDue
		form.DueDate = date
	}

	handler.render.HTML(w, r, http.StatusOK, "todo_form", render.Page{
		Title: "New TODO",
		Data:  formData{Form: form},
	})
}

func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Create")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	req := dto.TodoRequest{}
	req.FromRequest(r)

	if errs := validator.ValidateForm(&req); errs != nil {
		handler.render.HTML(w, r, http.StatusUnprocessableEntity, "todo_form", render.Page{
			Title:  "New TODO",
			Errors: errs,
			Data:   formData{Form: req},
		})

		return
	}

	todo, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		sess.Banner.SetError(failure.Message(err))
		handler.render.HTML(w, r, http.StatusOK, "todo_form", render.Page{
			Title: "New TODO",
			Data:  formData{Form: req},
		})

		return
	}

	sess.Banner.SetSuccess("Created " + todo.Title)
	response.SeeOther(w, r, afterSave(todo))
}

func (handler *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Edit")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	todo, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		if failure.IsNotFound(err) {
			handler.render.HTML(w, r, http.StatusNotFound, "todo_form", render.Page{
				Title: "TODO not found",
				Data:  formData{ID: id, NotFound: true},
			})

			return
		}

		log.Error().Err(err).Str("id", id).Msg("failed to get todo")
		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, constant.RouteHome)

		return
	}

	form := dto.TodoRequest{}
	form.FromModel(todo)

	handler.render.HTML(w, r, http.StatusOK, "todo_form", render.Page{
		Title: "Edit " + todo.Title,
		Data:  formData{ID: id, Form: form},
	})
}

func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Update")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.TodoRequest{}
	req.FromRequest(r)

	if errs := validator.ValidateForm(&req); errs != nil {
		handler.render.HTML(w, r, http.StatusUnprocessableEntity, "todo_form", render.Page{
			Title:  "Edit TODO",
			Errors: errs,
			Data:   formData{ID: id, Form: req},
		})

		return
	}

	todo, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update todo")

		status := http.StatusOK
		if failure.IsNotFound(err) {
			status = http.StatusNotFound
		}

		sess.Banner.SetError(failure.Message(err))
		handler.render.HTML(w, r, status, "todo_form", render.Page{
			Title: "Edit TODO",
			Data:  formData{ID: id, Form: req, NotFound: status == http.StatusNotFound},
		})

		return
	}

	// A TODO that gained a date no longer belongs to the undated list.
	if todo.DateKind() != model.DateKindNone {
		sess.Undated.Remove(func(t model.Todo) bool { return t.ID == id })
	}

	sess.Banner.SetSuccess("Updated " + todo.Title)
	response.SeeOther(w, r, afterSave(todo))
}

func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, constant.RouteTodosUndated)

		return
	}

	sess.Undated.Remove(func(t model.Todo) bool { return t.ID == id })
	sess.Banner.SetSuccess("TODO deleted")

	response.SeeOther(w, r, constant.RouteHome)
}

// GetByDate lists the TODOs of one day.
func (handler *Handler) GetByDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetByDate")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get(constant.RequestParamDate)
	if err := validator.ValidateVar(date, "required,"+dateLayoutTag); err != nil {
		sess.Banner.SetError("date must be a YYYY-MM-DD day")
		response.SeeOther(w, r, constant.RouteHome)

		return
	}

	todos, err := handler.service.GetByDate(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("failed to get todos by date")
		sess.Banner.SetError(failure.Message(err))
	}

	handler.render.HTML(w, r, http.StatusOK, "todos_date", render.Page{
		Title: "TODOs on " + date,
		Data:  dateData{Date: date, Todos: todos},
	})
}

// GetWithoutDueDate renders the first page of TODOs without any date.
func (handler *Handler) GetWithoutDueDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWithoutDueDate")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	if _, err := sess.Undated.LoadInitial(ctx, pager.NoFilter{}); err != nil && !errors.Is(err, pager.ErrStale) {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load todos without due date")
	}

	state := sess.Undated.State()

	handler.render.HTML(w, r, http.StatusOK, "todos_undated", render.Page{
		Title: "TODOs without due date",
		Error: state.Error,
		Data: undatedData{
			Todos:   state.Items,
			HasMore: state.HasMore,
		},
	})
}

// GetMoreWithoutDueDate appends the next page of TODOs without any date.
// @Summary Load the next page of TODOs without due date
// @Description Appends the next page of the session's undated TODO list. Answers loaded=false without calling the backend when a load is already running or the list is exhausted.
// @Tags Todo
// @Produce json
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 401 {object} response.Error
// @Router /todos/without-due-date/more [get]
func (handler *Handler) GetMoreWithoutDueDate(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMoreWithoutDueDate")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	response.WithJSON(w, http.StatusOK, handler.loadMore(r, sess))
}

func (handler *Handler) loadMore(r *http.Request, sess *session.Session) dto.PageResponse {
	page, loaded, err := sess.Undated.LoadMore(r.Context())
	res := dto.PageResponse{Todos: []model.Todo{}, HTML: []string{}, Loaded: loaded}

	switch {
	case errors.Is(err, pager.ErrStale):
	case err != nil:
		log.Error().Err(err).Msg("failed to load more todos")

		res.Error = failure.Message(err)
	default:
		res.Todos = append(res.Todos, page.Items...)

		for _, item := range page.Items {
			html, err := handler.render.Fragment("todo-row", item)
			if err != nil {
				log.Error().Err(err).Str("todo_id", item.ID).Msg("failed to render todo row")

				continue
			}

			res.HTML = append(res.HTML, html)
		}
	}

	state := sess.Undated.State()
	res.Offset = state.Offset
	res.HasMore = state.HasMore

	return res
}

// afterSave sends dated TODOs to their day and undated ones to the undated list.
func afterSave(todo model.Todo) string {
	switch {
	case todo.HasPeriod():
		return "/todos/date?" + url.Values{constant.RequestParamDate: {todo.StartDay()}}.Encode()
	case todo.HasDueDate():
		return "/todos/date?" + url.Values{constant.RequestParamDate: {todo.DueDay()}}.Encode()
	}

	return constant.RouteTodosUndated
}
