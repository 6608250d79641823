package tag

import (
	"backoffice/infras/otel"
	mediaModel "backoffice/internal/domains/media/model"
	"backoffice/internal/domains/tag/model"
	"backoffice/internal/domains/tag/model/dto"
	"backoffice/internal/domains/tag/service"
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
	service service.Tag
	render  *render.Renderer
	otel    otel.Otel
}

func New(service service.Tag, render *render.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		render:  render,
		otel:    otel,
	}
}

type listData struct {
	Tags  []model.Tag
	Form  dto.TagRequest
	Types []string
}

type editData struct {
	ID       string
	NotFound bool
	Form     dto.TagRequest
	Types    []string
}

type mediaData struct {
	Tag      model.Tag
	NotFound bool
	Media    []mediaModel.Media
}

func (handler *Handler) Router(router chi.Router) {
	router.Route(constant.RouteTags, func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTags)
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/{id}/edit", handler.Edit)
		routerGroup.Post("/{id}", handler.Update)
		routerGroup.Post("/{id}/delete", handler.Delete)
		routerGroup.Get("/{id}/media", handler.GetMedia)
	})
}

func (handler *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTags")
	defer scope.End()

	handler.renderList(w, r, http.StatusOK, dto.TagRequest{Type: model.TypeAll}, nil)
}

func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Create")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	req := dto.TagRequest{}
	req.FromRequest(r)

	if errs := validator.ValidateForm(&req); errs != nil {
		handler.renderList(w, r, http.StatusUnprocessableEntity, req, errs)

		return
	}

	tag, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create tag")

		sess.Banner.SetError(failure.Message(err))
		handler.renderList(w, r, http.StatusOK, req, nil)

		return
	}

	sess.Banner.SetSuccess("Created tag " + tag.Name)
	response.SeeOther(w, r, constant.RouteTags)
}

func (handler *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Edit")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	tag, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		if failure.IsNotFound(err) {
			handler.render.HTML(w, r, http.StatusNotFound, "tag_edit", render.Page{
				Title: "Tag not found",
				Data:  editData{ID: id, NotFound: true, Types: model.Types},
			})

			return
		}

		log.Error().Err(err).Str("id", id).Msg("failed to get tag")
		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, constant.RouteTags)

		return
	}

	form := dto.TagRequest{}
	form.FromModel(tag)

	handler.render.HTML(w, r, http.StatusOK, "tag_edit", render.Page{
		Title: "Edit " + tag.Name,
		Data:  editData{ID: id, Form: form, Types: model.Types},
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

	req := dto.TagRequest{}
	req.FromRequest(r)

	if errs := validator.ValidateForm(&req); errs != nil {
		handler.render.HTML(w, r, http.StatusUnprocessableEntity, "tag_edit", render.Page{
			Title:  "Edit tag",
			Errors: errs,
			Data:   editData{ID: id, Form: req, Types: model.Types},
		})

		return
	}

	tag, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update tag")

		status := http.StatusOK
		if failure.IsNotFound(err) {
			status = http.StatusNotFound
		}

		sess.Banner.SetError(failure.Message(err))
		handler.render.HTML(w, r, status, "tag_edit", render.Page{
			Title: "Edit tag",
			Data:  editData{ID: id, Form: req, Types: model.Types, NotFound: status == http.StatusNotFound},
		})

		return
	}

	sess.Banner.SetSuccess("Updated tag " + tag.Name)
	response.SeeOther(w, r, constant.RouteTags)
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
		log.Error().Err(err).Str("id", id).Msg("failed to delete tag")

		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, constant.RouteTags)

		return
	}

	sess.Banner.SetSuccess("Tag deleted")
	response.SeeOther(w, r, constant.RouteTags)
}

// GetMedia lists the media carrying a tag.
func (handler *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMedia")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	tag, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		if failure.IsNotFound(err) {
			handler.render.HTML(w, r, http.StatusNotFound, "tag_media", render.Page{
				Title: "Tag not found",
				Data:  mediaData{NotFound: true},
			})

			return
		}

		log.Error().Err(err).Str("id", id).Msg("failed to get tag")
		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, constant.RouteTags)

		return
	}

	media, err := handler.service.GetMedia(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get tag media")
		sess.Banner.SetError(failure.Message(err))
	}

	handler.render.HTML(w, r, http.StatusOK, "tag_media", render.Page{
		Title: "Media tagged " + tag.Name,
		Data:  mediaData{Tag: tag, Media: media},
	})
}

func (handler *Handler) renderList(w http.ResponseWriter, r *http.Request, status int, form dto.TagRequest, errs validator.FieldErrors) {
	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	tags, err := handler.service.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch tags")
		sess.Banner.SetError(failure.Message(err))
	} else {
		sess.Tags.SetAll(tags)
	}

	handler.render.HTML(w, r, status, "tags", render.Page{
		Title:  "Tags",
		Errors: errs,
		Data: listData{
			Tags:  sess.Tags.All(),
			Form:  form,
			Types: model.Types,
		},
	})
}
