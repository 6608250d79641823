package media

import (
	"backoffice/infras/otel"
	"backoffice/internal/domains/media/model"
	"backoffice/internal/domains/media/model/dto"
	"backoffice/internal/domains/media/service"
	tagModel "backoffice/internal/domains/tag/model"
	tagService "backoffice/internal/domains/tag/service"
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
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	modeFile    = "file"
	modeYouTube = "youtube"

	// Multipart framing and the text fields on top of the file itself.
	uploadOverheadBytes = 1 << 20
)

type Handler struct {
	service service.Media
	tags    tagService.Tag
	render  *render.Renderer
	otel    otel.Otel
}

func New(service service.Media, tags tagService.Tag, render *render.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		tags:    tags,
		render:  render,
		otel:    otel,
	}
}

type listData struct {
	Filter  model.Filter
	Tags    []tagModel.Tag
	Items   []model.Media
	HasMore bool
}

type uploadData struct {
	Mode        string
	Title       string
	Description string
	YouTubeURL  string
	TagIDs      []string
	Tags        []tagModel.Tag
}

type editData struct {
	Media     model.Media
	NotFound  bool
	Available []tagModel.Tag
}

func (handler *Handler) Router(router chi.Router) {
	router.Route(constant.RouteMedia, func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMedia)
		routerGroup.Get("/more", handler.GetMoreMedia)
		routerGroup.Get("/upload", handler.UploadForm)
		routerGroup.Get("/upload/tags", handler.GetOfferedTags)
		routerGroup.Post("/upload", handler.Upload)
		routerGroup.Post("/youtube", handler.CreateYouTube)
		routerGroup.Get("/{id}/edit", handler.Edit)
		routerGroup.Post("/{id}/delete", handler.Delete)
		routerGroup.Post("/{id}/tags", handler.AddTag)
		routerGroup.Post("/{id}/tags/{tagId}/delete", handler.RemoveTag)
	})
}

// GetMedia renders the media list. Every visit takes a new filter snapshot and
// loads the first page; later pages come from GetMoreMedia.
func (handler *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMedia")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	filter := dto.FilterFromQuery(r.URL.Query())

	handler.refreshTags(r, sess)

	if _, err := sess.Media.LoadInitial(ctx, filter); err != nil && !errors.Is(err, pager.ErrStale) {
		scope.TraceError(err)
		log.Error().Err(err).Str("title", filter.Title).Strs("tag_ids", filter.TagIDs).Msg("failed to load media list")
	}

	state := sess.Media.State()

	handler.render.HTML(w, r, http.StatusOK, "media_list", render.Page{
		Title: "Media",
		Error: state.Error,
		Data: listData{
			Filter:  state.Filter,
			Tags:    sess.Tags.All(),
			Items:   state.Items,
			HasMore: state.HasMore,
		},
	})
}

// GetMoreMedia appends the next page of the session's media list.
// @Summary Load the next media page
// @Description Appends the next page of the current media list of the session. Answers loaded=false without calling the backend when a load is already running or the list is exhausted. Backend failures are reported in error with the list left unchanged.
// @Tags Media
// @Produce json
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 401 {object} response.Error
// @Router /media/more [get]
func (handler *Handler) GetMoreMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMoreMedia")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	page, loaded, err := sess.Media.LoadMore(ctx)
	res := dto.PageResponse{Media: []model.Media{}, HTML: []string{}, Loaded: loaded}

	switch {
	case errors.Is(err, pager.ErrStale):
		scope.AddEvent("stale media page discarded")
	case err != nil:
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load more media")

		res.Error = failure.Message(err)
	default:
		res.Media = append(res.Media, page.Items...)

		for _, item := range page.Items {
			html, err := handler.render.Fragment("media-card", item)
			if err != nil {
				log.Error().Err(err).Str("media_id", item.ID).Msg("failed to render media card")

				continue
			}

			res.HTML = append(res.HTML, html)
		}
	}

	state := sess.Media.State()
	res.Offset = state.Offset
	res.HasMore = state.HasMore

	response.WithJSON(w, http.StatusOK, res)
}

// UploadForm renders the upload form in file or YouTube mode.
func (handler *Handler) UploadForm(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadForm")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	handler.refreshTags(r, sess)

	mode := modeFile
	tags := sess.Tags.Offer(r.URL.Query().Get(constant.RequestParamType))

	if r.URL.Query().Get("mode") == modeYouTube {
		mode = modeYouTube
		tags = sess.Tags.Offer(model.TypeVideo)
	}

	handler.render.HTML(w, r, http.StatusOK, "media_upload", render.Page{
		Title: "Upload media",
		Data:  uploadData{Mode: mode, Tags: tags},
	})
}

// GetOfferedTags lists the tags that can be attached to media of the given type.
// @Summary Tags offered for a media type
// @Description Tags of type "all" plus those matching type. An empty type offers only the "all" tags.
// @Tags Media
// @Produce json
// @Param type query string false "Media type" Enums(image, audio, video)
// @Success 200 {object} response.Data[[]tagModel.Tag]
// @Failure 401 {object} response.Error
// @Router /media/upload/tags [get]
func (handler *Handler) GetOfferedTags(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfferedTags")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	if len(sess.Tags.All()) == 0 {
		handler.refreshTags(r, sess)
	}

	response.WithJSON(w, http.StatusOK, sess.Tags.Offer(r.URL.Query().Get(constant.RequestParamType)))
}

// Upload stores a new image or audio file. Validation failures re-render the form
// without calling the backend.
func (handler *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Upload")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constant.MaxUploadBytes+uploadOverheadBytes)

	req := dto.UploadRequest{}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to parse upload form")

		handler.renderUpload(w, r, sess, uploadData{Mode: modeFile}, validator.FieldErrors{
			model.FieldFile: uploadParseMessage(err),
		})

		return
	}

	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	req.FromRequest(r)
	sess.Tags.Offer(req.MediaType())

	if errs := validator.ValidateForm(&req); errs != nil {
		handler.renderUpload(w, r, sess, uploadData{
			Mode:        modeFile,
			Title:       req.Title,
			Description: req.Description,
			TagIDs:      req.TagIDs,
		}, errs)

		return
	}

	media, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload media")

		sess.Banner.SetError(failure.Message(err))
		handler.renderUpload(w, r, sess, uploadData{
			Mode:        modeFile,
			Title:       req.Title,
			Description: req.Description,
			TagIDs:      req.TagIDs,
		}, nil)

		return
	}

	scope.AddEvent("Media uploaded by " + sess.Actor)
	sess.Banner.SetSuccess("Uploaded " + media.Title)

	response.SeeOther(w, r, constant.RouteMedia)
}

// CreateYouTube registers a YouTube video as media.
func (handler *Handler) CreateYouTube(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateYouTube")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	req := dto.YouTubeRequest{}
	req.FromRequest(r)

	data := uploadData{
		Mode:        modeYouTube,
		Title:       req.Title,
		Description: req.Description,
		YouTubeURL:  req.YouTubeURL,
		TagIDs:      req.TagIDs,
	}

	if errs := validator.ValidateForm(&req); errs != nil {
		handler.renderUpload(w, r, sess, data, errs)

		return
	}

	media, err := handler.service.CreateYouTube(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create youtube media")

		sess.Banner.SetError(failure.Message(err))
		handler.renderUpload(w, r, sess, data, nil)

		return
	}

	scope.AddEvent("YouTube media created by " + sess.Actor)
	sess.Banner.SetSuccess("Added " + media.Title)

	response.SeeOther(w, r, constant.RouteMedia)
}

// Edit shows one media item with its tags. An unknown ID renders the not-found state.
func (handler *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Edit")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	media, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		if failure.IsNotFound(err) {
			handler.render.HTML(w, r, http.StatusNotFound, "media_edit", render.Page{
				Title: "Media not found",
				Data:  editData{NotFound: true},
			})

			return
		}

		log.Error().Err(err).Str("id", id).Msg("failed to get media")
		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, constant.RouteMedia)

		return
	}

	handler.refreshTags(r, sess)

	handler.render.HTML(w, r, http.StatusOK, "media_edit", render.Page{
		Title: media.Title,
		Data: editData{
			Media:     media,
			Available: available(sess.Tags.All(), media),
		},
	})
}

// Delete removes a media item and drops it from the session's list.
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)
	next := response.LocalPath(r.PostFormValue(constant.RequestParamNext), response.Referer(r, constant.RouteMedia))

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete media")

		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, next)

		return
	}

	sess.Media.Remove(func(m model.Media) bool { return m.ID == id })
	sess.Banner.SetSuccess("Media deleted")
	scope.AddEvent("Media deleted by " + sess.Actor)

	response.SeeOther(w, r, next)
}

// AddTag attaches a tag to a media item.
func (handler *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddTag")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)
	back := constant.RouteMedia + "/" + id + "/edit"

	req := dto.AssociateRequest{TagID: r.PostFormValue(model.FieldTagID)}
	if err := validator.ValidateStruct(&req); err != nil {
		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, back)

		return
	}

	if err := handler.service.AddTag(ctx, id, req.TagID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Str("tag_id", req.TagID).Msg("failed to associate tag")

		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, back)

		return
	}

	sess.Banner.SetSuccess("Tag added")
	response.SeeOther(w, r, back)
}

// RemoveTag detaches a tag from a media item.
func (handler *Handler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveTag")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)
	tagID := chi.URLParam(r, constant.RequestParamTagID)
	back := constant.RouteMedia + "/" + id + "/edit"

	if err := handler.service.RemoveTag(ctx, id, tagID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Str("tag_id", tagID).Msg("failed to remove tag")

		sess.Banner.SetError(failure.Message(err))
		response.SeeOther(w, r, back)

		return
	}

	sess.Banner.SetSuccess("Tag removed")
	response.SeeOther(w, r, back)
}

func (handler *Handler) renderUpload(w http.ResponseWriter, r *http.Request, sess *session.Session, data uploadData, errs validator.FieldErrors) {
	handler.refreshTags(r, sess)

	if data.Mode == modeYouTube {
		data.Tags = sess.Tags.Offer(model.TypeVideo)
	} else {
		data.Tags = sess.Tags.Offered()
	}

	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}

	handler.render.HTML(w, r, status, "media_upload", render.Page{
		Title:  "Upload media",
		Errors: errs,
		Data:   data,
	})
}

// refreshTags reloads the session's tag list; a failure keeps the previous list and sets the banner.
func (handler *Handler) refreshTags(r *http.Request, sess *session.Session) {
	tags, err := handler.tags.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch tags")
		sess.Banner.SetError(failure.Message(err))

		return
	}

	sess.Tags.SetAll(tags)
}

// available lists the tags that apply to media and are not attached yet.
func available(tags []tagModel.Tag, media model.Media) []tagModel.Tag {
	return slices.DeleteFunc(tagModel.Offered(tags, media.Type), func(t tagModel.Tag) bool {
		return media.HasTag(t.ID)
	})
}

func uploadParseMessage(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return "file must not be larger than 100 MB"
	}

	return "file is required"
}
