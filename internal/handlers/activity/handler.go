package activity

import (
	"backoffice/infras/otel"
	"backoffice/internal/domains/activity/model"
	"backoffice/internal/domains/activity/model/dto"
	"backoffice/internal/domains/activity/service"
	"backoffice/shared/constant"
	gDto "backoffice/shared/dto"
	"backoffice/shared/failure"
	"backoffice/transport/http/middleware"
	"backoffice/transport/http/render"
	"backoffice/transport/http/response"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var (
	entities = []string{model.EntityMedia, model.EntityTag, model.EntityTodo}
	actions  = []string{
		model.ActionCreate,
		model.ActionUpdate,
		model.ActionDelete,
		model.ActionUpload,
		model.ActionAssociate,
		model.ActionDissociate,
	}
)

type Handler struct {
	service service.Activity
	render  *render.Renderer
	otel    otel.Otel
}

func New(service service.Activity, render *render.Renderer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		render:  render,
		otel:    otel,
	}
}

type listData struct {
	List     dto.ListResponse
	Entities []string
	Actions  []string
	PrevURL  string
	NextURL  string
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/activity", handler.GetActivities)
}

// GetActivities renders one page of console mutations, newest first.
func (handler *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivities")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	filter := dto.Filter{}
	filter.FromRequest(r)

	list, err := handler.service.List(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list activities")

		sess.Banner.SetError(failure.Message(err))

		// An unknown entity or action filter: start over unfiltered.
		if failure.GetCode(err) == http.StatusBadRequest {
			response.SeeOther(w, r, "/activity")

			return
		}

		list = dto.ListResponse{Filter: filter, Pagination: gDto.NewPagination(params, 0)}
	}

	data := listData{
		List:     list,
		Entities: entities,
		Actions:  actions,
	}

	if list.HasPrev() {
		data.PrevURL = pageURL(r.URL.Query(), list.Page-1)
	}

	if list.HasNext() {
		data.NextURL = pageURL(r.URL.Query(), list.Page+1)
	}

	handler.render.HTML(w, r, http.StatusOK, "activity", render.Page{
		Title: "Activity",
		Data:  data,
	})
}

func pageURL(query url.Values, page int) string {
	next := url.Values{}
	for key, values := range query {
		next[key] = append([]string(nil), values...)
	}

	next.Set(constant.RequestParamPage, strconv.Itoa(page))

	return "/activity?" + next.Encode()
}
