package home

import (
	"backoffice/infras/otel"
	calendarModel "backoffice/internal/domains/calendar/model"
	calendarService "backoffice/internal/domains/calendar/service"
	mediaService "backoffice/internal/domains/media/service"
	tagService "backoffice/internal/domains/tag/service"
	"backoffice/shared/constant"
	"backoffice/shared/failure"
	"backoffice/shared/timezone"
	"backoffice/transport/http/middleware"
	"backoffice/transport/http/render"
	"backoffice/transport/http/response"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	media    mediaService.Media
	tags     tagService.Tag
	calendar calendarService.Calendar
	render   *render.Renderer
	otel     otel.Otel
}

func New(
	media mediaService.Media,
	tags tagService.Tag,
	calendar calendarService.Calendar,
	render *render.Renderer,
	otel otel.Otel,
) Handler {
	return Handler{
		media:    media,
		tags:     tags,
		calendar: calendar,
		render:   render,
		otel:     otel,
	}
}

type homeData struct {
	MediaCount int
	TagCount   int
	Calendar   calendarModel.View
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Home)
	router.Get("/calendar", handler.GetCalendar)
	router.Post("/banner/dismiss", handler.DismissBanner)
}

// Home renders the dashboard: media and tag counts plus the month calendar.
func (handler *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Home")
	defer scope.End()

	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	data := homeData{}

	media, err := handler.media.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count media")
		sess.Banner.SetError(failure.Message(err))
	}

	tags, err := handler.tags.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count tags")
		sess.Banner.SetError(failure.Message(err))
	} else {
		sess.Tags.SetAll(tags)
	}

	data.MediaCount = len(media)
	data.TagCount = len(tags)

	// The grid is drawn even when the range fetch fails; the message is in the view.
	data.Calendar, err = handler.calendar.View(ctx, MonthFromQuery(r.URL.Query(), timezone.Now()))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load calendar")
	}

	handler.render.HTML(w, r, http.StatusOK, "home", render.Page{Title: "Dashboard", Data: data})
}

// GetCalendar returns the month grid with its TODOs.
// @Summary Month calendar
// @Description Returns the 42-cell grid of the requested month with the TODOs of each day. Defaults to the current month.
// @Tags Calendar
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month, 1-12"
// @Success 200 {object} response.Data[calendarModel.View]
// @Failure 502 {object} response.Error
// @Router /calendar [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	view, err := handler.calendar.View(ctx, MonthFromQuery(r.URL.Query(), timezone.Now()))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, view)
}

// DismissBanner clears the error banner and goes back to the page it was shown on.
func (handler *Handler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.CurrentSession(w, r)
	if !ok {
		return
	}

	sess.Banner.DismissError()
	sess.Media.DismissError()
	sess.Undated.DismissError()

	response.SeeOther(w, r, response.Referer(r, constant.RouteHome))
}

// MonthFromQuery reads ?year&month, falling back to the month of now for missing or invalid values.
func MonthFromQuery(query url.Values, now time.Time) calendarModel.Month {
	year, month := now.Year(), now.Month()

	if value, err := strconv.Atoi(query.Get(constant.RequestParamYear)); err == nil && value > 0 {
		year = value
	}

	if value, err := strconv.Atoi(query.Get(constant.RequestParamMonth)); err == nil && value >= 1 && value <= 12 {
		month = time.Month(value)
	}

	return calendarModel.NewMonth(year, month, timezone.GetLocation())
}
