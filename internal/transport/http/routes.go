package http

import (
	"net/http"
	"time"

	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Route: строка таблицы маршрутов; Name используется в метриках.
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handler http.HandlerFunc
	// Stream: долгоживущее соединение, без Timeout.
	Stream bool
}

// Routes: явная таблица маршрутов сервиса. ws может быть nil.
func (h *Handler) Routes(ws http.HandlerFunc) []Route {
	routes := []Route{
		{Method: http.MethodGet, Pattern: "/meetings", Name: "meetings.index", Handler: h.ListMeetings},
		{Method: http.MethodGet, Pattern: "/meetings.ics", Name: "meetings.calendar", Handler: h.MeetingsCalendar},
		{Method: http.MethodGet, Pattern: "/meetings/{id}", Name: "meetings.show", Handler: h.GetMeeting},
		{Method: http.MethodPost, Pattern: "/meetings/{id}/participants", Name: "meetings.participants.create", Handler: h.AddParticipant},
		{Method: http.MethodGet, Pattern: "/projects/{projectID}/meetings", Name: "meetings.index", Handler: h.ListMeetings},
		{Method: http.MethodGet, Pattern: "/projects/{projectID}/meetings.ics", Name: "meetings.calendar", Handler: h.MeetingsCalendar},
		{Method: http.MethodPost, Pattern: "/projects/{projectID}/meetings", Name: "meetings.create", Handler: h.CreateMeeting},

		{Method: http.MethodGet, Pattern: "/boards/all", Name: "boards.overview", Handler: h.BoardsOverview},
		{Method: http.MethodGet, Pattern: "/boards", Name: "boards.index", Handler: h.ListBoards},
		{Method: http.MethodGet, Pattern: "/boards/new", Name: "boards.new", Handler: h.NewBoard},
		{Method: http.MethodGet, Pattern: "/boards/{id}", Name: "boards.show", Handler: h.GetBoard},
		{Method: http.MethodPost, Pattern: "/boards", Name: "boards.create", Handler: h.CreateBoard},
		{Method: http.MethodGet, Pattern: "/projects/{projectID}/boards", Name: "boards.index", Handler: h.ListBoards},
		{Method: http.MethodGet, Pattern: "/projects/{projectID}/boards/new", Name: "boards.new", Handler: h.NewBoard},
		{Method: http.MethodGet, Pattern: "/projects/{projectID}/boards/{id}", Name: "boards.show", Handler: h.GetBoard},
		{Method: http.MethodPost, Pattern: "/projects/{projectID}/boards", Name: "boards.create", Handler: h.CreateBoard},
	}
	if ws != nil {
		routes = append(routes, Route{
			Method: http.MethodGet, Pattern: "/ws/projects/{projectID}/meetings", Name: "ws.meetings", Handler: ws, Stream: true,
		})
	}
	return routes
}

type RouterOptions struct {
	// Verifier == nil: доверяем X-User-ID (за gateway'ем).
	Verifier       httpmw.TokenVerifier
	AllowedOrigins []string
	WS             http.HandlerFunc
	Timeout        time.Duration
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(httpmw.WithRequestLoggerCtx)
	r.Use(httpmw.RequestLogger)
	r.Use(middlewareChi.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID", httpmw.HeaderUserID},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	for _, rt := range h.Routes(opts.WS) {
		mws := chi.Middlewares{}
		if h.metrics != nil {
			mws = append(mws, h.metrics.Middleware(rt.Name))
		}
		if rt.Stream {
			mws = append(mws, httpmw.StreamAuth(opts.Verifier))
		} else {
			mws = append(mws, httpmw.Auth(opts.Verifier), middlewareChi.Timeout(opts.Timeout))
		}
		r.With(mws...).Method(rt.Method, rt.Pattern, rt.Handler)
	}

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	return r
}
