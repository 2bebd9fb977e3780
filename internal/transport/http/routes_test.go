package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func nameRouter(routes []Route) *chi.Mux {
	r := chi.NewRouter()
	for _, rt := range routes {
		name := rt.Name
		r.Method(rt.Method, rt.Pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, name+"|"+chi.URLParam(r, "projectID")+"|"+chi.URLParam(r, "id"))
		}))
	}
	return r
}

func TestRoutes_Table(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}
	r := nameRouter((&Handler{}).Routes(noop))

	cases := []struct {
		method, path string
		want         string
	}{
		{"GET", "/boards/all", "boards.overview||"},
		{"GET", "/boards", "boards.index||"},
		{"GET", "/boards/1", "boards.show||1"},
		{"GET", "/projects/foobar/boards/1", "boards.show|foobar|1"},
		{"GET", "/boards/new", "boards.new||"},
		{"GET", "/projects/foobar/boards/new", "boards.new|foobar|"},
		{"POST", "/projects/foobar/boards", "boards.create|foobar|"},
		{"POST", "/boards", "boards.create||"},
		{"GET", "/projects/foobar/boards", "boards.index|foobar|"},

		{"GET", "/meetings", "meetings.index||"},
		{"GET", "/meetings.ics", "meetings.calendar||"},
		{"GET", "/meetings/abc", "meetings.show||abc"},
		{"POST", "/meetings/abc/participants", "meetings.participants.create||abc"},
		{"GET", "/projects/foobar/meetings", "meetings.index|foobar|"},
		{"GET", "/projects/foobar/meetings.ics", "meetings.calendar|foobar|"},
		{"POST", "/projects/foobar/meetings", "meetings.create|foobar|"},
		{"GET", "/ws/projects/foobar/meetings", "ws.meetings|foobar|"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d", rec.Code)
			}
			if got := rec.Body.String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRoutes_Unrouted(t *testing.T) {
	r := nameRouter((&Handler{}).Routes(nil))

	cases := []struct{ method, path string }{
		{"POST", "/boards/all"},
		{"DELETE", "/boards/1"},
		{"GET", "/ws/projects/foobar/meetings"}, // без ws-сервера маршрута нет
	}
	for _, tc := range cases {
		rctx := chi.NewRouteContext()
		if r.Match(rctx, tc.method, tc.path) {
			t.Fatalf("%s %s should not be routed", tc.method, tc.path)
		}
	}
}

func TestRoutes_NamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, rt := range (&Handler{}).Routes(func(http.ResponseWriter, *http.Request) {}) {
		key := rt.Method + " " + rt.Pattern
		if seen[key] {
			t.Fatalf("duplicate route %s", key)
		}
		seen[key] = true
		if rt.Name == "" {
			t.Fatalf("route %s has no name", key)
		}
	}
}
