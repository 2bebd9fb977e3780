package httpmw

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

type stubVerifier map[string]int64

func (s stubVerifier) UserID(token string) (int64, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("unknown token")
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strconv.FormatInt(UserIDFromCtx(r.Context()), 10)))
	})
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name     string
		verifier TokenVerifier
		stream   bool
		target   string
		headers  map[string]string
		status   int
		user     string
	}{
		{"header", nil, false, "/", map[string]string{"X-User-ID": "7"}, http.StatusOK, "7"},
		{"user_id query on stream", nil, true, "/?user_id=8", nil, http.StatusOK, "8"},
		{"user_id query ignored off stream", nil, false, "/?user_id=8", nil, http.StatusUnauthorized, ""},
		{"missing", nil, false, "/", nil, http.StatusUnauthorized, ""},
		{"negative", nil, false, "/", map[string]string{"X-User-ID": "-1"}, http.StatusUnauthorized, ""},
		{"bearer", stubVerifier{"t": 5}, false, "/", map[string]string{"Authorization": "Bearer t"}, http.StatusOK, "5"},
		{"bearer on stream", stubVerifier{"t": 5}, true, "/", map[string]string{"Authorization": "Bearer t"}, http.StatusOK, "5"},
		{"access_token query on stream", stubVerifier{"t": 5}, true, "/?access_token=t", nil, http.StatusOK, "5"},
		{"access_token query ignored off stream", stubVerifier{"t": 5}, false, "/?access_token=t", nil, http.StatusUnauthorized, ""},
		{"unknown token", stubVerifier{"t": 5}, false, "/", map[string]string{"Authorization": "Bearer x"}, http.StatusUnauthorized, ""},
		{"header ignored in jwt mode", stubVerifier{"t": 5}, false, "/", map[string]string{"X-User-ID": "7"}, http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			mw := Auth(tc.verifier)
			if tc.stream {
				mw = StreamAuth(tc.verifier)
			}
			rec := httptest.NewRecorder()
			mw(echoUser()).ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusOK && rec.Body.String() != tc.user {
				t.Fatalf("user %q, want %q", rec.Body.String(), tc.user)
			}
		})
	}
}
