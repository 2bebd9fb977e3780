package postgres

import (
	"errors"
	"testing"

	"github.com/cwrk-planet/meeting-service/internal/domain"
)

func TestParseMeetingID(t *testing.T) {
	got, err := parseMeetingID("6F9619FF-8B86-D011-B42D-00C04FC964FF")
	if err != nil {
		t.Fatalf("valid uuid: %v", err)
	}
	if want := "6f9619ff-8b86-d011-b42d-00c04fc964ff"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	for _, bad := range []string{"", "42", "not-a-uuid", "6f9619ff-8b86-d011-b42d"} {
		if _, err := parseMeetingID(bad); !errors.Is(err, domain.ErrMeetingNotFound) {
			t.Fatalf("%q: expected ErrMeetingNotFound, got %v", bad, err)
		}
	}
}
