package reminders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petcheck/internal/domain/pets"
	"petcheck/internal/middleware"
	"petcheck/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

type testPetChecker struct {
	err error
}

func (c testPetChecker) Owns(context.Context, string, string) error { return c.err }

func TestCreateReminderHandler_PetCheckErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"owned", nil, http.StatusCreated},
		{"not found", pets.ErrNotFound, http.StatusNotFound},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		svc, repo := newTestService(nil)
		r := chi.NewRouter()
		RegisterRoutes(r, svc, testPetChecker{err: tc.err})

		body := `{"pet_id":"pet-1","titulo":"Banho","data_lembrete":"2030-01-01T10:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(body))
		req = req.WithContext(middleware.WithSession(req.Context(), auth.Session{TutorID: "tutor-1"}))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
		if tc.err != nil && len(repo.byID) != 0 {
			t.Fatalf("%s: nothing must be stored", tc.name)
		}
	}
}
