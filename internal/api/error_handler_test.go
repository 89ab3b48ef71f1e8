package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/platformlab/accounts-api/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"success":false,"error":"Invalid credentials"}`},
		{domain.ErrUserExists, http.StatusBadRequest, `{"success":false,"error":"Duplicate field value entered"}`},
		{domain.ErrUserNotFound, http.StatusNotFound, `{"success":false,"error":"User not found"}`},
		{domain.ErrInvalidID, http.StatusNotFound, `{"success":false,"error":"Resource not found"}`},
		{domain.ErrResetTokenInvalid, http.StatusBadRequest, `{"success":false,"error":"Invalid token"}`},
		{domain.ErrInvalidToken, http.StatusUnauthorized, `{"success":false,"error":"Not authorized to access this route"}`},
	}

	for _, tc := range cases {
		rec := invokeErrorHandler(t, tc.err)
		if rec.Code != tc.wantCode {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.wantCode, rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != tc.wantBody {
			t.Fatalf("%v: unexpected body: %s", tc.err, body)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("update user"), domain.ErrUserNotFound)
	rec := invokeErrorHandler(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped ErrUserNotFound, got %d", rec.Code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "Please add a name"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	want := `{"success":false,"error":"Please add a name"}`
	if body := strings.TrimSpace(rec.Body.String()); body != want {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	want := `{"success":false,"error":"Server error"}`
	if body := strings.TrimSpace(rec.Body.String()); body != want {
		t.Fatalf("internal details must not leak: %s", body)
	}
}
