package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

func TestFromError_DomainMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", fmt.Errorf("%w: email is required", onboarding.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"lead not found", onboarding.ErrLeadNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"dealer not found", onboarding.ErrDealerNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not dealer lead", onboarding.ErrNotDealerLead, http.StatusBadRequest, "INVALID_STATE"},
		{"closed lead", onboarding.ErrLeadClosed, http.StatusBadRequest, "INVALID_STATE"},
		{"pending", &onboarding.ForbiddenError{Code: onboarding.CodePending, Message: "x"}, http.StatusForbidden, "pending"},
		{"suspended", &onboarding.ForbiddenError{Code: onboarding.CodeSuspended, Message: "x"}, http.StatusForbidden, "suspended"},
		{"credentials", onboarding.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unavailable", fmt.Errorf("%w: create lead: boom", onboarding.ErrUnavailable), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"refresh", session.ErrInvalidRefresh, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"repo not found", fmt.Errorf("get: %w", repository.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"repo conflict", repository.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromError(tc.err)
			assert.Equal(t, tc.status, got.HTTPStatus)
			assert.Equal(t, tc.code, got.Code)
		})
	}
}

func TestFromError_ValidationDetail(t *testing.T) {
	got := FromError(fmt.Errorf("%w: email is required", onboarding.ErrValidation))
	assert.Equal(t, "email is required", got.Detail)
}

func TestWithDetail_DoesNotMutateBase(t *testing.T) {
	e := ErrNotFound.WithDetail("lead")
	assert.Equal(t, "lead", e.Detail)
	assert.Empty(t, ErrNotFound.Detail)
}

func TestWriteError_Body(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, &onboarding.ForbiddenError{Code: onboarding.CodeSuspended, Message: "dealer suspended"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "suspended", body["code"])
	assert.Equal(t, "dealer suspended", body["message"])
}
