package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/emre/schoolhub/internal/app/services"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	HandleAPIError(c, err)
	return recorder
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001"},
		{"unknown user collapses to invalid credentials", apperrors.ErrUserNotFound, http.StatusUnauthorized, "AUTH_001"},
		{"disabled account collapses to invalid credentials", apperrors.ErrAccountDisabled, http.StatusUnauthorized, "AUTH_001"},
		{"locked account collapses to invalid credentials", apperrors.ErrAccountLocked, http.StatusUnauthorized, "AUTH_001"},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, "AUTH_006"},
		{"wrapped ownership denial", apperrors.NewNotOwnerError(apperrors.SubjectStudent), http.StatusForbidden, "AUTH_006"},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, "AUTH_003"},
		{"revoked token", apperrors.ErrTokenRevoked, http.StatusUnauthorized, "AUTH_002"},
		{"unknown token", apperrors.ErrTokenNotFound, http.StatusUnauthorized, "AUTH_004"},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, "RES_001"},
		{"teacher not found", apperrors.ErrTeacherNotFound, http.StatusNotFound, "RES_001"},
		{"department not found", apperrors.ErrDepartmentNotFound, http.StatusNotFound, "RES_001"},
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, "RES_001"},
		{"generic resource not found", apperrors.ErrResourceNotFound, http.StatusNotFound, "RES_001"},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, "RES_002"},
		{"duplicate username", apperrors.ErrUsernameTaken, http.StatusConflict, "RES_002"},
		{"duplicate department", apperrors.ErrDepartmentAlreadyExists, http.StatusConflict, "RES_002"},
		{"duplicate course", apperrors.ErrCourseAlreadyExists, http.StatusConflict, "RES_002"},
		{"department still referenced", apperrors.ErrDepartmentHasRelations, http.StatusConflict, "RES_002"},
		{"validation failure", apperrors.ErrValidationFailed, http.StatusBadRequest, "VAL_001"},
		{"service validation sentinel", fmt.Errorf("%w: name cannot be empty", services.ErrStudentValidation), http.StatusBadRequest, "VAL_001"},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest, "VAL_001"},
		{"unknown error is a 500", errors.New("connection reset"), http.StatusInternalServerError, "SRV_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestHandleAPIErrorHidesAuthenticationDetail(t *testing.T) {
	// All sign-in failure kinds must produce byte-identical error payloads so
	// the response never reveals which usernames exist.
	wrongPassword := handleError(t, apperrors.ErrInvalidCredentials)
	unknownUser := handleError(t, apperrors.ErrUserNotFound)
	disabled := handleError(t, apperrors.ErrAccountDisabled)

	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Contains(t, unknownUser.Body.String(), "Invalid credentials")
	assert.NotContains(t, unknownUser.Body.String(), "not found")
	assert.NotContains(t, disabled.Body.String(), "disabled")
}
