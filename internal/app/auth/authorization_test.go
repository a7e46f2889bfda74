package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func studentPrincipal(studentID int64) *Principal {
	return &Principal{
		UserID:    100,
		Username:  "student.one",
		Role:      models.RoleStudent,
		StudentID: int64Ptr(studentID),
	}
}

func teacherPrincipal(teacherID int64) *Principal {
	return &Principal{
		UserID:    200,
		Username:  "teacher.one",
		Role:      models.RoleTeacher,
		TeacherID: int64Ptr(teacherID),
	}
}

func TestRequireRole(t *testing.T) {
	t.Run("matching role passes", func(t *testing.T) {
		assert.NoError(t, RequireRole(teacherPrincipal(1), models.RoleTeacher))
		assert.NoError(t, RequireRole(studentPrincipal(1), models.RoleStudent))
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		assert.NoError(t, RequireRole(studentPrincipal(1), models.RoleStudent, models.RoleTeacher))
		assert.NoError(t, RequireRole(teacherPrincipal(1), models.RoleStudent, models.RoleTeacher))
	})

	t.Run("wrong role is denied", func(t *testing.T) {
		err := RequireRole(studentPrincipal(1), models.RoleTeacher)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)
	})

	t.Run("nil principal is denied", func(t *testing.T) {
		err := RequireRole(nil, models.RoleTeacher)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("role outside the closed set is denied", func(t *testing.T) {
		p := &Principal{UserID: 1, Username: "ghost", Role: "JANITOR"}
		err := RequireRole(p, models.RoleStudent, models.RoleTeacher)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrUnknownRole)
	})
}

func TestAuthorizeStudentAccess(t *testing.T) {
	t.Run("teacher may access any student record", func(t *testing.T) {
		p := teacherPrincipal(7)
		assert.NoError(t, AuthorizeStudentAccess(p, 1))
		assert.NoError(t, AuthorizeStudentAccess(p, 42))
	})

	t.Run("student may access own record", func(t *testing.T) {
		assert.NoError(t, AuthorizeStudentAccess(studentPrincipal(5), 5))
	})

	t.Run("student is denied a foreign record", func(t *testing.T) {
		err := AuthorizeStudentAccess(studentPrincipal(5), 6)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	})

	t.Run("denial is identical for nonexistent ids", func(t *testing.T) {
		// The guard compares against the requested id only, so the error for
		// a foreign id that exists and one that does not must be the same.
		p := studentPrincipal(5)
		existing := AuthorizeStudentAccess(p, 6)
		missing := AuthorizeStudentAccess(p, 999999)
		require.Error(t, existing)
		require.Error(t, missing)
		assert.Equal(t, existing.Error(), missing.Error())
	})

	t.Run("student without owned record is denied", func(t *testing.T) {
		p := &Principal{UserID: 1, Username: "orphan", Role: models.RoleStudent}
		err := AuthorizeStudentAccess(p, 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	})

	t.Run("nil principal is denied", func(t *testing.T) {
		err := AuthorizeStudentAccess(nil, 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown role fails closed", func(t *testing.T) {
		p := &Principal{UserID: 1, Username: "ghost", Role: "AUDITOR", StudentID: int64Ptr(5)}
		err := AuthorizeStudentAccess(p, 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnknownRole)
	})

	t.Run("decision is idempotent", func(t *testing.T) {
		p := studentPrincipal(5)
		for i := 0; i < 3; i++ {
			assert.NoError(t, AuthorizeStudentAccess(p, 5))
		}
		first := AuthorizeStudentAccess(p, 6)
		second := AuthorizeStudentAccess(p, 6)
		assert.Equal(t, first.Error(), second.Error())
	})
}

func TestAuthorizeTeacherSelf(t *testing.T) {
	t.Run("owner passes", func(t *testing.T) {
		assert.NoError(t, AuthorizeTeacherSelf(teacherPrincipal(3), 3))
	})

	t.Run("other teacher is denied", func(t *testing.T) {
		err := AuthorizeTeacherSelf(teacherPrincipal(3), 4)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	})

	t.Run("student is denied with role mismatch", func(t *testing.T) {
		err := AuthorizeTeacherSelf(studentPrincipal(3), 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)
	})

	t.Run("nil principal is denied", func(t *testing.T) {
		err := AuthorizeTeacherSelf(nil, 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown role fails closed", func(t *testing.T) {
		p := &Principal{UserID: 1, Username: "ghost", Role: "DEAN", TeacherID: int64Ptr(3)}
		err := AuthorizeTeacherSelf(p, 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnknownRole)
	})
}

func TestAuthorizationErrorKinds(t *testing.T) {
	// Every denial matches the generic sentinel, and its internal kind stays
	// reachable for diagnostics. The two must never be conflated with each
	// other.
	notOwner := AuthorizeStudentAccess(studentPrincipal(1), 2)
	roleMismatch := AuthorizeTeacherSelf(studentPrincipal(1), 2)

	assert.ErrorIs(t, notOwner, apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, roleMismatch, apperrors.ErrPermissionDenied)

	assert.True(t, errors.Is(notOwner, apperrors.ErrNotOwner))
	assert.False(t, errors.Is(notOwner, apperrors.ErrRoleMismatch))
	assert.True(t, errors.Is(roleMismatch, apperrors.ErrRoleMismatch))
	assert.False(t, errors.Is(roleMismatch, apperrors.ErrNotOwner))
}
