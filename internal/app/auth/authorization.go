package auth

import (
	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

// The guards in this file are pure decision functions over already-resolved
// inputs. They perform no I/O and are invoked explicitly at the top of each
// service operation, so they hold even when a call never passed through the
// route layer.

// RequireRole verifies that the principal holds one of the required roles.
// It runs before any persistence access so a denied operation never executes
// partially. A nil principal or a role outside the closed set is denied,
// never allowed through.
func RequireRole(p *Principal, roles ...models.RoleType) error {
	if p == nil {
		return apperrors.NewRoleMismatchError("")
	}
	if !p.Role.Valid() {
		return apperrors.NewUnknownRoleError()
	}
	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}
	return apperrors.NewRoleMismatchError("")
}

// AuthorizeStudentAccess decides whether the principal may act on the
// student record with the given id. Teachers may act on any student record;
// students only on their own. The comparison is against the requested id, so
// a student probing a foreign id is denied identically whether or not that
// id exists.
func AuthorizeStudentAccess(p *Principal, studentID int64) error {
	if p == nil {
		return apperrors.NewRoleMismatchError(apperrors.SubjectStudent)
	}
	switch p.Role {
	case models.RoleTeacher:
		return nil
	case models.RoleStudent:
		if p.OwnsStudent(studentID) {
			return nil
		}
		return apperrors.NewNotOwnerError(apperrors.SubjectStudent)
	default:
		// Unreachable under the closed role set, but must fail closed.
		return apperrors.NewUnknownRoleError()
	}
}

// AuthorizeTeacherSelf decides whether the principal may perform a
// self-scoped mutation on the teacher record with the given id. Only the
// owning teacher passes; other teachers get NotOwner, students get
// RoleMismatch.
func AuthorizeTeacherSelf(p *Principal, teacherID int64) error {
	if p == nil {
		return apperrors.NewRoleMismatchError(apperrors.SubjectTeacher)
	}
	switch p.Role {
	case models.RoleTeacher:
		if p.OwnsTeacher(teacherID) {
			return nil
		}
		return apperrors.NewNotOwnerError(apperrors.SubjectTeacher)
	case models.RoleStudent:
		return apperrors.NewRoleMismatchError(apperrors.SubjectTeacher)
	default:
		return apperrors.NewUnknownRoleError()
	}
}
