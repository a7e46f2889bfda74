package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
	"github.com/emre/schoolhub/internal/pkg/logger"
)

// Principal is the resolved acting identity. It is passed explicitly to
// every operation that needs it; there is no ambient security context.
type Principal struct {
	UserID    int64
	Username  string
	Role      models.RoleType
	StudentID *int64 // owned student record, set only for STUDENT accounts
	TeacherID *int64 // owned teacher record, set only for TEACHER accounts
}

// OwnsStudent reports whether the principal owns the given student record.
func (p *Principal) OwnsStudent(studentID int64) bool {
	return p.StudentID != nil && *p.StudentID == studentID
}

// OwnsTeacher reports whether the principal owns the given teacher record.
func (p *Principal) OwnsTeacher(teacherID int64) bool {
	return p.TeacherID != nil && *p.TeacherID == teacherID
}

// UserStore is the account lookup the resolver depends on.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PrincipalResolver maps an already-verified identity to the domain account
// record. Account status is re-validated on every resolution, not only at
// credential verification time, because status can change mid-session.
type PrincipalResolver struct {
	users UserStore
}

// NewPrincipalResolver creates a new PrincipalResolver
func NewPrincipalResolver(users UserStore) *PrincipalResolver {
	return &PrincipalResolver{users: users}
}

// Resolve looks up the account for a verified username and returns the
// Principal enriched with its owned record reference.
func (r *PrincipalResolver) Resolve(ctx context.Context, username string) (*Principal, error) {
	user, err := r.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error resolving principal")
		return nil, fmt.Errorf("failed to resolve principal: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if !user.Enabled {
		return nil, apperrors.ErrAccountDisabled
	}
	if user.Locked {
		return nil, apperrors.ErrAccountLocked
	}

	return &Principal{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.RoleType,
		StudentID: user.StudentID,
		TeacherID: user.TeacherID,
	}, nil
}
