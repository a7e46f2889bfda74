package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

type stubUserStore struct {
	users map[string]*models.User
	err   error
}

func (s *stubUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func TestPrincipalResolver(t *testing.T) {
	studentID := int64(11)
	teacherID := int64(22)
	store := &stubUserStore{users: map[string]*models.User{
		"alice": {ID: 1, Username: "alice", RoleType: models.RoleStudent, Enabled: true, StudentID: &studentID},
		"bob":   {ID: 2, Username: "bob", RoleType: models.RoleTeacher, Enabled: true, TeacherID: &teacherID},
		"carol": {ID: 3, Username: "carol", RoleType: models.RoleStudent, Enabled: false, StudentID: &studentID},
		"dave":  {ID: 4, Username: "dave", RoleType: models.RoleTeacher, Enabled: true, Locked: true, TeacherID: &teacherID},
	}}
	resolver := NewPrincipalResolver(store)
	ctx := context.Background()

	t.Run("resolves student with owned record", func(t *testing.T) {
		p, err := resolver.Resolve(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.UserID)
		assert.Equal(t, models.RoleStudent, p.Role)
		require.NotNil(t, p.StudentID)
		assert.Equal(t, studentID, *p.StudentID)
		assert.Nil(t, p.TeacherID)
		assert.True(t, p.OwnsStudent(studentID))
		assert.False(t, p.OwnsStudent(studentID+1))
	})

	t.Run("resolves teacher with owned record", func(t *testing.T) {
		p, err := resolver.Resolve(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, models.RoleTeacher, p.Role)
		assert.True(t, p.OwnsTeacher(teacherID))
		assert.False(t, p.OwnsStudent(studentID))
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "nobody")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("disabled account is rejected", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "carol")
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("locked account is rejected", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "dave")
		assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
	})
}
