package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

type stubDepartmentStore struct {
	departments map[int64]*models.Department
	deleted     []int64
}

func newStubDepartmentStore() *stubDepartmentStore {
	return &stubDepartmentStore{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CS"},
	}}
}

func (s *stubDepartmentStore) Create(_ context.Context, department *models.Department) error {
	for _, existing := range s.departments {
		if existing.Name == department.Name || existing.Code == department.Code {
			return apperrors.ErrDepartmentAlreadyExists
		}
	}
	department.ID = int64(len(s.departments) + 1)
	s.departments[department.ID] = department
	return nil
}

func (s *stubDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := s.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return department, nil
}

func (s *stubDepartmentStore) GetAll(_ context.Context) ([]*models.Department, error) {
	var all []*models.Department
	for _, department := range s.departments {
		all = append(all, department)
	}
	return all, nil
}

func (s *stubDepartmentStore) Update(_ context.Context, department *models.Department) error {
	if _, ok := s.departments[department.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	s.departments[department.ID] = department
	return nil
}

func (s *stubDepartmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.departments[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(s.departments, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func TestDepartmentServiceReads(t *testing.T) {
	ctx := context.Background()
	svc := NewDepartmentService(newStubDepartmentStore())

	t.Run("student reads the list", func(t *testing.T) {
		departments, err := svc.GetAllDepartments(ctx, studentPrincipal())
		require.NoError(t, err)
		assert.Len(t, departments, 1)
	})

	t.Run("teacher reads a single department", func(t *testing.T) {
		department, err := svc.GetDepartmentByID(ctx, teacherPrincipal(), 1)
		require.NoError(t, err)
		assert.Equal(t, "CS", department.Code)
	})

	t.Run("unauthenticated read is denied", func(t *testing.T) {
		_, err := svc.GetAllDepartments(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("missing department yields not-found", func(t *testing.T) {
		_, err := svc.GetDepartmentByID(ctx, studentPrincipal(), 42)
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentServiceWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher creates a department", func(t *testing.T) {
		store := newStubDepartmentStore()
		svc := NewDepartmentService(store)
		department := &models.Department{Name: "Mathematics", Code: "MATH"}
		require.NoError(t, svc.CreateDepartment(ctx, teacherPrincipal(), department))
		assert.NotZero(t, department.ID)
	})

	t.Run("student cannot create", func(t *testing.T) {
		svc := NewDepartmentService(newStubDepartmentStore())
		err := svc.CreateDepartment(ctx, studentPrincipal(), &models.Department{Name: "Mathematics", Code: "MATH"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("lowercase code is rejected", func(t *testing.T) {
		svc := NewDepartmentService(newStubDepartmentStore())
		err := svc.CreateDepartment(ctx, teacherPrincipal(), &models.Department{Name: "Mathematics", Code: "math"})
		assert.ErrorIs(t, err, ErrDepartmentValidation)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := NewDepartmentService(newStubDepartmentStore())
		err := svc.CreateDepartment(ctx, teacherPrincipal(), &models.Department{Name: "Computer Science", Code: "CSE"})
		assert.ErrorIs(t, err, apperrors.ErrDepartmentAlreadyExists)
	})

	t.Run("teacher updates a department", func(t *testing.T) {
		store := newStubDepartmentStore()
		svc := NewDepartmentService(store)
		require.NoError(t, svc.UpdateDepartment(ctx, teacherPrincipal(), &models.Department{ID: 1, Name: "Computing", Code: "CS"}))
		assert.Equal(t, "Computing", store.departments[1].Name)
	})

	t.Run("student cannot delete", func(t *testing.T) {
		store := newStubDepartmentStore()
		svc := NewDepartmentService(store)
		err := svc.DeleteDepartment(ctx, studentPrincipal(), 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Empty(t, store.deleted)
	})

	t.Run("teacher deletes a department", func(t *testing.T) {
		store := newStubDepartmentStore()
		svc := NewDepartmentService(store)
		require.NoError(t, svc.DeleteDepartment(ctx, teacherPrincipal(), 1))
		assert.Contains(t, store.deleted, int64(1))
	})
}
