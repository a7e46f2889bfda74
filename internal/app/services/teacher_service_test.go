package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/app/models/dto"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

type stubTeacherStore struct {
	teachers map[int64]*models.Teacher
	courses  map[int64][]*models.Course
	deleted  []int64
}

func newStubTeacherStore() *stubTeacherStore {
	return &stubTeacherStore{
		teachers: map[int64]*models.Teacher{},
		courses:  map[int64][]*models.Course{},
	}
}

func (s *stubTeacherStore) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := s.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	copied := *teacher
	return &copied, nil
}

func (s *stubTeacherStore) GetAll(_ context.Context) ([]*models.Teacher, error) {
	var all []*models.Teacher
	for _, teacher := range s.teachers {
		all = append(all, teacher)
	}
	return all, nil
}

func (s *stubTeacherStore) CreateWithAccount(_ context.Context, teacher *models.Teacher, user *models.User) error {
	teacher.ID = int64(len(s.teachers) + 100)
	s.teachers[teacher.ID] = teacher
	user.ID = teacher.ID + 1000
	user.RoleType = models.RoleTeacher
	user.TeacherID = &teacher.ID
	return nil
}

func (s *stubTeacherStore) Update(_ context.Context, teacher *models.Teacher) error {
	if _, ok := s.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	s.teachers[teacher.ID] = teacher
	return nil
}

func (s *stubTeacherStore) DeleteWithAccount(_ context.Context, id int64) error {
	if _, ok := s.teachers[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(s.teachers, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubTeacherStore) GetCourses(_ context.Context, teacherID int64) ([]*models.Course, error) {
	return s.courses[teacherID], nil
}

func newTeacherFixture() (*TeacherService, *stubTeacherStore) {
	store := newStubTeacherStore()
	store.teachers[22] = &models.Teacher{ID: 22, Name: "Bob", Email: "bob@example.edu", DepartmentID: 1}
	store.teachers[23] = &models.Teacher{ID: 23, Name: "Ceren", Email: "ceren@example.edu", DepartmentID: 1}
	store.courses[22] = []*models.Course{{ID: 1, Code: "CS101", Name: "Introduction to Programming", Credits: 6}}
	depts := &stubDepartmentLookup{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CS"},
	}}
	return NewTeacherService(store, depts), store
}

func TestTeacherServiceGetAllTeachers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTeacherFixture()

	t.Run("teacher lists teachers", func(t *testing.T) {
		teachers, err := svc.GetAllTeachers(ctx, teacherPrincipal())
		require.NoError(t, err)
		assert.Len(t, teachers, 2)
	})

	t.Run("student is denied the list", func(t *testing.T) {
		_, err := svc.GetAllTeachers(ctx, studentPrincipal())
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestTeacherServiceGetTeacherByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTeacherFixture()

	t.Run("any teacher reads any teacher", func(t *testing.T) {
		teacher, err := svc.GetTeacherByID(ctx, teacherPrincipal(), 23)
		require.NoError(t, err)
		assert.Equal(t, "Ceren", teacher.Name)
	})

	t.Run("own record comes back with courses", func(t *testing.T) {
		teacher, err := svc.GetTeacherByID(ctx, teacherPrincipal(), 22)
		require.NoError(t, err)
		require.Len(t, teacher.Courses, 1)
		assert.Equal(t, "CS101", teacher.Courses[0].Code)
	})

	t.Run("student is denied", func(t *testing.T) {
		_, err := svc.GetTeacherByID(ctx, studentPrincipal(), 22)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)
	})

	t.Run("missing teacher yields not-found", func(t *testing.T) {
		_, err := svc.GetTeacherByID(ctx, teacherPrincipal(), 9999)
		assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
	})
}

func TestTeacherServiceGetCurrentTeacher(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTeacherFixture()

	t.Run("teacher reads own profile", func(t *testing.T) {
		teacher, err := svc.GetCurrentTeacher(ctx, teacherPrincipal())
		require.NoError(t, err)
		assert.Equal(t, int64(22), teacher.ID)
	})

	t.Run("student is denied the teacher profile endpoint", func(t *testing.T) {
		_, err := svc.GetCurrentTeacher(ctx, studentPrincipal())
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestTeacherServiceCreateTeacher(t *testing.T) {
	ctx := context.Background()

	req := &dto.CreateTeacherRequest{
		Name:         "Deniz",
		Email:        "deniz@example.edu",
		DepartmentID: 1,
		Username:     "deniz.teacher",
		Password:     "long-enough-pw",
	}

	t.Run("any teacher provisions another teacher", func(t *testing.T) {
		svc, store := newTeacherFixture()
		teacher, err := svc.CreateTeacher(ctx, teacherPrincipal(), req)
		require.NoError(t, err)
		assert.NotZero(t, teacher.ID)
		assert.Contains(t, store.teachers, teacher.ID)
	})

	t.Run("student cannot provision", func(t *testing.T) {
		svc, _ := newTeacherFixture()
		_, err := svc.CreateTeacher(ctx, studentPrincipal(), req)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown department is rejected", func(t *testing.T) {
		svc, _ := newTeacherFixture()
		bad := *req
		bad.DepartmentID = 42
		_, err := svc.CreateTeacher(ctx, teacherPrincipal(), &bad)
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})

	t.Run("blank email is rejected", func(t *testing.T) {
		svc, _ := newTeacherFixture()
		bad := *req
		bad.Email = ""
		_, err := svc.CreateTeacher(ctx, teacherPrincipal(), &bad)
		assert.ErrorIs(t, err, ErrTeacherValidation)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestTeacherServiceUpdateTeacher(t *testing.T) {
	ctx := context.Background()
	req := &dto.UpdateTeacherRequest{Name: "Bob Updated", Email: "bob@example.edu", DepartmentID: 1}

	t.Run("teacher updates own record", func(t *testing.T) {
		svc, store := newTeacherFixture()
		teacher, err := svc.UpdateTeacher(ctx, teacherPrincipal(), 22, req)
		require.NoError(t, err)
		assert.Equal(t, "Bob Updated", teacher.Name)
		assert.Equal(t, "Bob Updated", store.teachers[22].Name)
	})

	t.Run("teacher cannot update a colleague", func(t *testing.T) {
		svc, store := newTeacherFixture()
		_, err := svc.UpdateTeacher(ctx, teacherPrincipal(), 23, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrNotOwner)
		assert.Equal(t, "Ceren", store.teachers[23].Name)
	})

	t.Run("denial for a missing id matches denial for an existing one", func(t *testing.T) {
		svc, _ := newTeacherFixture()
		_, errExisting := svc.UpdateTeacher(ctx, teacherPrincipal(), 23, req)
		_, errMissing := svc.UpdateTeacher(ctx, teacherPrincipal(), 9999, req)
		require.Error(t, errExisting)
		require.Error(t, errMissing)
		assert.Equal(t, errExisting.Error(), errMissing.Error())
	})

	t.Run("student is denied", func(t *testing.T) {
		svc, _ := newTeacherFixture()
		_, err := svc.UpdateTeacher(ctx, studentPrincipal(), 22, req)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestTeacherServiceDeleteTeacher(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher deletes a colleague", func(t *testing.T) {
		svc, store := newTeacherFixture()
		require.NoError(t, svc.DeleteTeacher(ctx, teacherPrincipal(), 23))
		assert.Contains(t, store.deleted, int64(23))
	})

	t.Run("student cannot delete", func(t *testing.T) {
		svc, store := newTeacherFixture()
		err := svc.DeleteTeacher(ctx, studentPrincipal(), 23)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Empty(t, store.deleted)
	})

	t.Run("missing teacher yields not-found", func(t *testing.T) {
		svc, _ := newTeacherFixture()
		err := svc.DeleteTeacher(ctx, teacherPrincipal(), 9999)
		assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
	})
}
