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

type stubStudentStore struct {
	students map[int64]*models.Student
	courses  map[int64][]*models.Course
	deleted  []int64
	replaced map[int64][]int64
}

func newStubStudentStore() *stubStudentStore {
	return &stubStudentStore{
		students: map[int64]*models.Student{},
		courses:  map[int64][]*models.Course{},
		replaced: map[int64][]int64{},
	}
}

func (s *stubStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (s *stubStudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	var all []*models.Student
	for _, student := range s.students {
		all = append(all, student)
	}
	return all, nil
}

func (s *stubStudentStore) CreateWithAccount(_ context.Context, student *models.Student, user *models.User) error {
	student.ID = int64(len(s.students) + 1)
	s.students[student.ID] = student
	user.ID = student.ID + 1000
	user.RoleType = models.RoleStudent
	user.StudentID = &student.ID
	return nil
}

func (s *stubStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	s.students[student.ID] = student
	return nil
}

func (s *stubStudentStore) DeleteWithAccount(_ context.Context, id int64) error {
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubStudentStore) GetCourses(_ context.Context, studentID int64) ([]*models.Course, error) {
	return s.courses[studentID], nil
}

func (s *stubStudentStore) ReplaceCourses(_ context.Context, studentID int64, courseIDs []int64) error {
	s.replaced[studentID] = courseIDs
	return nil
}

type stubDepartmentLookup struct {
	departments map[int64]*models.Department
}

func (s *stubDepartmentLookup) GetByID(_ context.Context, id int64) (*models.Department, error) {
	dept, ok := s.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return dept, nil
}

func newStudentFixture() (*StudentService, *stubStudentStore) {
	store := newStubStudentStore()
	store.students[11] = &models.Student{ID: 11, Name: "Alice", Email: "alice@example.edu", DepartmentID: 1}
	store.students[12] = &models.Student{ID: 12, Name: "Bora", Email: "bora@example.edu", DepartmentID: 1}
	store.courses[11] = []*models.Course{{ID: 1, Code: "CS101", Name: "Introduction to Programming", Credits: 6}}
	depts := &stubDepartmentLookup{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CS"},
	}}
	return NewStudentService(store, depts), store
}

func TestStudentServiceGetAllStudents(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	t.Run("teacher lists students", func(t *testing.T) {
		students, err := svc.GetAllStudents(ctx, teacherPrincipal())
		require.NoError(t, err)
		assert.Len(t, students, 2)
	})

	t.Run("student is denied the list", func(t *testing.T) {
		_, err := svc.GetAllStudents(ctx, studentPrincipal())
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("nil principal is denied", func(t *testing.T) {
		_, err := svc.GetAllStudents(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestStudentServiceGetStudentByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	t.Run("teacher reads any student", func(t *testing.T) {
		student, err := svc.GetStudentByID(ctx, teacherPrincipal(), 12)
		require.NoError(t, err)
		assert.Equal(t, "Bora", student.Name)
	})

	t.Run("student reads own record with courses", func(t *testing.T) {
		student, err := svc.GetStudentByID(ctx, studentPrincipal(), 11)
		require.NoError(t, err)
		assert.Equal(t, "Alice", student.Name)
		require.Len(t, student.Courses, 1)
		assert.Equal(t, "CS101", student.Courses[0].Code)
	})

	t.Run("student is denied a foreign record", func(t *testing.T) {
		_, err := svc.GetStudentByID(ctx, studentPrincipal(), 12)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	})

	t.Run("denial for a missing foreign id matches denial for an existing one", func(t *testing.T) {
		existing := denyAsStudent(ctx, t, svc, 12)
		missing := denyAsStudent(ctx, t, svc, 99999)
		assert.Equal(t, existing.Error(), missing.Error())
	})

	t.Run("teacher gets not-found for missing record", func(t *testing.T) {
		_, err := svc.GetStudentByID(ctx, teacherPrincipal(), 99999)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

// denyAsStudent fetches as the fixture student and requires a denial
func denyAsStudent(ctx context.Context, t *testing.T, svc *StudentService, id int64) error {
	t.Helper()
	_, err := svc.GetStudentByID(ctx, studentPrincipal(), id)
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	return err
}

func TestStudentServiceGetCurrentStudent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentFixture()

	t.Run("student reads own profile", func(t *testing.T) {
		student, err := svc.GetCurrentStudent(ctx, studentPrincipal())
		require.NoError(t, err)
		assert.Equal(t, int64(11), student.ID)
	})

	t.Run("teacher is denied the student profile endpoint", func(t *testing.T) {
		_, err := svc.GetCurrentStudent(ctx, teacherPrincipal())
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestStudentServiceCreateStudent(t *testing.T) {
	ctx := context.Background()

	req := &dto.CreateStudentRequest{
		Name:         "Deniz",
		Email:        "deniz@example.edu",
		DepartmentID: 1,
		Username:     "deniz.student",
		Password:     "long-enough-pw",
	}

	t.Run("teacher provisions student with linked account", func(t *testing.T) {
		svc, store := newStudentFixture()
		student, err := svc.CreateStudent(ctx, teacherPrincipal(), req)
		require.NoError(t, err)
		assert.NotZero(t, student.ID)
		assert.Contains(t, store.students, student.ID)
	})

	t.Run("student cannot provision", func(t *testing.T) {
		svc, _ := newStudentFixture()
		_, err := svc.CreateStudent(ctx, studentPrincipal(), req)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown department is rejected", func(t *testing.T) {
		svc, _ := newStudentFixture()
		bad := *req
		bad.DepartmentID = 42
		_, err := svc.CreateStudent(ctx, teacherPrincipal(), &bad)
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})

	t.Run("blank name is rejected as a validation failure", func(t *testing.T) {
		svc, _ := newStudentFixture()
		bad := *req
		bad.Name = "   "
		_, err := svc.CreateStudent(ctx, teacherPrincipal(), &bad)
		assert.ErrorIs(t, err, ErrStudentValidation)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestStudentServiceUpdateStudent(t *testing.T) {
	ctx := context.Background()
	req := &dto.UpdateStudentRequest{Name: "Alice Updated", Email: "alice@example.edu", DepartmentID: 1}

	t.Run("teacher updates any student", func(t *testing.T) {
		svc, store := newStudentFixture()
		student, err := svc.UpdateStudent(ctx, teacherPrincipal(), 11, req)
		require.NoError(t, err)
		assert.Equal(t, "Alice Updated", student.Name)
		assert.Equal(t, "Alice Updated", store.students[11].Name)
	})

	t.Run("student cannot update even their own record", func(t *testing.T) {
		svc, _ := newStudentFixture()
		_, err := svc.UpdateStudent(ctx, studentPrincipal(), 11, req)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.ErrorIs(t, err, apperrors.ErrRoleMismatch)
	})
}

func TestStudentServiceDeleteStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher deletes a student", func(t *testing.T) {
		svc, store := newStudentFixture()
		require.NoError(t, svc.DeleteStudent(ctx, teacherPrincipal(), 11))
		assert.Contains(t, store.deleted, int64(11))
	})

	t.Run("student cannot delete", func(t *testing.T) {
		svc, store := newStudentFixture()
		err := svc.DeleteStudent(ctx, studentPrincipal(), 11)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Empty(t, store.deleted)
	})
}

func TestStudentServiceUpdateStudentCourses(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher replaces enrollments", func(t *testing.T) {
		svc, store := newStudentFixture()
		require.NoError(t, svc.UpdateStudentCourses(ctx, teacherPrincipal(), 11, []int64{1, 2}))
		assert.Equal(t, []int64{1, 2}, store.replaced[11])
	})

	t.Run("student cannot change enrollments", func(t *testing.T) {
		svc, _ := newStudentFixture()
		err := svc.UpdateStudentCourses(ctx, studentPrincipal(), 11, []int64{1})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("missing student yields not-found", func(t *testing.T) {
		svc, _ := newStudentFixture()
		err := svc.UpdateStudentCourses(ctx, teacherPrincipal(), 999, []int64{1})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}
