package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

type stubCourseStore struct {
	courses map[int64]*models.Course
	deleted []int64
}

func newStubCourseStore() *stubCourseStore {
	return &stubCourseStore{courses: map[int64]*models.Course{
		1: {ID: 1, DepartmentID: 1, Code: "CS101", Name: "Introduction to Programming", Credits: 6},
		2: {ID: 2, DepartmentID: 2, Code: "MATH101", Name: "Calculus I", Credits: 5},
	}}
}

func (s *stubCourseStore) Create(_ context.Context, course *models.Course) error {
	for _, existing := range s.courses {
		if existing.Code == course.Code {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	course.ID = int64(len(s.courses) + 1)
	s.courses[course.ID] = course
	return nil
}

func (s *stubCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *stubCourseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	var all []*models.Course
	for _, course := range s.courses {
		all = append(all, course)
	}
	return all, nil
}

func (s *stubCourseStore) GetByDepartmentID(_ context.Context, departmentID int64) ([]*models.Course, error) {
	var matched []*models.Course
	for _, course := range s.courses {
		if course.DepartmentID == departmentID {
			matched = append(matched, course)
		}
	}
	return matched, nil
}

func (s *stubCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := s.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	s.courses[course.ID] = course
	return nil
}

func (s *stubCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(s.courses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func newCourseFixture() (*CourseService, *stubCourseStore) {
	store := newStubCourseStore()
	depts := &stubDepartmentLookup{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CS"},
		2: {ID: 2, Name: "Mathematics", Code: "MATH"},
	}}
	return NewCourseService(store, depts), store
}

func TestCourseServiceReads(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCourseFixture()

	t.Run("student reads the full catalog", func(t *testing.T) {
		courses, err := svc.GetAllCourses(ctx, studentPrincipal(), 0)
		require.NoError(t, err)
		assert.Len(t, courses, 2)
	})

	t.Run("department filter narrows the catalog", func(t *testing.T) {
		courses, err := svc.GetAllCourses(ctx, teacherPrincipal(), 2)
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, "MATH101", courses[0].Code)
	})

	t.Run("student reads a single course", func(t *testing.T) {
		course, err := svc.GetCourseByID(ctx, studentPrincipal(), 1)
		require.NoError(t, err)
		assert.Equal(t, "CS101", course.Code)
	})

	t.Run("unauthenticated read is denied", func(t *testing.T) {
		_, err := svc.GetAllCourses(ctx, nil, 0)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("missing course yields not-found", func(t *testing.T) {
		_, err := svc.GetCourseByID(ctx, teacherPrincipal(), 42)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestCourseServiceWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher creates a course", func(t *testing.T) {
		svc, store := newCourseFixture()
		course := &models.Course{DepartmentID: 1, Code: "CS201", Name: "Data Structures", Credits: 6}
		require.NoError(t, svc.CreateCourse(ctx, teacherPrincipal(), course))
		assert.Contains(t, store.courses, course.ID)
	})

	t.Run("student cannot create", func(t *testing.T) {
		svc, _ := newCourseFixture()
		err := svc.CreateCourse(ctx, studentPrincipal(), &models.Course{DepartmentID: 1, Code: "CS201", Name: "Data Structures", Credits: 6})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown department is rejected", func(t *testing.T) {
		svc, _ := newCourseFixture()
		err := svc.CreateCourse(ctx, teacherPrincipal(), &models.Course{DepartmentID: 9, Code: "CS201", Name: "Data Structures", Credits: 6})
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})

	t.Run("non-positive credits are rejected", func(t *testing.T) {
		svc, _ := newCourseFixture()
		err := svc.CreateCourse(ctx, teacherPrincipal(), &models.Course{DepartmentID: 1, Code: "CS201", Name: "Data Structures", Credits: 0})
		assert.ErrorIs(t, err, ErrCourseValidation)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		svc, _ := newCourseFixture()
		err := svc.CreateCourse(ctx, teacherPrincipal(), &models.Course{DepartmentID: 1, Code: "CS101", Name: "Intro Again", Credits: 6})
		assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
	})

	t.Run("teacher updates a course", func(t *testing.T) {
		svc, store := newCourseFixture()
		course := &models.Course{ID: 1, DepartmentID: 1, Code: "CS101", Name: "Programming Fundamentals", Credits: 6}
		require.NoError(t, svc.UpdateCourse(ctx, teacherPrincipal(), course))
		assert.Equal(t, "Programming Fundamentals", store.courses[1].Name)
	})

	t.Run("student cannot delete", func(t *testing.T) {
		svc, store := newCourseFixture()
		err := svc.DeleteCourse(ctx, studentPrincipal(), 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Empty(t, store.deleted)
	})

	t.Run("teacher deletes a course", func(t *testing.T) {
		svc, store := newCourseFixture()
		require.NoError(t, svc.DeleteCourse(ctx, teacherPrincipal(), 1))
		assert.Contains(t, store.deleted, int64(1))
	})
}
