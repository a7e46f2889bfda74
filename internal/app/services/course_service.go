package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/schoolhub/internal/app/auth"
	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

// ErrCourseValidation wraps input validation failures in this service. It
// chains to the validation sentinel so the boundary maps it to a 400.
var ErrCourseValidation = fmt.Errorf("%w: course input rejected", apperrors.ErrValidationFailed)

// CourseStore defines the course operations this service depends on
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseService handles course reference data. Reads are open to any
// authenticated principal; writes are teacher only.
type CourseService struct {
	courseRepo     CourseStore
	departmentRepo DepartmentLookup
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseStore, departmentRepo DepartmentLookup) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
	}
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", ErrCourseValidation)
	}
	if course.DepartmentID <= 0 {
		return fmt.Errorf("%w: department ID must be positive", ErrCourseValidation)
	}
	if strings.TrimSpace(course.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrCourseValidation)
	}
	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrCourseValidation)
	}
	if course.Credits <= 0 {
		return fmt.Errorf("%w: credits must be positive", ErrCourseValidation)
	}
	return nil
}

// CreateCourse creates a new course. Teachers only.
func (s *CourseService) CreateCourse(ctx context.Context, principal *auth.Principal, course *models.Course) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if err := s.validateCourse(course); err != nil {
		return err
	}

	if _, err := s.departmentRepo.GetByID(ctx, course.DepartmentID); err != nil {
		return err
	}

	return s.courseRepo.Create(ctx, course)
}

// GetCourseByID retrieves a course by ID. Any authenticated principal.
func (s *CourseService) GetCourseByID(ctx context.Context, principal *auth.Principal, id int64) (*models.Course, error) {
	if err := auth.RequireRole(principal, models.RoleStudent, models.RoleTeacher); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", ErrCourseValidation)
	}

	return s.courseRepo.GetByID(ctx, id)
}

// GetAllCourses retrieves all courses, optionally filtered by department.
// Any authenticated principal.
func (s *CourseService) GetAllCourses(ctx context.Context, principal *auth.Principal, departmentID int64) ([]*models.Course, error) {
	if err := auth.RequireRole(principal, models.RoleStudent, models.RoleTeacher); err != nil {
		return nil, err
	}

	if departmentID > 0 {
		return s.courseRepo.GetByDepartmentID(ctx, departmentID)
	}

	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse updates an existing course. Teachers only.
func (s *CourseService) UpdateCourse(ctx context.Context, principal *auth.Principal, course *models.Course) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if err := s.validateCourse(course); err != nil {
		return err
	}
	if course.ID <= 0 {
		return fmt.Errorf("%w: invalid course ID", ErrCourseValidation)
	}

	if _, err := s.departmentRepo.GetByID(ctx, course.DepartmentID); err != nil {
		return err
	}

	return s.courseRepo.Update(ctx, course)
}

// DeleteCourse deletes a course by ID. Teachers only.
func (s *CourseService) DeleteCourse(ctx context.Context, principal *auth.Principal, id int64) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", ErrCourseValidation)
	}

	return s.courseRepo.Delete(ctx, id)
}
