package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/schoolhub/internal/app/auth"
	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/app/models/dto"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
	pkgauth "github.com/emre/schoolhub/internal/pkg/auth"
)

// ErrTeacherValidation wraps input validation failures in this service. It
// chains to the validation sentinel so the boundary maps it to a 400.
var ErrTeacherValidation = fmt.Errorf("%w: teacher input rejected", apperrors.ErrValidationFailed)

// TeacherStore defines the teacher record operations this service depends on
type TeacherStore interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	CreateWithAccount(ctx context.Context, teacher *models.Teacher, user *models.User) error
	Update(ctx context.Context, teacher *models.Teacher) error
	DeleteWithAccount(ctx context.Context, id int64) error
	GetCourses(ctx context.Context, teacherID int64) ([]*models.Course, error)
}

// TeacherService handles teacher record management. Students never pass the
// role guard on any operation here; updates additionally require ownership.
type TeacherService struct {
	teacherRepo    TeacherStore
	departmentRepo DepartmentLookup
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo TeacherStore, departmentRepo DepartmentLookup) *TeacherService {
	return &TeacherService{
		teacherRepo:    teacherRepo,
		departmentRepo: departmentRepo,
	}
}

// GetAllTeachers retrieves all teachers. Teachers only.
func (s *TeacherService) GetAllTeachers(ctx context.Context, principal *auth.Principal) ([]*models.Teacher, error) {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return nil, err
	}

	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}

// GetTeacherByID retrieves a teacher record. Teachers only; any teacher may
// read any teacher.
func (s *TeacherService) GetTeacherByID(ctx context.Context, principal *auth.Principal, id int64) (*models.Teacher, error) {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid teacher ID", ErrTeacherValidation)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.attachCourses(ctx, teacher)
	return teacher, nil
}

// GetCurrentTeacher retrieves the acting teacher's own record
func (s *TeacherService) GetCurrentTeacher(ctx context.Context, principal *auth.Principal) (*models.Teacher, error) {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return nil, err
	}
	if principal.TeacherID == nil {
		return nil, apperrors.ErrTeacherNotFound
	}

	teacher, err := s.teacherRepo.GetByID(ctx, *principal.TeacherID)
	if err != nil {
		return nil, err
	}

	s.attachCourses(ctx, teacher)
	return teacher, nil
}

// CreateTeacher provisions a teacher record and its linked TEACHER account
// atomically. Any teacher-role account may do this; there is no separate
// admin tier above teachers.
func (s *TeacherService) CreateTeacher(ctx context.Context, principal *auth.Principal, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return nil, err
	}
	if err := s.validateProfile(req.Name, req.Email, req.DepartmentID); err != nil {
		return nil, err
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacher := &models.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	}
	user := &models.User{
		Username: req.Username,
		Password: hash,
	}

	if err := s.teacherRepo.CreateWithAccount(ctx, teacher, user); err != nil {
		return nil, err
	}

	return teacher, nil
}

// UpdateTeacher updates a teacher record. Self-scoped: a teacher may only
// update their own record, and the ownership check runs before the fetch so
// the denial does not reveal whether the target exists.
func (s *TeacherService) UpdateTeacher(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid teacher ID", ErrTeacherValidation)
	}
	if err := auth.AuthorizeTeacherSelf(principal, id); err != nil {
		return nil, err
	}
	if err := s.validateProfile(req.Name, req.Email, req.DepartmentID); err != nil {
		return nil, err
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.Name = req.Name
	teacher.Email = req.Email
	teacher.DepartmentID = req.DepartmentID

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	return teacher, nil
}

// DeleteTeacher deletes a teacher record and retires its linked account.
// Teachers only.
func (s *TeacherService) DeleteTeacher(ctx context.Context, principal *auth.Principal, id int64) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: invalid teacher ID", ErrTeacherValidation)
	}

	return s.teacherRepo.DeleteWithAccount(ctx, id)
}

func (s *TeacherService) attachCourses(ctx context.Context, teacher *models.Teacher) {
	courses, err := s.teacherRepo.GetCourses(ctx, teacher.ID)
	if err == nil {
		teacher.Courses = courses
	}
}

// validateProfile validates the shared profile fields
func (s *TeacherService) validateProfile(name, email string, departmentID int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrTeacherValidation)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrTeacherValidation)
	}
	if departmentID <= 0 {
		return fmt.Errorf("%w: department ID must be positive", ErrTeacherValidation)
	}
	return nil
}
