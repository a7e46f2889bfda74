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

// ErrStudentValidation wraps input validation failures in this service. It
// chains to the validation sentinel so the boundary maps it to a 400.
var ErrStudentValidation = fmt.Errorf("%w: student input rejected", apperrors.ErrValidationFailed)

// StudentStore defines the student record operations this service depends on
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	CreateWithAccount(ctx context.Context, student *models.Student, user *models.User) error
	Update(ctx context.Context, student *models.Student) error
	DeleteWithAccount(ctx context.Context, id int64) error
	GetCourses(ctx context.Context, studentID int64) ([]*models.Course, error)
	ReplaceCourses(ctx context.Context, studentID int64, courseIDs []int64) error
}

// DepartmentLookup is the department existence check shared by the record
// services.
type DepartmentLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// StudentService handles student record management. Every operation takes
// the acting principal explicitly and guards itself before touching the
// store, independent of any route-level check.
type StudentService struct {
	studentRepo    StudentStore
	departmentRepo DepartmentLookup
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore, departmentRepo DepartmentLookup) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
	}
}

// GetAllStudents retrieves all students. Teachers only.
func (s *StudentService) GetAllStudents(ctx context.Context, principal *auth.Principal) ([]*models.Student, error) {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetStudentByID retrieves a student record. Teachers may read any student;
// students only their own. The ownership comparison runs against the
// requested id, so a student probing a foreign id is denied identically
// whether or not the record exists.
func (s *StudentService) GetStudentByID(ctx context.Context, principal *auth.Principal, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", ErrStudentValidation)
	}

	if err := auth.AuthorizeStudentAccess(principal, id); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.attachCourses(ctx, student)
	return student, nil
}

// GetCurrentStudent retrieves the acting student's own record. Student role
// only.
func (s *StudentService) GetCurrentStudent(ctx context.Context, principal *auth.Principal) (*models.Student, error) {
	if err := auth.RequireRole(principal, models.RoleStudent); err != nil {
		return nil, err
	}
	if principal.StudentID == nil {
		// A STUDENT account always owns a student record; a nil reference
		// means the invariant was broken outside this service.
		return nil, apperrors.ErrStudentNotFound
	}

	student, err := s.studentRepo.GetByID(ctx, *principal.StudentID)
	if err != nil {
		return nil, err
	}

	s.attachCourses(ctx, student)
	return student, nil
}

// CreateStudent provisions a student record and its linked STUDENT account
// atomically. Teachers only.
func (s *StudentService) CreateStudent(ctx context.Context, principal *auth.Principal, req *dto.CreateStudentRequest) (*models.Student, error) {
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

	student := &models.Student{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	}
	user := &models.User{
		Username: req.Username,
		Password: hash,
	}

	if err := s.studentRepo.CreateWithAccount(ctx, student, user); err != nil {
		return nil, err
	}

	return student, nil
}

// UpdateStudent updates a student record. Teachers only; students cannot
// mutate any student record, including their own.
func (s *StudentService) UpdateStudent(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", ErrStudentValidation)
	}
	if err := s.validateProfile(req.Name, req.Email, req.DepartmentID); err != nil {
		return nil, err
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Name = req.Name
	student.Email = req.Email
	student.DepartmentID = req.DepartmentID

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent deletes a student record and retires its linked account.
// Teachers only.
func (s *StudentService) DeleteStudent(ctx context.Context, principal *auth.Principal, id int64) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", ErrStudentValidation)
	}

	return s.studentRepo.DeleteWithAccount(ctx, id)
}

// UpdateStudentCourses replaces a student's enrollment set. Teachers only.
func (s *StudentService) UpdateStudentCourses(ctx context.Context, principal *auth.Principal, id int64, courseIDs []int64) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", ErrStudentValidation)
	}

	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.studentRepo.ReplaceCourses(ctx, id, courseIDs)
}

// attachCourses enriches a student with its enrollment set; the record is
// still useful without it.
func (s *StudentService) attachCourses(ctx context.Context, student *models.Student) {
	courses, err := s.studentRepo.GetCourses(ctx, student.ID)
	if err == nil {
		student.Courses = courses
	}
}

// validateProfile validates the shared profile fields
func (s *StudentService) validateProfile(name, email string, departmentID int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrStudentValidation)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrStudentValidation)
	}
	if departmentID <= 0 {
		return fmt.Errorf("%w: department ID must be positive", ErrStudentValidation)
	}
	return nil
}
