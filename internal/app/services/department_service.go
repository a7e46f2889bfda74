package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/schoolhub/internal/app/auth"
	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
)

// ErrDepartmentValidation wraps input validation failures in this service. It
// chains to the validation sentinel so the boundary maps it to a 400.
var ErrDepartmentValidation = fmt.Errorf("%w: department input rejected", apperrors.ErrValidationFailed)

// DepartmentStore defines the department operations this service depends on
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentService handles department reference data. Reads are open to any
// authenticated principal; writes are teacher only.
type DepartmentService struct {
	departmentRepo DepartmentStore
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo DepartmentStore) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
	}
}

// validateDepartment validates department data before database operations
func (s *DepartmentService) validateDepartment(department *models.Department) error {
	if department == nil {
		return fmt.Errorf("%w: department is nil", ErrDepartmentValidation)
	}
	if strings.TrimSpace(department.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrDepartmentValidation)
	}
	if strings.TrimSpace(department.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrDepartmentValidation)
	}
	if !isValidDepartmentCode(department.Code) {
		return fmt.Errorf("%w: code must be alphanumeric and uppercase", ErrDepartmentValidation)
	}
	return nil
}

// isValidDepartmentCode checks if a department code is uppercase alphanumeric
func isValidDepartmentCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}

// CreateDepartment creates a new department. Teachers only.
func (s *DepartmentService) CreateDepartment(ctx context.Context, principal *auth.Principal, department *models.Department) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return err
	}
	return nil
}

// GetDepartmentByID retrieves a department by ID. Any authenticated
// principal.
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, principal *auth.Principal, id int64) (*models.Department, error) {
	if err := auth.RequireRole(principal, models.RoleStudent, models.RoleTeacher); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid department ID", ErrDepartmentValidation)
	}

	return s.departmentRepo.GetByID(ctx, id)
}

// GetAllDepartments retrieves all departments. Any authenticated principal.
func (s *DepartmentService) GetAllDepartments(ctx context.Context, principal *auth.Principal) ([]*models.Department, error) {
	if err := auth.RequireRole(principal, models.RoleStudent, models.RoleTeacher); err != nil {
		return nil, err
	}

	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

// UpdateDepartment updates an existing department. Teachers only.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, principal *auth.Principal, department *models.Department) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if err := s.validateDepartment(department); err != nil {
		return err
	}
	if department.ID <= 0 {
		return fmt.Errorf("%w: invalid department ID", ErrDepartmentValidation)
	}

	return s.departmentRepo.Update(ctx, department)
}

// DeleteDepartment deletes a department by ID. Teachers only.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, principal *auth.Principal, id int64) error {
	if err := auth.RequireRole(principal, models.RoleTeacher); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: invalid department ID", ErrDepartmentValidation)
	}

	return s.departmentRepo.Delete(ctx, id)
}
