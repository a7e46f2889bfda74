package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/schoolhub/internal/app/models"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
	"github.com/emre/schoolhub/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (department_id, teacher_id, code, name, credits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		course.DepartmentID, course.TeacherID, course.Code, course.Name, course.Credits).Scan(&course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx, `
		SELECT id, department_id, teacher_id, code, name, credits
		FROM courses
		WHERE id = $1`,
		id).Scan(&course.ID, &course.DepartmentID, &course.TeacherID,
		&course.Code, &course.Name, &course.Credits)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, department_id, teacher_id, code, name, credits
		FROM courses
		ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.DepartmentID, &course.TeacherID,
			&course.Code, &course.Name, &course.Credits); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetByDepartmentID retrieves all courses for a department
func (r *CourseRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, department_id, teacher_id, code, name, credits
		FROM courses
		WHERE department_id = $1
		ORDER BY code`,
		departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.DepartmentID, &course.TeacherID,
			&course.Code, &course.Name, &course.Credits); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET department_id = $1, teacher_id = $2, code = $3, name = $4, credits = $5
		WHERE id = $6`,
		course.DepartmentID, course.TeacherID, course.Code, course.Name, course.Credits, course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course and its enrollments
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM student_courses WHERE course_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting course enrollments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit course deletion: %w", err)
	}

	return nil
}
