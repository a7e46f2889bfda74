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

// TeacherRepository handles database operations for teacher records and
// their linked accounts.
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, department_id
		FROM teachers
		WHERE id = $1`,
		id).Scan(&teacher.ID, &teacher.Name, &teacher.Email, &teacher.DepartmentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return &teacher, nil
}

// GetAll retrieves all teachers
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, department_id
		FROM teachers
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var teacher models.Teacher
		if err := rows.Scan(&teacher.ID, &teacher.Name, &teacher.Email, &teacher.DepartmentID); err != nil {
			return nil, err
		}
		teachers = append(teachers, &teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// CreateWithAccount creates the teacher record and its linked TEACHER
// account in one transaction. The user's password must already be hashed.
func (r *TeacherRepository) CreateWithAccount(ctx context.Context, teacher *models.Teacher, user *models.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO teachers (name, email, department_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		teacher.Name, teacher.Email, teacher.DepartmentID).Scan(&teacher.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, password, role_type, enabled, locked, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Username, user.Password, models.RoleTeacher, true, false, teacher.ID).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameTaken
		}
		return fmt.Errorf("error creating teacher account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit teacher provisioning: %w", err)
	}

	user.RoleType = models.RoleTeacher
	user.Enabled = true
	user.TeacherID = &teacher.ID
	return nil
}

// Update updates an existing teacher record
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE teachers
		SET name = $1, email = $2, department_id = $3
		WHERE id = $4`,
		teacher.Name, teacher.Email, teacher.DepartmentID, teacher.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// DeleteWithAccount deletes a teacher record and retires its linked account
// in one transaction. Courses owned by the teacher are detached, not
// deleted.
func (r *TeacherRepository) DeleteWithAccount(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE teacher_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting teacher account: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE courses SET teacher_id = NULL WHERE teacher_id = $1`, id); err != nil {
		return fmt.Errorf("error detaching teacher courses: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit teacher deletion: %w", err)
	}

	return nil
}

// GetCourses retrieves the courses owned by a teacher
func (r *TeacherRepository) GetCourses(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, department_id, teacher_id, code, name, credits
		FROM courses
		WHERE teacher_id = $1
		ORDER BY code`,
		teacherID)
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
