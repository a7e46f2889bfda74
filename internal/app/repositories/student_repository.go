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
	"github.com/emre/schoolhub/internal/pkg/logger"
)

// StudentRepository handles database operations for student records and
// their linked accounts.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, department_id
		FROM students
		WHERE id = $1`,
		id).Scan(&student.ID, &student.Name, &student.Email, &student.DepartmentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, department_id
		FROM students
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Email, &student.DepartmentID); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// CreateWithAccount creates the student record and its linked STUDENT
// account in one transaction, so a record is never observable without an
// owning account. The user's password must already be hashed.
func (r *StudentRepository) CreateWithAccount(ctx context.Context, student *models.Student, user *models.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO students (name, email, department_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		student.Name, student.Email, student.DepartmentID).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, password, role_type, enabled, locked, student_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Username, user.Password, models.RoleStudent, true, false, student.ID).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameTaken
		}
		return fmt.Errorf("error creating student account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit student provisioning: %w", err)
	}

	user.RoleType = models.RoleStudent
	user.Enabled = true
	user.StudentID = &student.ID
	return nil
}

// Update updates an existing student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET name = $1, email = $2, department_id = $3
		WHERE id = $4`,
		student.Name, student.Email, student.DepartmentID, student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteWithAccount deletes a student record and retires its linked account
// in one transaction, so no orphaned credentials remain.
func (r *StudentRepository) DeleteWithAccount(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting student account: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM student_courses WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting student enrollments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit student deletion: %w", err)
	}

	return nil
}

// GetCourses retrieves the courses a student is enrolled in
func (r *StudentRepository) GetCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.department_id, c.teacher_id, c.code, c.name, c.credits
		FROM courses c
		JOIN student_courses sc ON sc.course_id = c.id
		WHERE sc.student_id = $1
		ORDER BY c.code`,
		studentID)
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

// ReplaceCourses replaces a student's enrollment set in one transaction
func (r *StudentRepository) ReplaceCourses(ctx context.Context, studentID int64, courseIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM student_courses WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("error clearing student enrollments: %w", err)
	}

	for _, courseID := range courseIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2)`,
			studentID, courseID); err != nil {
			logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error enrolling student in course")
			return fmt.Errorf("error enrolling student in course %d: %w", courseID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit enrollment update: %w", err)
	}

	return nil
}
