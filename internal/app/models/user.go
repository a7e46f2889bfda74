package models

import (
	"time"
)

// RoleType defines the closed set of account roles. There is no admin tier:
// every teacher-role account holds the full teacher capability set.
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
)

// Valid reports whether the role belongs to the closed set.
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User defines the account model based on the 'users' table. Exactly one of
// StudentID / TeacherID is set, matching RoleType; the pairing is enforced
// both at write time and by a CHECK constraint on the table.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the account
	Username    string     `json:"username" db:"username" example:"jdoe"`                                   // Unique login name
	Password    string     `json:"-" db:"password"`                                                         // Bcrypt password hash (excluded from JSON)
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // Account role (STUDENT or TEACHER)
	Enabled     bool       `json:"enabled" db:"enabled" example:"true"`                                     // Whether the account is enabled
	Locked      bool       `json:"locked" db:"locked" example:"false"`                                      // Whether the account is locked
	StudentID   *int64     `json:"studentId,omitempty" db:"student_id"`                                     // Owned student record (STUDENT accounts only)
	TeacherID   *int64     `json:"teacherId,omitempty" db:"teacher_id"`                                     // Owned teacher record (TEACHER accounts only)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the account was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the account was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}
