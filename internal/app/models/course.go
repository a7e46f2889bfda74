package models

// Course represents a course offered by a department.
type Course struct {
	ID           int64  `json:"id" db:"id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	TeacherID    *int64 `json:"teacherId,omitempty" db:"teacher_id"` // Owning teacher (nullable)
	Code         string `json:"code" db:"code"`
	Name         string `json:"name" db:"name"`
	Credits      int    `json:"credits" db:"credits"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
