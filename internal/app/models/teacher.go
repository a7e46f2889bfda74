package models

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID           int64  `json:"id" db:"id" example:"1"`                        // Unique identifier for the teacher record
	Name         string `json:"name" db:"name" example:"John Smith"`           // Teacher's full name
	Email        string `json:"email" db:"email" example:"john@school.edu.tr"` // Teacher's unique email address
	DepartmentID int64  `json:"departmentId" db:"department_id" example:"2"`   // ID of the teacher's department

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"` // Associated department
	Courses    []*Course   `json:"courses,omitempty"`    // Courses taught by this teacher
}
