package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64  `json:"id" db:"id" example:"1"`                        // Unique identifier for the student record
	Name         string `json:"name" db:"name" example:"Jane Doe"`             // Student's full name
	Email        string `json:"email" db:"email" example:"jane@school.edu.tr"` // Student's unique email address
	DepartmentID int64  `json:"departmentId" db:"department_id" example:"2"`   // ID of the student's department

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"` // Associated department
	Courses    []*Course   `json:"courses,omitempty"`    // Enrolled courses
}
