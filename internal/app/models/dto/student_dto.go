package dto

// CreateStudentRequest represents student provisioning data. The username
// and password seed the linked STUDENT account created in the same
// transaction as the profile record.
type CreateStudentRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	Username     string `json:"username" binding:"required,min=3"`
	Password     string `json:"password" binding:"required,min=8"`
}

// UpdateStudentRequest represents student profile update data
type UpdateStudentRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
}

// UpdateStudentCoursesRequest replaces a student's enrollment set
type UpdateStudentCoursesRequest struct {
	CourseIDs []int64 `json:"courseIds" binding:"required"`
}
