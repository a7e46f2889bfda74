package dto

// CreateTeacherRequest represents teacher provisioning data. Any
// teacher-role account may provision another teacher; there is no separate
// admin tier.
type CreateTeacherRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	Username     string `json:"username" binding:"required,min=3"`
	Password     string `json:"password" binding:"required,min=8"`
}

// UpdateTeacherRequest represents teacher profile update data
type UpdateTeacherRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
}
