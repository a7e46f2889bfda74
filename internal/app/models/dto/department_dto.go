package dto

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	TeacherID    *int64 `json:"teacherId,omitempty"`
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Credits      int    `json:"credits" binding:"required,gt=0"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	TeacherID    *int64 `json:"teacherId,omitempty"`
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Credits      int    `json:"credits" binding:"required,gt=0"`
}
