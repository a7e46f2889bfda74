package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/schoolhub/internal/app/controllers"
	"github.com/emre/schoolhub/internal/app/models/dto"
	"github.com/emre/schoolhub/internal/middleware"
)

// SetupRouter configures all application routes. Access control is layered:
// the route gate middleware screens every request against the pattern table
// before a handler runs, and each service operation re-checks role and
// ownership on its own, so a routing mistake cannot open a privileged
// operation.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	departmentController *controllers.DepartmentController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.Use(authMiddleware.Authenticate())
	router.Use(authMiddleware.RouteGate())

	// Health endpoints (public per the gate table)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	v1 := router.Group("/api/v1")

	// Auth routes (public per the gate table)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// Profile route (any authenticated account)
	v1.GET("/profile", userController.GetProfile)

	// Role-scoped profile routes. The gate table binds /student/** to the
	// STUDENT role and /teacher/** to the TEACHER role.
	v1.GET("/student/profile", studentController.GetCurrentStudent)
	v1.GET("/teacher/profile", teacherController.GetCurrentTeacher)

	// Student record routes. List and mutations are teacher-only inside the
	// service; GET /:id additionally allows the owning student.
	students := v1.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.GET("/:id/courses", studentController.GetStudentCourses)
		students.PUT("/:id/courses", studentController.UpdateStudentCourses)
	}

	// Teacher record routes (TEACHER role per the gate table)
	teachers := v1.Group("/teachers")
	{
		teachers.GET("", teacherController.GetAllTeachers)
		teachers.GET("/:id", teacherController.GetTeacherByID)
		teachers.POST("", teacherController.CreateTeacher)
		teachers.PUT("/:id", teacherController.UpdateTeacher)
		teachers.DELETE("/:id", teacherController.DeleteTeacher)
	}

	// Department reference data (reads open to any authenticated account,
	// writes teacher-only inside the service)
	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/:id", departmentController.GetDepartmentByID)
		departments.POST("", departmentController.CreateDepartment)
		departments.PUT("/:id", departmentController.UpdateDepartment)
		departments.DELETE("/:id", departmentController.DeleteDepartment)
	}

	// Course reference data
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.POST("", courseController.CreateCourse)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	// Account administration (TEACHER role per the gate table)
	accounts := v1.Group("/accounts")
	{
		accounts.PUT("/:username/status", authController.SetAccountStatus)
	}
}
