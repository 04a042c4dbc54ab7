package http

import (
	"time"

	"cyberlab-backend/config"
	"cyberlab-backend/internal/domain"
	"cyberlab-backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config, handler *Handler, tokens *utils.TokenMaker) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public Routes
	api := r.Group("/api/v1")
	{
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.POST("/forgot-password", handler.ForgotPassword)
	}

	// Protected Routes (any authenticated role)
	protected := api.Group("/")
	protected.Use(AuthMiddleware(tokens))
	{
		protected.GET("/profile", handler.GetProfile)
		protected.PUT("/profile", handler.UpdateProfile)
		protected.GET("/dashboard", handler.GetStudentDashboard)

		protected.GET("/courses", handler.ListCourses)
		protected.GET("/courses/:id", handler.GetCourseDetail)
		protected.GET("/my-course", handler.GetMyCourse)

		protected.GET("/labs/:id", handler.GetLabDetail)
		protected.GET("/labs/:id/progress", handler.GetLabProgress)
		protected.GET("/labs/:id/submissions", handler.GetLabSubmissions)

		protected.GET("/achievements", handler.ListAchievements)
		protected.GET("/achievements/me", handler.GetMyAchievements)

		protected.GET("/files/:id", handler.StreamFile)
		protected.GET("/files/:id/info", handler.GetFileInfo)
	}

	// Student Only
	student := api.Group("/")
	student.Use(AuthMiddleware(tokens, domain.RoleStudent))
	{
		student.POST("/labs/:id/submissions", handler.SubmitAnswer)
		student.POST("/submissions/files", handler.UploadSubmissionFile)
	}

	// Instructor & Admin Only
	instructor := api.Group("/instructor")
	instructor.Use(AuthMiddleware(tokens, domain.RoleInstructor, domain.RoleAdmin))
	{
		instructor.POST("/courses", handler.CreateCourse)
		instructor.PUT("/courses/:id", handler.UpdateCourse)
		instructor.DELETE("/courses/:id", handler.DeleteCourse)

		instructor.POST("/modules", handler.CreateModule)
		instructor.PUT("/modules/:id", handler.UpdateModule)
		instructor.DELETE("/modules/:id", handler.DeleteModule)

		instructor.POST("/labs", handler.CreateLab)
		instructor.PUT("/labs/:id", handler.UpdateLab)
		instructor.DELETE("/labs/:id", handler.DeleteLab)

		instructor.POST("/tasks", handler.CreateTask)
		instructor.DELETE("/tasks/:id", handler.DeleteTask)

		instructor.POST("/questions", handler.CreateQuestion)
		instructor.PUT("/questions/:id", handler.UpdateQuestion)
		instructor.DELETE("/questions/:id", handler.DeleteQuestion)

		instructor.GET("/labs/:id/pending", handler.GetPendingUploads)
		instructor.PATCH("/submissions/:id/grade", handler.GradeUpload)

		instructor.POST("/files", handler.UploadAttachment)
		instructor.DELETE("/files/:id", handler.DeleteFile)
	}

	// Staff & Admin Only (user administration)
	admin := api.Group("/admin")
	admin.Use(AuthMiddleware(tokens, domain.RoleStaff, domain.RoleAdmin))
	{
		admin.GET("/dashboard", handler.GetAdminDashboard)
		admin.GET("/users", handler.ListUsers)
		admin.POST("/users", handler.CreateUser)
		admin.PUT("/users/:id", handler.UpdateUser)
		admin.PATCH("/users/:id/approve", handler.ApproveUser)
		admin.DELETE("/users/:id", handler.DeleteUser)
		admin.PATCH("/users/:id/course", handler.AssignCourse)
	}

	return r
}
