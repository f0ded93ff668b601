package routes

import (
	"github.com/boxflow/backend/internal/controllers"
	"github.com/boxflow/backend/internal/middleware"
	"github.com/boxflow/backend/internal/models"
	"github.com/boxflow/backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize services
	planService := services.NewPlanService(db)
	completionService := services.NewCompletionService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	jobController := controllers.NewJobController(db)
	planningController := controllers.NewPlanningController(planService, completionService)
	stepDetailController := controllers.NewStepDetailController(db)
	machineController := controllers.NewMachineController(db)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", middleware.AuthMiddleware(), authController.RefreshToken)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Users
			users := protected.Group("/users")
			{
				users.GET("/me", userController.GetCurrentUser)
				users.PUT("/me", userController.UpdateCurrentUser)
				users.GET("", userController.GetUsers)
				users.PUT("/:id/role",
					middleware.RequireRole(string(models.RoleAdmin)),
					userController.UpdateUserRole)
			}

			// Job intake and the three pre-planning gates
			jobs := protected.Group("/jobs")
			{
				jobs.POST("", jobController.CreateJob)
				jobs.GET("", jobController.GetJobs)
				jobs.GET("/:nrcJobNo", jobController.GetJob)
				jobs.PUT("/:nrcJobNo/artwork", jobController.CompleteArtwork)
				jobs.PUT("/:nrcJobNo/po", jobController.CompletePO)
				jobs.PUT("/:nrcJobNo/more-info", jobController.CompleteMoreInfo)
			}

			// Job planning and the step pipeline
			planning := protected.Group("/job-planning")
			{
				planning.POST("", planningController.GeneratePlan)
				planning.GET("", planningController.GetPlans)
				planning.GET("/summary", planningController.Summary)
				planning.GET("/:nrcJobNo", planningController.GetPlan)
				planning.GET("/:nrcJobNo/next-step", planningController.NextStep)
				planning.PUT("/:nrcJobNo/steps/:stepNo", planningController.UpdateStep)
				planning.POST("/:nrcJobNo/steps/:stepNo/start", planningController.StartStep)
				planning.POST("/:nrcJobNo/steps/:stepNo/stop", planningController.StopStep)
				planning.POST("/:nrcJobNo/steps/:stepNo/complete", planningController.CompleteStep)
				planning.PUT("/:nrcJobNo/steps/:stepNo/machines", planningController.ReassignMachines)
			}

			// Step detail records, dispatched by step-type slug
			details := protected.Group("/steps/:stepType")
			{
				details.POST("", stepDetailController.CreateDetail)
				details.GET("/by-job/:nrcJobNo", stepDetailController.GetDetailByJob)
				details.PUT("/:id", stepDetailController.UpdateDetail)
			}

			// Machine master data
			machines := protected.Group("/machines")
			{
				machines.GET("", machineController.GetMachines)
				machines.GET("/:id", machineController.GetMachine)
				machines.POST("",
					middleware.RequireRole(string(models.RoleAdmin)),
					machineController.CreateMachine)
				machines.PUT("/:id/status",
					middleware.RequireRole(string(models.RoleAdmin), string(models.RolePlanner)),
					machineController.UpdateMachineStatus)
			}
		}
	}
}
