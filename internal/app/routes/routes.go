package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/schooltransit/internal/app/controllers"
	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Unknown methods on known paths answer 405 instead of gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse("Method not allowed."))
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Resource not found."))
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- Public auth routes ---
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.GET("/number-plates", ctrl.Auth.GetNumberPlates)

		auth.GET("/me", authMiddleware.JWTAuth(), ctrl.Auth.Me)
	}

	// --- School Admin routes ---
	students := router.Group("/api/students")
	students.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleSchoolAdmin)))
	{
		students.GET("", ctrl.Student.GetDashboard)
		students.POST("/admissions", ctrl.Student.AdmitStudent)
		students.PATCH("/:studentId/parent-contact", ctrl.Student.ChangeParentContact)
		students.PATCH("/:studentId/withdrawal", ctrl.Student.WithdrawStudent)
		students.PATCH("/:studentId/master-data", ctrl.Student.UpdateMasterData)
	}

	// --- Driver routes ---
	fuel := router.Group("/api/fuel-maintenance")
	fuel.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleDriver)))
	{
		fuel.GET("/requests", ctrl.FuelMaintenance.GetRequests)
		fuel.POST("/requests", ctrl.FuelMaintenance.CreateRequest)
	}
}
