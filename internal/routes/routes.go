package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medical-history-server/internal/auth"
	"medical-history-server/internal/handlers"
	"medical-history-server/internal/identity"
	"medical-history-server/internal/middleware"
	"medical-history-server/internal/models"
	"medical-history-server/internal/service"
)

// SetupRoutes configures the application routes.
func SetupRoutes(
	router *gin.Engine,
	svc *service.HistoryService,
	users identity.Lookup,
	verifier *auth.TokenVerifier,
	revoker auth.TokenRevoker,
	logger *zap.Logger,
) {
	// Initialize handlers
	patientHandler := handlers.NewPatientHandler(svc)
	providerHandler := handlers.NewProviderHandler(svc, users)
	caregiverHandler := handlers.NewCaregiverHandler(svc)
	fileHandler := handlers.NewFileHandler(svc)
	authHandler := handlers.NewAuthHandler(revoker, logger)

	authn := middleware.AuthMiddleware(verifier, revoker)

	api := router.Group("/api")
	api.Use(authn)
	{
		api.POST("/auth/logout", authHandler.Logout)

		// Patient routes: the patient id always comes from the token.
		patientRoutes := api.Group("/patient/medical-history")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.GET("/me", patientHandler.GetMyHistory)
			patientRoutes.GET("/me/files", patientHandler.GetMyFiles)
			patientRoutes.POST("/me/files", patientHandler.UploadMyFile)
			patientRoutes.DELETE("/me/files/:fileId", patientHandler.DeleteMyFile)
		}

		// Provider routes: full record lifecycle plus the file sub-resource.
		providerRoutes := api.Group("/provider/medical-history")
		providerRoutes.Use(middleware.RoleAuthMiddleware(models.RoleProvider))
		{
			providerRoutes.POST("", providerHandler.CreateHistory)
			providerRoutes.GET("", providerHandler.GetAllHistories)
			providerRoutes.GET("/patients", providerHandler.GetPatients)
			providerRoutes.GET("/caregivers", providerHandler.GetCaregivers)
			providerRoutes.GET("/:patientId", providerHandler.GetHistory)
			providerRoutes.PUT("/:patientId", providerHandler.UpdateHistory)
			providerRoutes.DELETE("/:patientId", providerHandler.DeleteHistory)
			providerRoutes.GET("/:patientId/files", providerHandler.GetFilesForPatient)
			providerRoutes.POST("/:patientId/files", providerHandler.UploadFileForPatient)
			providerRoutes.DELETE("/:patientId/files/:fileId", providerHandler.DeleteFileForPatient)
		}

		// Caregiver routes: read-only access to assigned patients.
		caregiverRoutes := api.Group("/caregiver/medical-history")
		caregiverRoutes.Use(middleware.RoleAuthMiddleware(models.RoleCaregiver))
		{
			caregiverRoutes.GET("/patients", caregiverHandler.GetAssignedPatients)
			caregiverRoutes.GET("/:patientId", caregiverHandler.GetHistory)
			caregiverRoutes.GET("/:patientId/files", caregiverHandler.GetFiles)
		}
	}

	// File download: authenticated, gated on the parent record inside the
	// handler, so any role with view access can fetch the bytes.
	router.GET("/files/:fileId", authn, fileHandler.Download)

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
