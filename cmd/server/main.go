package main

import (
	"log"
	"time"

	"evidencias_app_go/config"
	"evidencias_app_go/db"
	"evidencias_app_go/handlers"
	"evidencias_app_go/middleware"
	"evidencias_app_go/models"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.Session{},
		&models.Expediente{},
		&models.Indicio{},
		&models.IndicioArchivo{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Attachment storage (R2 or local filesystem)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/usuarios/login", handlers.Login)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/me", handlers.GetCurrentUsuario)
		api.POST("/usuarios/logout", handlers.Logout)

		// Expedientes
		api.GET("/expedientes", handlers.GetExpedientes)
		api.GET("/expedientes/estadisticas", handlers.GetExpedienteEstadisticas)
		api.GET("/expedientes/tecnico/:tecnicoId", handlers.GetExpedientesByTecnico)
		api.GET("/expedientes/:id", handlers.GetExpediente)
		api.POST("/expedientes", handlers.CreateExpediente)
		api.PUT("/expedientes/:id", handlers.UpdateExpediente)

		// Indicios
		api.GET("/indicios", handlers.GetIndicios)
		api.GET("/indicios/expediente/:expedienteId", handlers.GetIndiciosByExpediente)
		api.GET("/indicios/tecnico/:tecnicoId", handlers.GetIndiciosByTecnico)
		api.GET("/indicios/:id", handlers.GetIndicio)
		api.POST("/indicios", handlers.CreateIndicio)
		api.PUT("/indicios/:id", handlers.UpdateIndicio)
		api.POST("/indicios/:id/archivos", handlers.UploadIndicioArchivo)
		api.GET("/indicios/:id/archivos", handlers.GetIndicioArchivos)
		api.GET("/indicios/:id/archivos/:archivoId", handlers.DownloadIndicioArchivo)

		// Usuarios (read)
		api.GET("/usuarios", handlers.GetUsuarios)
		api.GET("/usuarios/:id", handlers.GetUsuario)
		api.PUT("/usuarios/:id", handlers.UpdateUsuario)

		// Review and destructive operations (supervisor/admin only)
		review := api.Group("")
		review.Use(middleware.RequireRole(models.RolSupervisor, models.RolAdmin))
		{
			review.PUT("/expedientes/:id/estado", handlers.ChangeExpedienteEstado)
			review.PUT("/indicios/:id/estado", handlers.ChangeIndicioEstado)
			review.DELETE("/expedientes/:id", handlers.DeleteExpediente)
			review.DELETE("/indicios/:id", handlers.DeleteIndicio)
			review.DELETE("/indicios/:id/archivos/:archivoId", handlers.DeleteIndicioArchivo)
			review.GET("/reportes/expedientes", handlers.DownloadExpedientesReport)
		}

		// User administration (admin only)
		admin := api.Group("/usuarios")
		admin.Use(middleware.RequireRole(models.RolAdmin))
		{
			admin.POST("", handlers.CreateUsuario)
			admin.DELETE("/:id", handlers.DeleteUsuario)
		}
	}

	// Background cleanup of expired sessions (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
