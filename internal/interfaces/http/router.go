package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/bloodconnect-api/internal/application/analytics"
	"github.com/jhoicas/bloodconnect-api/internal/application/auth"
	"github.com/jhoicas/bloodconnect-api/internal/application/usecase"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

// Version versión de la API expuesta en la bienvenida.
const Version = "1.0.0"

const (
	msgWelcome       = "Welcome to Blood Connect API"
	msgRouteNotFound = "Route not found"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
	// SwaggerFile ruta al swagger.json; si no existe, /docs no se monta.
	SwaggerFile string
	Log         zerolog.Logger
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PatientUC   *usecase.PatientUseCase
	DonorUC     *usecase.DonorUseCase
	HospitalUC  *usecase.HospitalUseCase
	ReviewUC    *usecase.ReviewUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *appanalytics.AdminDashboardUseCase
	Users       UserLookup
	JWTSecret   string
}

// NewApp construye la aplicación Fiber con middlewares globales, rutas y el 404 final.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(cfg.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Blood Connect API",
			}))
		} else {
			cfg.Log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": msgWelcome, "version": Version})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok", "service": cfg.Name})
	})

	Router(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, CodeNotFound, msgRouteNotFound)
	})
	return app
}

// Router registra las rutas de la API. La autenticación y el rol se aplican por ruta
// para que las rutas públicas y el 404 no pasen por AuthMiddleware.
func Router(app *fiber.App, deps RouterDeps) {
	authn := AuthMiddleware(deps.JWTSecret, deps.Users)
	admin := RequireRole(entity.RoleAdmin)
	patient := RequireRole(entity.RolePatient)
	donor := RequireRole(entity.RoleDonor)
	hospital := RequireRole(entity.RoleHospital)

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)
	authGroup.Put("/update-profile", authn, authHandler.UpdateProfile)

	// Donors
	donorHandler := NewDonorHandler(deps.DonorUC)
	donors := api.Group("/donors")
	donors.Get("/search", donorHandler.Search)
	donors.Get("/", authn, admin, donorHandler.List)
	donors.Get("/profile", authn, donor, donorHandler.GetProfile)
	donors.Put("/profile", authn, donor, donorHandler.UpdateProfile)
	donors.Patch("/availability", authn, donor, donorHandler.ToggleAvailability)

	// Hospitals
	hospitalHandler := NewHospitalHandler(deps.HospitalUC)
	hospitals := api.Group("/hospitals")
	hospitals.Get("/search", hospitalHandler.Search)
	hospitals.Get("/", authn, admin, hospitalHandler.List)
	hospitals.Get("/profile", authn, hospital, hospitalHandler.GetProfile)
	hospitals.Put("/profile", authn, hospital, hospitalHandler.UpdateProfile)
	hospitals.Patch("/blood-units", authn, hospital, hospitalHandler.UpdateBloodUnits)
	hospitals.Get("/blood-units/report", authn, hospital, hospitalHandler.BloodUnitReport)
	hospitals.Get("/critical-units", authn, hospital, hospitalHandler.CriticalUnits)

	// Patients
	patientHandler := NewPatientHandler(deps.PatientUC)
	patients := api.Group("/patients")
	patients.Get("/", authn, admin, patientHandler.List)
	patients.Get("/profile", authn, patient, patientHandler.GetProfile)
	patients.Put("/profile", authn, patient, patientHandler.UpdateProfile)

	// Reviews
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	reviews := api.Group("/reviews")
	reviews.Post("/", authn, patient, reviewHandler.Create)
	reviews.Get("/my-reviews", authn, patient, reviewHandler.ListMine)
	reviews.Get("/hospital/:hospitalId", reviewHandler.ListHospital)
	reviews.Get("/", authn, admin, reviewHandler.ListAll)
	reviews.Patch("/:reviewId/approval", authn, admin, reviewHandler.ToggleApproval)
	reviews.Delete("/:reviewId", authn, admin, reviewHandler.Delete)

	// Admin
	adminHandler := NewAdminHandler(deps.DashboardUC, deps.UserUC)
	adminGroup := api.Group("/admin")
	adminGroup.Get("/dashboard", authn, admin, adminHandler.Dashboard)
	adminGroup.Get("/activity-logs", authn, admin, adminHandler.ActivityLogs)
	adminGroup.Get("/users", authn, admin, adminHandler.Users)
	adminGroup.Patch("/users/:userId/status", authn, admin, adminHandler.ToggleUserStatus)
	adminGroup.Delete("/users/:userId", authn, admin, adminHandler.DeleteUser)
	adminGroup.Get("/donors/export", authn, admin, donorHandler.Export)
}
