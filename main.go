package main

import (
	"context"
	"os"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/config/middleware"
	_ "github.com/fuyadhasanfahim/hr-management-sub001/docs"
	"github.com/fuyadhasanfahim/hr-management-sub001/pkg/logger"
	"github.com/fuyadhasanfahim/hr-management-sub001/pkg/paseto"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
	"github.com/fuyadhasanfahim/hr-management-sub001/router"
	"github.com/fuyadhasanfahim/hr-management-sub001/seeder"
	_ "time/tzdata"
)

// @title HR Management API
// @version 1.0
// @description Staff roster, attendance, leave, orders, expenses and profit sharing for a multi-branch business
//
// @contact.name API Support
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
func main() {
	logger.Init()

	cfg := config.LoadConfig()
	if err := paseto.Init(cfg.PasetoSecret); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token key")
	}

	config.MongoConnect()
	defer config.DisconnectDB()
	config.InitDatabase()

	if os.Getenv("SEED_ON_START") == "true" {
		seeder.SeedAdmin(repository.NewUserRepository(),
			os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"))
		seeder.SeedBranches(repository.NewBranchRepository())
		seeder.SeedShifts(repository.NewShiftRepository())
	}

	app := fiber.New()
	config.SetupCORS(app)
	app.Use(logger.RequestLogger())

	middleware.InitMetrics()
	app.Use(middleware.PrometheusMiddleware())

	router.SetupRoutes(app, cfg)

	// Absence sweep: after the last shift of the day has ended, staff on
	// a workday with no attendance record and no approved leave are
	// marked absent.
	scheduler := gocron.NewScheduler(time.Local)
	attendanceRepo := repository.NewAttendanceRepository()
	staffRepo := repository.NewStaffRepository()
	shiftRepo := repository.NewShiftRepository()
	leaveRepo := repository.NewLeaveRequestRepository()
	if _, err := scheduler.Every(1).Day().At("23:30").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := attendanceRepo.MarkAbsentStaff(ctx, staffRepo, shiftRepo, leaveRepo); err != nil {
			log.Error().Err(err).Msg("absence sweep failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule absence sweep")
	}
	scheduler.StartAsync()

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
