package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/fuyadhasanfahim/hr-management-sub001/config"
	"github.com/fuyadhasanfahim/hr-management-sub001/config/middleware"
	_ "github.com/fuyadhasanfahim/hr-management-sub001/docs"
	"github.com/fuyadhasanfahim/hr-management-sub001/handlers"
	"github.com/fuyadhasanfahim/hr-management-sub001/pkg/mailer"
	"github.com/fuyadhasanfahim/hr-management-sub001/repository"
)

func SetupRoutes(app *fiber.App, cfg *config.AppConfig) {
	// Repositories
	userRepo := repository.NewUserRepository()
	staffRepo := repository.NewStaffRepository()
	counterRepo := repository.NewCounterRepository()
	branchRepo := repository.NewBranchRepository()
	shiftRepo := repository.NewShiftRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	leaveRepo := repository.NewLeaveRequestRepository()
	clientRepo := repository.NewClientRepository()
	orderRepo := repository.NewOrderRepository()
	expenseRepo := repository.NewExpenseRepository()
	profitShareRepo := repository.NewProfitShareRepository()
	careerRepo := repository.NewCareerRepository()

	mail := mailer.New(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo)
	staffHandler := handlers.NewStaffHandler(staffRepo, counterRepo)
	salaryHandler := handlers.NewSalaryHandler(staffRepo, userRepo, mail)
	branchHandler := handlers.NewBranchHandler(branchRepo)
	shiftHandler := handlers.NewShiftHandler(shiftRepo, staffRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, staffRepo, shiftRepo)
	leaveHandler := handlers.NewLeaveHandler(leaveRepo, staffRepo, userRepo, mail)
	orderHandler := handlers.NewOrderHandler(orderRepo, clientRepo)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo)
	profitShareHandler := handlers.NewProfitShareHandler(profitShareRepo, staffRepo)
	careerHandler := handlers.NewCareerHandler(careerRepo, mail, cfg)
	reportHandler := handlers.NewReportHandler(staffRepo, expenseRepo)
	fileHandler := handlers.NewFileHandler(userRepo)
	dashboardHandler := handlers.NewDashboardHandler(orderRepo, expenseRepo, leaveRepo)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HR Management API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Public careers page
	api.Get("/careers", careerHandler.PublicOpenings)
	api.Post("/careers/:id/apply", careerHandler.Apply)
	api.Get("/files/:id", fileHandler.GetFile)

	// Authentication
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", middleware.AuthMiddleware(), middleware.AdminMiddleware(), authHandler.Register)
	authGroup.Get("/me", middleware.AuthMiddleware(), authHandler.Me)
	authGroup.Post("/change-password", middleware.AuthMiddleware(), authHandler.ChangePassword)
	authGroup.Delete("/users/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), authHandler.DeleteUser)

	// Staff roster and profiles
	staffGroup := api.Group("/staff", middleware.AuthMiddleware())
	staffGroup.Get("/", staffHandler.ListRoster)
	staffGroup.Get("/code/:staffId", staffHandler.GetStaffByCode)
	staffGroup.Post("/complete-profile", staffHandler.CompleteProfile)
	staffGroup.Get("/:id", staffHandler.GetStaff)
	staffGroup.Get("/:id/shift-assignments", shiftHandler.Assignments)

	adminStaffGroup := staffGroup.Group("/", middleware.AdminMiddleware())
	adminStaffGroup.Post("/", staffHandler.CreateStaff)
	adminStaffGroup.Patch("/:id", staffHandler.UpdateStaff)
	adminStaffGroup.Delete("/:id", staffHandler.DeleteStaff)
	adminStaffGroup.Get("/:id/salary", salaryHandler.AdminViewSalary)
	adminStaffGroup.Put("/:id/salary", salaryHandler.UpdateSalary)
	adminStaffGroup.Get("/:id/salary/history", salaryHandler.SalaryHistory)
	adminStaffGroup.Put("/:id/salary/visibility", salaryHandler.SetVisibility)

	// Self-service salary flow
	salaryGroup := api.Group("/salary", middleware.AuthMiddleware())
	salaryGroup.Post("/view", salaryHandler.ViewSalary)
	salaryGroup.Post("/pin", salaryHandler.SetPin)
	salaryGroup.Post("/pin/reset-request", salaryHandler.RequestPinReset)
	salaryGroup.Post("/pin/reset", salaryHandler.ResetPin)

	// Branches
	branchGroup := api.Group("/branches", middleware.AuthMiddleware())
	branchGroup.Get("/", branchHandler.List)
	branchGroup.Get("/:id", branchHandler.Get)
	adminBranchGroup := branchGroup.Group("/", middleware.AdminMiddleware())
	adminBranchGroup.Post("/", branchHandler.Create)
	adminBranchGroup.Patch("/:id", branchHandler.Update)
	adminBranchGroup.Delete("/:id", branchHandler.Delete)

	// Shifts and assignments
	shiftGroup := api.Group("/shifts", middleware.AuthMiddleware())
	shiftGroup.Get("/", shiftHandler.List)
	shiftGroup.Get("/:id", shiftHandler.Get)
	adminShiftGroup := shiftGroup.Group("/", middleware.AdminMiddleware())
	adminShiftGroup.Post("/", shiftHandler.Create)
	adminShiftGroup.Post("/assign", shiftHandler.Assign)
	adminShiftGroup.Post("/assignments/:id/end", shiftHandler.EndAssignment)
	adminShiftGroup.Patch("/:id", shiftHandler.Update)
	adminShiftGroup.Delete("/:id", shiftHandler.Delete)

	// Attendance
	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware())
	attendanceGroup.Post("/scan", attendanceHandler.Scan)
	attendanceGroup.Get("/me", attendanceHandler.MyAttendance)
	adminAttendanceGroup := attendanceGroup.Group("/", middleware.AdminMiddleware())
	adminAttendanceGroup.Post("/qr", attendanceHandler.GenerateQR)
	adminAttendanceGroup.Get("/", attendanceHandler.List)
	adminAttendanceGroup.Patch("/:id", attendanceHandler.Update)

	// Leave
	leaveGroup := api.Group("/leave", middleware.AuthMiddleware())
	leaveGroup.Post("/", leaveHandler.Create)
	leaveGroup.Get("/me", leaveHandler.MyRequests)
	leaveGroup.Get("/balance", leaveHandler.MyBalance)
	adminLeaveGroup := leaveGroup.Group("/", middleware.AdminMiddleware())
	adminLeaveGroup.Get("/", leaveHandler.List)
	adminLeaveGroup.Post("/:id/approve", leaveHandler.Approve)
	adminLeaveGroup.Post("/:id/reject", leaveHandler.Reject)
	adminLeaveGroup.Post("/:id/revoke", leaveHandler.Revoke)

	// Clients and orders
	clientGroup := api.Group("/clients", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	clientGroup.Post("/", orderHandler.CreateClient)
	clientGroup.Get("/", orderHandler.ListClients)
	clientGroup.Patch("/:id", orderHandler.UpdateClient)
	clientGroup.Delete("/:id", orderHandler.DeleteClient)

	orderGroup := api.Group("/orders", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	orderGroup.Post("/", orderHandler.CreateOrder)
	orderGroup.Get("/", orderHandler.ListOrders)
	orderGroup.Get("/summary", orderHandler.Summary)
	orderGroup.Put("/:id/status", orderHandler.UpdateOrderStatus)
	orderGroup.Delete("/:id", orderHandler.DeleteOrder)

	// Expenses
	expenseGroup := api.Group("/expenses", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	expenseGroup.Post("/", expenseHandler.Create)
	expenseGroup.Get("/", expenseHandler.List)
	expenseGroup.Get("/summary", expenseHandler.Summary)
	expenseGroup.Patch("/:id", expenseHandler.Update)
	expenseGroup.Delete("/:id", expenseHandler.Delete)

	// Profit sharing
	profitGroup := api.Group("/profit-shares", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	profitGroup.Post("/", profitShareHandler.Run)
	profitGroup.Get("/", profitShareHandler.List)
	profitGroup.Get("/:id", profitShareHandler.Get)

	// Careers administration
	adminCareerGroup := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	adminCareerGroup.Post("/careers", careerHandler.CreateOpening)
	adminCareerGroup.Get("/careers", careerHandler.ListOpenings)
	adminCareerGroup.Patch("/careers/:id", careerHandler.UpdateOpening)
	adminCareerGroup.Delete("/careers/:id", careerHandler.DeleteOpening)
	adminCareerGroup.Get("/careers/:id/applications", careerHandler.ListApplications)
	adminCareerGroup.Put("/applications/:id/status", careerHandler.UpdateApplicationStatus)

	// Dashboard
	api.Get("/dashboard", middleware.AuthMiddleware(), middleware.AdminMiddleware(), dashboardHandler.Overview)

	// Reports
	reportGroup := api.Group("/reports", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	reportGroup.Get("/roster", reportHandler.RosterExcel)
	reportGroup.Get("/expenses", reportHandler.ExpenseExcel)

	// Files
	api.Post("/files/avatar", middleware.AuthMiddleware(), fileHandler.UploadAvatar)

	log.Info().Msg("routes registered")
}
