package main

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/shiftledger/attendance-backend-go/internal/config"
	appHTTP "github.com/shiftledger/attendance-backend-go/internal/handler/http"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/clock"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/cron"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/database"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/jwt"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/queue"
	"github.com/shiftledger/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftledger/attendance-backend-go/internal/service/attendance"
	reportService "github.com/shiftledger/attendance-backend-go/internal/service/report"
	worksiteService "github.com/shiftledger/attendance-backend-go/internal/service/worksite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workSiteRepo := postgresql.NewWorkSiteRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var exportQueue queue.Queue
	switch cfg.Export.QueueBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		exportQueue = queue.NewRedis(client, cfg.Export.QueueKey)
	case "memory":
		exportQueue = queue.NewInMemory(64)
	default:
		fmt.Println("Unsupported queue backend:", cfg.Export.QueueBackend)
		return
	}

	workSiteSvc := worksiteService.NewWorkSiteService(workSiteRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		recordRepo,
		workSiteRepo,
		employeeRepo,
		clock.System(),
		cfg.Attendance.Cutoff,
		cfg.Attendance.Location,
	)
	reportSvc := reportService.NewReportService(recordRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(recordRepo, cfg.Attendance.Location).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	workSiteHandler := appHTTP.NewWorkSiteHandler(workSiteSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc, exportQueue, cfg.Attendance.Location)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		workSiteHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
