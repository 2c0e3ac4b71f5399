package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiftledger/attendance-backend-go/internal/config"
	"github.com/shiftledger/attendance-backend-go/internal/domain/report"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/database"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/metrics"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/queue"
	"github.com/shiftledger/attendance-backend-go/internal/repository/postgresql"
	reportService "github.com/shiftledger/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	recordRepo := postgresql.NewRecordRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	reportSvc := reportService.NewReportService(recordRepo, employeeRepo)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	exportQueue := queue.NewRedis(client, cfg.Export.QueueKey)

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		fmt.Println("Error creating export directory:", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("Shutting down worker", "signal", sig.String())
		cancel()
	}()

	msgs, err := exportQueue.Consume(ctx)
	if err != nil {
		fmt.Println("Error consuming export queue:", err)
		return
	}

	slog.Info("Export worker started", "queue_key", cfg.Export.QueueKey, "export_dir", cfg.Export.Dir)

	w := &worker{
		reportService: reportSvc,
		exportDir:     cfg.Export.Dir,
		loc:           cfg.Attendance.Location,
	}
	for msg := range msgs {
		w.handle(ctx, msg)
	}

	slog.Info("Export worker stopped")
}

type worker struct {
	reportService report.ReportService
	exportDir     string
	loc           *time.Location
}

func (w *worker) handle(ctx context.Context, msg queue.Message) {
	if msg.Type != queue.TypeGridExport {
		slog.Warn("Skipping message of unknown type", "type", msg.Type)
		return
	}

	var job report.ExportJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		slog.Error("Failed to decode export job", "error", err)
		metrics.ExportJobsTotal.WithLabelValues("invalid").Inc()
		return
	}

	if err := w.export(ctx, job); err != nil {
		slog.Error("Export job failed", "error", err, "start_day", job.StartDay, "end_day", job.EndDay)
		metrics.ExportJobsTotal.WithLabelValues("failed").Inc()
		return
	}

	metrics.ExportJobsTotal.WithLabelValues("completed").Inc()
}

func (w *worker) export(ctx context.Context, job report.ExportJob) error {
	start, err := time.ParseInLocation("2006-01-02", job.StartDay, w.loc)
	if err != nil {
		return fmt.Errorf("invalid start day %q: %w", job.StartDay, err)
	}
	end, err := time.ParseInLocation("2006-01-02", job.EndDay, w.loc)
	if err != nil {
		return fmt.Errorf("invalid end day %q: %w", job.EndDay, err)
	}

	filename := fmt.Sprintf("attendance_%s_%s_%d.csv", job.StartDay, job.EndDay, time.Now().Unix())
	path := filepath.Join(w.exportDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := w.reportService.WriteGridCSV(ctx, f, job.EmployeeIDs, start, end); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write export: %w", err)
	}

	slog.Info("Export written", "path", path, "requested_by", job.RequestedBy)
	return nil
}
