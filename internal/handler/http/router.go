package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shiftledger/attendance-backend-go/internal/handler/http/middleware"
	"github.com/shiftledger/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	workSiteHandler WorkSiteHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/current", attendanceHandler.GetCurrent)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/absence", attendanceHandler.SetAbsenceReason)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/work-sites", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", workSiteHandler.List)
				r.Post("/", workSiteHandler.Create)
				r.Get("/{id}", workSiteHandler.Get)
				r.Put("/{id}", workSiteHandler.Update)
				r.Delete("/{id}", workSiteHandler.Deactivate)
				r.Post("/{id}/token", workSiteHandler.RegenerateToken)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/my-tally", reportHandler.GetMyTally)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/grid", reportHandler.GetGrid)
					r.Get("/grid.csv", reportHandler.DownloadGridCSV)
					r.Get("/tally/{employeeID}", reportHandler.GetEmployeeTally)
					r.Post("/exports", reportHandler.EnqueueExport)
				})
			})
		})
	})
	return r
}
