// POST /api/auth/register    # register (public)
// POST /api/auth/login       # login, returns token + company scope (public)
// GET  /api/cards            # list cards, ?view=active|history|all (auth)
// POST /api/cards            # create card, assigns card_no (auth)
// PUT  /api/cards/{id}       # update card (auth)
// DELETE /api/cards/{id}     # delete card (auth)
// GET  /api/audits           # list audits (auth)
// GET  /api/audits/{id}      # audit with entries (auth)
// POST /api/audits           # create audit + entries atomically (auth)
// DELETE /api/audits/{id}    # delete audit with its entries (auth)
// GET  /api/companies        # tenant list for dropdowns (auth)
// POST /api/companies        # create company (admin)
// POST /api/attachments      # upload evidence photo, returns URL (auth)
// GET  /api/summary          # KPI summary (auth)
// GET  /api/health           # liveness probe (public)
// GET  /metrics              # Prometheus (public)

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	attachmentAPI "github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/attachment"
	auditAPI "github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/audit"
	cardAPI "github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/card"
	companyAPI "github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/company"
	healthAPI "github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/health"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware/auth"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware/logger"
	summaryAPI "github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/summary"
	userAPI "github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/user"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/session"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/user"
	"github.com/Reinvik/nexus-lean-sub000/internal/infrastructure/storage/object"
	"github.com/Reinvik/nexus-lean-sub000/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health     *healthAPI.Handler
	User       *userAPI.Handler
	Card       *cardAPI.Handler
	Audit      *auditAPI.Handler
	Company    *companyAPI.Handler
	Attachment *attachmentAPI.Handler
	Summary    *summaryAPI.Handler
}

// New builds the chi mux with every operation registered through huma.
func New(storage *postgres.Storage, objects object.Store, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("NexusLean API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, objects, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Card.SetupRoutes(API)
	h.Audit.SetupRoutes(API)
	h.Company.SetupRoutes(API)
	h.Attachment.SetupRoutes(API)
	h.Summary.SetupRoutes(API)

	mux.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Locally stored evidence photos are served as static files.
	if local, ok := objects.(*object.LocalStore); ok {
		mux.Handle("/static/*", http.StripPrefix("/static/",
			http.FileServer(http.Dir(local.Dir()))))
	}

	return mux
}

func handlers(storage *postgres.Storage, objects object.Store, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(storage, log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage, log)
	userService := user.NewService(userRepo, user.NewValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	cardRepo := postgres.NewCardRepository(storage, log)
	cardService := card.NewService(cardRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	cardHandler := cardAPI.NewHandler(cardService, log, middlewares.GetAllAndClear())

	auditRepo := postgres.NewAuditRepository(storage, log)
	auditService := audit.NewService(auditRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	auditHandler := auditAPI.NewHandler(auditService, log, middlewares.GetAllAndClear())

	companyRepo := postgres.NewCompanyRepository(storage, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	companyHandler := companyAPI.NewHandler(companyRepo, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	attachmentHandler := attachmentAPI.NewHandler(objects, log, middlewares.GetAllAndClear())

	reportRepo := postgres.NewReportRepository(storage, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	summaryHandler := summaryAPI.NewHandler(reportRepo, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:     healthHandler,
		User:       userHandler,
		Card:       cardHandler,
		Audit:      auditHandler,
		Company:    companyHandler,
		Attachment: attachmentHandler,
		Summary:    summaryHandler,
	}
}
