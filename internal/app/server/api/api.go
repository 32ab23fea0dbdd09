// GET  /                               # Стартовая страница
// GET  /{id}                           # Страница записи (новое монтирование или ?view=)
// POST /{id}/status                    # Обновить статус
// POST /{id}/dialog/close              # Закрыть диалог
// GET  /api/v1/health                  # Health check
// GET  /api/v1/records/{id}            # Представление записи (JSON)
// GET  /api/v1/records/{id}/views/{v}  # Текущее состояние представления
// POST /api/v1/records/{id}/status     # Обновить статус (JSON)

package api

import (
	"fmt"

	healthAPI "checkin/internal/app/server/api/http/health"
	"checkin/internal/app/server/api/http/middleware"
	"checkin/internal/app/server/api/http/middleware/logger"
	recordAPI "checkin/internal/app/server/api/http/record"
	"checkin/internal/app/server/web"
	"checkin/internal/domain/view"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Record *recordAPI.Handler
	Web    *web.Handler
}

// Options are the pieces of configuration the router needs.
type Options struct {
	Sentinel string
	Theme    web.Theme
	// HideDocs отключает /api/docs, OpenAPI остается доступен.
	HideDocs bool
}

// New создает *chi.Mux со страницами и JSON API
func New(views view.Servicer, counter healthAPI.ViewCounter, opts Options, log *slog.Logger) (*chi.Mux, error) {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)

	config := huma.DefaultConfig("Check-in API", "1.0.0")
	// Одиночные сегменты пути принадлежат страницам записей.
	config.OpenAPIPath = "/api/openapi"
	config.DocsPath = "/api/docs"
	config.SchemasPath = "/api/schemas"
	if opts.HideDocs {
		config.DocsPath = ""
	}

	API := humachi.New(mux, config)

	h, err := handlers(views, counter, opts, log)
	if err != nil {
		return nil, err
	}
	h.Health.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	loggerMW := logger.New(log)
	mux.Group(func(r chi.Router) {
		r.Use(loggerMW.Handler)
		h.Web.SetupRoutes(r)
	})

	return mux, nil
}

func handlers(views view.Servicer, counter healthAPI.ViewCounter, opts Options, log *slog.Logger) (*Handlers, error) {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	healthHandler := healthAPI.NewHandler(counter, log, middlewares.Add(loggerMW.Middleware()).Take())
	recordHandler := recordAPI.NewHandler(views, log, middlewares.Add(loggerMW.Middleware()).Take())

	webHandler, err := web.NewHandler(views, opts.Sentinel, opts.Theme, log)
	if err != nil {
		return nil, fmt.Errorf("web handler: %w", err)
	}

	return &Handlers{
		Health: healthHandler,
		Record: recordHandler,
		Web:    webHandler,
	}, nil
}
