package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"match-service/internal/config"
	matchHnd "match-service/internal/match/handler"
	"match-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(Recover(logger))
	r.Use(RequestID())
	r.Use(Logging(logger))
	r.Use(CORS(cfg.AllowOrigins))
	r.Use(LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// основной эндпоинт: каталог + прайсы одним запросом
	r.Post("/match", matchHnd.Match(cfg, logger))

	return r
}
