package server

import (
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/auth"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/config"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/db"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/route"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/routes"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/stream"
	"github.com/hugomnr6-ship-it/velo-card-sub001/internal/weather"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Stream  *stream.Hub
	Weather weather.Provider
	Routes  *routes.Service
}

func NewServer(cfg config.Config, pool *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{BodyLimit: 32 * 1024 * 1024})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     pool,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	var provider weather.Provider = weather.NewOpenMeteo(cfg.WeatherBaseURL, cfg.WeatherTimeout, cfg.WeatherConcurrency)
	if redisClient != nil {
		provider = weather.NewCache(provider, redisClient, cfg.WeatherCacheTTL)
	}
	s.Weather = provider

	// Keep the interface nil without a pool so the service reports it.
	var store db.Querier
	if pool != nil {
		store = pool
	}
	analyzer := route.NewAnalyzer(cfg.Analysis(), cfg.Sampler())
	s.Routes = routes.NewService(store, analyzer, provider, s.Stream, cfg.WindSampleCount)

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	routes.RegisterRoutes(s.App.Group("/routes"), s.Routes, jwtMiddleware)
	routes.RegisterAnalysisRoutes(s.App.Group("/analysis"), s.Routes)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
