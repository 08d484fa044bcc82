package server

import (
	"time"

	"github.com/morepixel/BudgetOverlander/internal/auth"
	"github.com/morepixel/BudgetOverlander/internal/config"
	"github.com/morepixel/BudgetOverlander/internal/overpass"
	"github.com/morepixel/BudgetOverlander/internal/planner"
	"github.com/morepixel/BudgetOverlander/internal/region"
	"github.com/morepixel/BudgetOverlander/internal/routing"
	"github.com/morepixel/BudgetOverlander/internal/stream"
	"github.com/morepixel/BudgetOverlander/internal/track"
	"github.com/morepixel/BudgetOverlander/internal/trackcache"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	overpassClient := overpass.NewClient(s.Cfg.OverpassEndpointList())
	osrmClient := routing.NewClient(s.Cfg.OSRMBaseURL)

	var cache trackcache.Store
	if s.DB != nil {
		cache = trackcache.NewPostgresStore(s.DB)
	}
	finder := track.NewFinder(cache, overpassClient)

	regionService := region.NewService(
		region.NewStore(s.DB, s.Redis),
		region.NewCollector(overpassClient, s.Stream),
	)
	assembler := planner.NewAssembler(osrmClient, time.Duration(s.Cfg.RoutingDelayMs)*time.Millisecond, s.Cfg.FuelPricePerLiter)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	track.RegisterRoutes(s.App.Group("/tracks"), finder)
	region.RegisterRoutes(s.App.Group("/regions"), regionService, jwtMiddleware)
	planner.RegisterRoutes(s.App.Group("/routes"), regionService, assembler, finder, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
