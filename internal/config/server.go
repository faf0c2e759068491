package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"PawPalGolang/database/postgres"
	assistantHandler "PawPalGolang/internal/api/assistant/handler"
	assistantService "PawPalGolang/internal/api/assistant/service"
	faqHandler "PawPalGolang/internal/api/faq/handler"
	faqRepository "PawPalGolang/internal/api/faq/repository"
	faqService "PawPalGolang/internal/api/faq/service"
	"PawPalGolang/internal/middleware"
	"PawPalGolang/pkg/oracle"
	"PawPalGolang/pkg/redis"
	"PawPalGolang/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const defaultFollowUpDelayMs = 1200

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	oracleClient oracle.IOracle
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithOracleClient(oracleClient oracle.IOracle) ServerOption {
	return func(s *Server) error {
		s.oracleClient = oracleClient
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// FAQ Domain
	faqRepo := faqRepository.New(s.db, s.log)
	faqServices := faqService.New(s.log, faqRepo)
	faqHandlers := faqHandler.New(s.log, s.validator, s.middleware, faqServices)

	// Assistant Domain
	assistantServices := assistantService.NewAssistantService(
		s.log, s.oracleClient, s.redisServer, s.utils, followUpDelay())
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, faqHandlers, assistantHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func followUpDelay() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("FOLLOW_UP_DELAY_MS"))
	if err != nil || ms < 0 {
		ms = defaultFollowUpDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}
