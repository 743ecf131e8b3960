package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-admin-api/config"
	"user-admin-api/internal/application/ports"
	"user-admin-api/internal/application/services"
	domain "user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/hasher"
	"user-admin-api/internal/infrastructure/jwt"
	"user-admin-api/internal/infrastructure/metrics"
	"user-admin-api/internal/infrastructure/mq"
	"user-admin-api/internal/interface/api/rest"
	"user-admin-api/internal/interface/api/rest/middleware"
	"user-admin-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	userRepo   domain.Repository
	closeDB    func()
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	publisher  ports.EventPublisher
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.App.Host, cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	userRepo, closeDB, err := OpenStore(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{
		logger:    logger,
		cfg:       cfg,
		userRepo:  userRepo,
		closeDB:   closeDB,
		httpSrv:   httpSrv,
		router:    r,
		mCounter:  mCounter,
		publisher: mq.NewNoop(logger),
	}

	if !cfg.MQEnabled() {
		logger.Info("rabbitmq disabled, lifecycle events are not published")
		return a, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("rabbitmq config: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		a.Close()
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	a.mq, a.publisher = rbMQ, rbMQ
	if err = rbMQ.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("init rabbitmq: %w", err)
	}

	if cfg.MQ.AuditConsumer {
		rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
		if err = rmqConsumer.Connect(rabbitDsn); err != nil {
			a.Close()
			return nil, fmt.Errorf("connect rabbitmq consumer: %w", err)
		}
		if err = rmqConsumer.Init(); err != nil {
			a.Close()
			return nil, fmt.Errorf("init rabbitmq consumer: %w", err)
		}
		a.mqConsumer = rmqConsumer
	}

	return a, nil
}

func (a *App) Close() {
	if a.mq != nil {
		_ = a.mq.Close()
	}
	if a.closeDB != nil {
		a.closeDB()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// errgroup: goroutine errors are collected and ctx is shared for the
	// graceful shutdown of every worker
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	// the publisher stops only after the HTTP drain has finished
	pubCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()
	pubDone := make(chan struct{})
	if a.mq != nil {
		go func() {
			defer close(pubDone)
			a.mq.PublisherWorker(pubCtx)
		}()
	} else {
		close(pubDone)
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	shutdownErr := a.httpSrv.Shutdown(shutdownCtx)

	stopPublisher()
	<-pubDone

	if shutdownErr != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(shutdownErr))
		return shutdownErr
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

// UserService wires the user service on top of the opened store.
func (a *App) UserService() *services.UserService {
	return services.NewUserService(a.userRepo, hasher.New(), a.publisher, a.mCounter)
}

func (a *App) InitControllers() {
	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	userService := a.UserService()
	authService := services.NewAuthService(a.userRepo, hasher.New(), jwtService, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService)
	rest.NewUserController(a.router, userService, a.logger, jwtService)
	rest.NewHealthController(a.router, userService, a.logger)

	// ops
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

// SeedSampleUsers fills an empty store with the demo accounts.
func (a *App) SeedSampleUsers(ctx context.Context) error {
	n, err := a.UserService().Seed(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		a.logger.Info("sample users inserted",
			zap.Int("count", n),
			zap.String("admin", "admin / admin123"),
			zap.String("users", "johndoe or janedoe / user123"),
		)
	}
	return nil
}

func (a *App) Logger() *zap.Logger   { return a.logger }
func (a *App) Config() config.Config { return a.cfg }
