package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"traveldeal/cmd/fx/config_fx"
	"traveldeal/cmd/fx/controllers_fx"
	"traveldeal/cmd/fx/db_fx"
	"traveldeal/cmd/fx/itinerary_fx"
	"traveldeal/cmd/fx/memcache_fx"
	"traveldeal/cmd/fx/narrative_fx"
	"traveldeal/cmd/fx/pricing_fx"
	"traveldeal/internal/api/controllers"
	"traveldeal/internal/config"
	"traveldeal/internal/scheduler"
	"traveldeal/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		narrative_fx.Module,
		pricing_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Provide(ProvideRouter, scheduler.NewJobScheduler),
		fx.Invoke(StartServer, StartScheduler),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func StartScheduler(lc fx.Lifecycle, s *scheduler.JobScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	itineraryController *controllers.ItineraryController,
	pricingController *controllers.PricingController) *gin.Engine {

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.Recovery(logger))

	RegisterRoutes(r, itineraryController, pricingController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	pricingController *controllers.PricingController) {

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jobsGroup := r.Group("/jobs")
	jobsGroup.POST("/itinerary/run", itineraryController.RunItineraryJob)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.GET("", itineraryController.ListItineraries)
	itineraryGroup.GET("/:windowStart/:duration", itineraryController.GetItinerary)

	r.GET("/preview/itineraries/:windowStart/:duration", itineraryController.PreviewItinerary)

	r.GET("/windows", pricingController.RecommendWindows)
	r.GET("/deals/triggers", pricingController.DealTriggers)
}
