// Package jokesapi contains the REST API that serves aggregated jokes.
package jokesapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/iver-wharf/wharf-core/v2/pkg/ginutil"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-jokes/internal/parallel"
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
	"github.com/iver-wharf/wharf-jokes/pkg/config"
	"github.com/iver-wharf/wharf-jokes/pkg/jokesapi/docs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/gin-swagger/swaggerFiles"
)

var log = logger.NewScoped("JOKESAPI")

// JokeAggregator is the part of the aggregator.Aggregator used by the API.
type JokeAggregator interface {
	GetJokes(ctx context.Context, count int) ([]aggregator.Joke, error)
	Sources() []aggregator.SourceInfo
}

// Serve starts the HTTP server, and the metrics server if one is configured
// with its own bind address. It blocks until the context is cancelled, after
// which the servers are gracefully shut down.
//
// @title Wharf jokes API
// @version v0.1.0
// @description REST API for wharf-jokes to serve jokes aggregated from
// @description multiple joke providers.
// @license.name MIT
// @license.url https://github.com/iver-wharf/wharf-jokes/blob/master/LICENSE
// @contact.name Iver wharf-jokes support
// @contact.url https://github.com/iver-wharf/wharf-jokes/issues
// @contact.email wharf@iver.se
// @query.collection.format multi
func Serve(ctx context.Context, agg JokeAggregator, cfg config.Config, gatherer prometheus.Gatherer) error {
	r := NewRouter(agg, cfg.HTTP)

	var g parallel.Group
	if cfg.Metrics.Enabled {
		metricsHandler := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
		if cfg.Metrics.BindAddress == "" {
			r.GET("/metrics", gin.WrapH(metricsHandler))
		} else {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metricsHandler)
			srv := &http.Server{Addr: cfg.Metrics.BindAddress, Handler: mux}
			g.AddFunc("metrics server", func(ctx context.Context) error {
				return listenAndServe(ctx, srv, cfg.HTTP.ShutdownTimeout)
			})
		}
	}

	srv := &http.Server{Addr: cfg.HTTP.BindAddress, Handler: r}
	g.AddFunc("api server", func(ctx context.Context) error {
		return listenAndServe(ctx, srv, cfg.HTTP.ShutdownTimeout)
	})
	return g.RunCancelEarly(ctx)
}

// NewRouter creates the gin engine with all the API's endpoints registered.
func NewRouter(agg JokeAggregator, cfg config.HTTPConfig) *gin.Engine {
	gin.DefaultWriter = ginutil.DefaultLoggerWriter
	gin.DefaultErrorWriter = ginutil.DefaultLoggerWriter

	r := gin.New()
	r.Use(
		requestIDHandler,
		ginutil.DefaultLoggerHandler,
		ginutil.RecoverProblem,
	)

	applyCORS(r, cfg.CORS)

	r.GET("", pingHandler)
	api := r.Group("/api")
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, func(c *ginSwagger.Config) {
		c.InstanceName = docs.SwaggerInfojokesapi.InstanceName()
	}))

	jokesModule{agg: agg, defaultCount: cfg.DefaultCount}.register(api)
	sourcesModule{agg: agg}.register(api)
	return r
}

func listenAndServe(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().WithString("address", srv.Addr).Message("Starting server.")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		log.Error().
			WithError(err).
			WithString("address", srv.Addr).
			Message("Failed to start web server.")
		return err
	case <-ctx.Done():
	}

	log.Info().WithString("address", srv.Addr).Message("Shutting down server.")
	shutdownCtx := context.Background()
	if shutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, shutdownTimeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func applyCORS(r *gin.Engine, cfg config.CORSConfig) {
	if cfg.AllowAllOrigins {
		log.Info().Message("Allowing all origins in CORS.")
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AddExposeHeaders(requestIDHeader)
		r.Use(cors.New(corsConfig))
	} else if len(cfg.AllowOrigins) > 0 {
		log.Info().
			WithStringf("origin", "%v", cfg.AllowOrigins).
			Message("Allowing origins in CORS.")
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowOrigins
		corsConfig.AddExposeHeaders(requestIDHeader)
		r.Use(cors.New(corsConfig))
	}
}

// Ping is the response from a GET / request.
type Ping struct {
	Message string `json:"message" example:"pong"`
}

// pingHandler godoc
// @id ping
// @summary Ping
// @description Pong.
// @description Added in v0.1.0.
// @tags meta
// @produce json
// @success 200 {object} Ping
// @router / [get]
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, Ping{Message: "pong"})
}
