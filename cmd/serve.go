package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"superapp-api/actions"
	"superapp-api/config"
	"superapp-api/geocode"
	"superapp-api/handlers"
	"superapp-api/middleware"
	"superapp-api/roles"
	"superapp-api/routes"
	"superapp-api/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := e.openStore(ctx)
	if err != nil {
		return err
	}

	gin.SetMode(e.conf.Server.GinMode)
	srv := &http.Server{
		Addr:    ":" + e.conf.Server.Port,
		Handler: NewEngine(e.conf, st, e.log),
	}

	errc := make(chan error, 1)
	go func() {
		e.log.Infof("🚀 Server running on http://localhost:%s", e.conf.Server.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	e.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewEngine wires the services together and returns the gin engine.
func NewEngine(conf config.Config, st *store.Store, log logrus.FieldLogger) *gin.Engine {
	svc := actions.New(st, log, actions.WithAuthDelay(conf.Auth.SimulatedDelay))
	geo := geocode.NewClient(conf.Geocode.BaseURL, conf.Geocode.UserAgent, conf.Geocode.Timeout)
	tokens := middleware.NewTokens(conf.Auth.JWTSecret, conf.Auth.TokenTTL)
	h := handlers.New(st, svc, roles.NewRouter(), geo, tokens, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🛵 Welcome to the DOMI Super App API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "delivery", "vendor", "admin"},
		})
	})

	routes.SetupRoutes(r, h, tokens)
	return r
}
