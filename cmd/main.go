package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vnkhanh/survey-link/config"
	"github.com/vnkhanh/survey-link/controllers"
	"github.com/vnkhanh/survey-link/generator"
	"github.com/vnkhanh/survey-link/middleware"
	"github.com/vnkhanh/survey-link/remote"
	"github.com/vnkhanh/survey-link/routes"
	"github.com/vnkhanh/survey-link/session"
)

func main() {
	root := &cobra.Command{
		Use:   "survey-link",
		Short: "Tạo, chia sẻ và thu thập khảo sát qua link tự chứa",
	}
	root.AddCommand(serveCmd(), linkCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Chạy API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			log, err := config.NewLogger(cfg.Debug)
			if err != nil {
				return err
			}
			defer log.Sync()

			var gen generator.Generator
			if cfg.GeneratorURL != "" {
				gen = generator.NewHTTPGenerator(cfg.GeneratorURL)
			}
			sessions := session.NewManager(cfg.SessionTTL, log)
			defer sessions.Close()
			controllers.Init(
				sessions,
				config.NewFileEndpointStore(cfg.EndpointFile),
				gen,
				remote.NewClient(),
				log,
			)

			if !cfg.Debug {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(middleware.RequestLogger(log), gin.Recovery())

			allowed := make(map[string]bool, len(cfg.AllowedOrigins))
			for _, o := range cfg.AllowedOrigins {
				allowed[o] = true
			}
			r.Use(cors.New(cors.Config{
				AllowOriginFunc: func(origin string) bool {
					return allowed[origin]
				},
				AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
				ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
				AllowCredentials: true,
				MaxAge:           12 * time.Hour,
			}))

			r.GET("/", func(c *gin.Context) {
				c.String(200, "Survey link server is running")
			})

			if err := r.SetTrustedProxies(nil); err != nil {
				return err
			}

			routes.SetupRoutes(r)

			log.Info("server listening", zap.String("port", cfg.Port))
			return r.Run(":" + cfg.Port)
		},
	}
}
