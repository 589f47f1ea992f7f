package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/safwanhafeez/Document-Scanner-OCR/internal/config"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/gemini"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/handler"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/sandbox"
	"github.com/safwanhafeez/Document-Scanner-OCR/internal/service"
	"github.com/safwanhafeez/Document-Scanner-OCR/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level, cfg.Log.Format)
	if cfg.Gemini.APIKey == "" {
		appLogger.Warn("GEMINI_API_KEY not set; conversion requests will fail until configured")
	}

	oracle := gemini.NewClient(cfg.Gemini, appLogger)
	renderer := sandbox.NewRunner(cfg.Sandbox.PythonBin, cfg.Sandbox.Timeout, appLogger)
	convertService := service.NewConvertService(cfg, appLogger, oracle, renderer)
	convertHandler := handler.NewConvertHandler(convertService, appLogger)

	router := setupRouter(cfg, convertHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLogger.Infof("server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("server shutting down...")
	if err := server.Close(); err != nil {
		appLogger.Errorf("server close failed: %v", err)
	}
	appLogger.Info("server stopped")
}

func setupRouter(cfg *config.Config, convertHandler *handler.ConvertHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.Logger())
	// Recovery is the outermost boundary for unexpected faults during
	// assembly: they surface as a generic 500, never a crash.
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	api := router.Group("/api")
	{
		api.GET("/health", convertHandler.Health)
		api.POST("/convert", convertHandler.Convert)
	}

	return router
}
