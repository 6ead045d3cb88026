package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/crovdigital/gerente_backend/config"
	"github.com/crovdigital/gerente_backend/middlewares"
	"github.com/crovdigital/gerente_backend/models"
	"github.com/crovdigital/gerente_backend/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type dashboardRequest struct {
	Filter  models.FilterState `json:"filtros" binding:"required"`
	Dataset models.RawDataset  `json:"datos"`
}

func dashboardHandler(c *gin.Context) {
	logger := config.GetLogger()

	var req dashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la petición inválido"})
		return
	}

	report, err := models.BuildDashboardReport(req.Filter, req.Dataset)
	if err != nil {
		config.LogError(logger, "server", "dashboardHandler", "building dashboard report", gin.H{
			"correlationId": middlewares.CorrelationId(c.Request.Context()),
			"filter":        req.Filter,
		}, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.CorrelationMiddleware())

	corsConfig := cors.DefaultConfig()
	if origins := config.GetCorsOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Correlation-Id")
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", healthHandler)
	router.POST("/gerente/dashboard", dashboardHandler)

	return router
}

func main() {
	config.LoadEnv()
	logger := config.GetLogger()

	if mode := config.GetGinMode(); mode != "" {
		gin.SetMode(mode)
	}

	srv := &http.Server{
		Addr:    ":" + config.GetPort(),
		Handler: buildRouter(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithField("addr", srv.Addr).Info("gerente backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.LogError(logger, "server", "main", "http server stopped", nil, err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "server", "main", "graceful shutdown", nil, err)
	}
	logger.Info("gerente backend stopped")
}
