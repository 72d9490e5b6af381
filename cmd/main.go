package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/handler"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/router"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/appcontext"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/config"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cf := config.GetConfig()
	appLogger := logger.Setup(cf.Env, cf.LogLevel)

	app, err := appcontext.NewApplicationContext(cf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init application context")
	}

	// 初始化 handler
	server := api.NewServer(
		handler.NewProductHandler(app.CatalogService),
		handler.NewCartHandler(app.CartService),
		handler.NewCheckoutHandler(app.CheckoutService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewAuthHandler(app.AuthService),
	)

	// 設置路由
	r := router.SetupRouter(server, app.TokenMaker, &appLogger, router.Options{
		AllowedOrigins: cf.CorsAllowedOrigins,
		AuthLimiter:    app.AuthLimiter,
	})

	// 設定服務器參數
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Application shutdown error")
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
	<-shutDownCompleted
	log.Info().Msg("closed completed")
}
