package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/papudim/sales-report/internal/business/report"
	"github.com/papudim/sales-report/internal/platform/config"
	firestoreclient "github.com/papudim/sales-report/internal/platform/firestore"
	apirouter "github.com/papudim/sales-report/internal/platform/http"
	"github.com/papudim/sales-report/internal/platform/logging"
	"github.com/papudim/sales-report/internal/repository"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("dotenv: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	firestoreClient, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		logger.Fatal("firestore init", zap.Error(err))
	}
	defer firestoreClient.Close()

	if err := firestoreclient.Ping(ctx, firestoreClient, cfg.OrdersCollection); err != nil {
		logger.Fatal("firestore ping", zap.Error(err))
	}
	logger.Info("connected to Firestore",
		zap.String("project", cfg.FirebaseProjectID),
		zap.String("credentials", credsSource),
	)

	orders := repository.NewOrderRepository(firestoreClient, cfg.OrdersCollection)
	reports := report.NewService(orders, logger, report.Options{Title: cfg.ReportTitle, TopN: cfg.ReportTopItems})

	router := apirouter.NewRouter(reports, logger, apirouter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		FetchTimeout:   cfg.FetchTimeout,
		PDFName:        cfg.PDFName,
		WorkbookName:   cfg.WorkbookName,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("addr", server.Addr))

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server exited")
}
