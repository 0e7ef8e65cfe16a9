package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/firestore"

	cartapp "github.com/arkanhakim/livecart/internal/cart/app"
	"github.com/arkanhakim/livecart/internal/cart/infra/kvstore"
	catalogapp "github.com/arkanhakim/livecart/internal/catalog/app"
	catalogfs "github.com/arkanhakim/livecart/internal/catalog/infra/firestore"
	checkoutapp "github.com/arkanhakim/livecart/internal/checkout/app"
	"github.com/arkanhakim/livecart/internal/checkout/infra/adapter"
	checkoutfs "github.com/arkanhakim/livecart/internal/checkout/infra/firestore"
	"github.com/arkanhakim/livecart/internal/checkout/infra/qr"
	orderapp "github.com/arkanhakim/livecart/internal/order/app"
	orderfs "github.com/arkanhakim/livecart/internal/order/infra/firestore"
	"github.com/arkanhakim/livecart/internal/order/infra/mail"
	"github.com/arkanhakim/livecart/pkg/config"
	"github.com/arkanhakim/livecart/pkg/logger"
	"github.com/arkanhakim/livecart/pkg/shutdown"
)

const cartCollection = "cartStores"

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	fsClient := mustFirestore(ctx, cfg.ProjectID, log)
	defer fsClient.Close()

	cartSvc := cartapp.NewService(kvstore.NewFirestore(fsClient, cartCollection), cfg.CartStorageKey)

	catalogSvc := catalogapp.NewService(
		catalogfs.NewProductRepo(fsClient),
		catalogfs.NewCategoryRepo(fsClient),
		catalogfs.NewLiveRepo(fsClient),
		10,
	)

	var mailer orderapp.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = mail.NewOrderMailer(mail.NewSendGridClient(cfg.SendGridAPIKey), cfg.MailFrom)
		log.Info("order confirmation mail enabled", slog.String("from", cfg.MailFrom))
	}
	orderSvc := orderapp.NewService(orderfs.NewOrderRepo(fsClient), mailer, log)

	payments := checkoutfs.NewPaymentMethodRepo(fsClient)
	qrEnc := qr.NewEncoder(0)

	cartSource := adapter.NewCartServiceSource(cartSvc)
	orderGateway := adapter.NewOrderServiceGateway(orderSvc)
	newWizard := func(userID string) *checkoutapp.Wizard {
		return checkoutapp.NewWizard(cartSource, orderGateway, payments, qrEnc, userID, log)
	}

	h := newHandlers(cartSvc, catalogSvc, orderSvc, payments, qrEnc, newWizard, log)

	mux := http.NewServeMux()
	h.routes(mux)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustFirestore(ctx context.Context, projectID string, log *slog.Logger) *firestore.Client {
	if projectID == "" {
		log.Error("FIRESTORE_PROJECT_ID is required")
		os.Exit(1)
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Error("firestore client init failed", slog.Any("err", err))
		os.Exit(1)
	}
	return client
}
