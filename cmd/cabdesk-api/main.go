// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"cabdesk/internal/config"
	httptransport "cabdesk/internal/http"
	"cabdesk/internal/http/handlers"
	"cabdesk/internal/infra"
	"cabdesk/internal/maps"
	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fare"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err == nil {
		log.Info("loaded .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	ruleStore := fare.NewStore(dbPool, redisClient)
	if err := ruleStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("pricing schema: %v", err)
	}
	if err := ruleStore.Seed(ctx); err != nil {
		log.Fatalf("pricing seed: %v", err)
	}
	fareSvc := fare.NewService(ruleStore)

	bookingStore := booking.NewPGStore(dbPool)
	if err := bookingStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("booking schema: %v", err)
	}

	var distance handlers.DistanceProvider
	var places handlers.Autocompleter
	if cfg.Maps.APIKey != "" {
		dist, err := maps.NewDistanceService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps: %v", err)
		}
		distance = dist
		pl, err := maps.NewPlacesService(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			log.Fatalf("places: %v", err)
		}
		places = pl
	} else {
		log.Warn("no maps API key; using straight-line distance estimates")
		distance = maps.NewStraightLineProvider(cfg.Maps.RoadFactor)
	}

	bookingSvc := booking.NewService(bookingStore, fareSvc, distance)

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
	} else {
		log.Warn("no firebase project configured; API auth disabled")
	}

	var origins []string
	if cfg.HTTP.CORSOrigins != "" {
		origins = strings.Split(cfg.HTTP.CORSOrigins, ",")
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Fares:      fareSvc,
		Rules:      ruleStore,
		Bookings:   bookingSvc,
		Distance:   distance,
		Places:     places,
		Verifier:   verifier,
		Log:        log,
		CORSOrigin: origins,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
