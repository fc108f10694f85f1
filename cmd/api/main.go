package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/kidspots/kidspots-api/internal/config"
	"github.com/kidspots/kidspots-api/internal/logging"
	"github.com/kidspots/kidspots-api/internal/media"
	"github.com/kidspots/kidspots-api/internal/nominatim"
	"github.com/kidspots/kidspots-api/internal/overpass"
	miniostore "github.com/kidspots/kidspots-api/internal/repository/minio"
	"github.com/kidspots/kidspots-api/internal/repository/ports"
	"github.com/kidspots/kidspots-api/internal/repository/postgres"
	"github.com/kidspots/kidspots-api/internal/service"
	transport "github.com/kidspots/kidspots-api/internal/transport/http"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash mirror disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer db.Close()

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("parse SESSION_TTL: %v", err)
	}

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		store, err := miniostore.NewStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL, cfg.MinIOPublicURL)
		if err != nil {
			log.Fatalf("connect to object storage: %v", err)
		}
		storage = store
	}

	auth := service.NewAuthService(
		postgres.NewUserRepo(db),
		postgres.NewSessionRepo(db),
		storage,
		media.NewFFMPEGProcessor(cfg.FFmpegPath, media.DefaultMaxDimension),
		cfg.JWTSecret,
		service.AuthConfig{
			GoogleAudience: cfg.GoogleAudience,
			SessionTTL:     sessionTTL,
			ProfileBucket:  cfg.MinIOBucketProfile,
			ImageMaxBytes:  cfg.ProfileImageMaxBytes,
		},
	)
	venues := service.NewVenueService(overpass.NewClient(cfg.OverpassURL))
	locations := service.NewLocationService(nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent))
	marks := service.NewMarkService(postgres.NewFavoriteRepo(db), postgres.NewVisitedRepo(db))

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, auth)
	transport.RegisterVenues(e, auth, venues, marks)
	transport.RegisterLocations(e, locations)
	transport.RegisterFavorites(e, auth, marks)
	transport.RegisterVisited(e, auth, marks)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
