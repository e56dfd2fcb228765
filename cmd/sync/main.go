// Command sync mirrors the Let's Read catalog into Postgres and the blob bucket.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bookmirror/internal/catalog"
	"bookmirror/internal/config"
	"bookmirror/internal/imagepipe"
	"bookmirror/internal/ingest"
	"bookmirror/internal/logging"
	"bookmirror/internal/platform/blob"
	"bookmirror/internal/platform/letsread"
	"bookmirror/internal/platform/postgres"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.LoadEnvFiles()

	cfg, err := config.LoadSync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runSync(ctx, cfg, logger); err != nil {
		logger.Error("sync failed", "error", err)
		return 1
	}
	return 0
}

func runSync(ctx context.Context, cfg *config.Sync, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	sink, err := blob.NewS3Sink(blob.Options{
		Endpoint:     cfg.S3.Endpoint,
		AccessKey:    cfg.S3.AccessKey,
		AccessSecret: cfg.S3.AccessSecret,
		Bucket:       cfg.S3.Bucket,
		Region:       cfg.S3.Region,
		UseSSL:       cfg.S3.UseSSL,
	})
	if err != nil {
		return err
	}

	upstream := letsread.NewClient(letsread.Options{
		BaseURL:    cfg.Upstream.BaseURL,
		LanguageID: cfg.Upstream.LanguageID,
		PageSize:   cfg.Upstream.PageSize,
		UserAgent:  cfg.Upstream.UserAgent,
		RPS:        cfg.Upstream.RPS,
		MaxRetries: cfg.Upstream.MaxRetries,
	})

	images := imagepipe.New(sink, imagepipe.WebPTranscoder{
		Quality:      float32(cfg.Images.Quality),
		MaxDimension: cfg.Images.MaxDimension,
	}, imagepipe.Options{
		Concurrency: cfg.Images.Concurrency,
		UserAgent:   cfg.Upstream.UserAgent,
	}, logger)

	svc := ingest.NewService(
		upstream,
		catalog.NewPostgresRepo(pool),
		ingest.NewPostgresRepo(pool),
		images,
		ingest.Config{InitialCursor: cfg.InitialCursor, Resume: cfg.Resume},
		logger,
	)
	return svc.Run(ctx)
}
