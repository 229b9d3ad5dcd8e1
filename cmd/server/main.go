package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/coursekit/syllex/internal/acquire"
	"github.com/coursekit/syllex/internal/api"
	"github.com/coursekit/syllex/internal/config"
	"github.com/coursekit/syllex/internal/extractor"
	"github.com/coursekit/syllex/internal/ocr"
	"github.com/coursekit/syllex/internal/raster"
	"github.com/coursekit/syllex/internal/section"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Wire the acquisition pipeline. Section specs are fixed at startup
	// and shared read-only across requests.
	pdfAcquirer := &acquire.PDFAcquirer{
		Raster:      &raster.Pdftoppm{},
		OCR:         ocr.New(cfg.OCRLanguage),
		DPI:         cfg.OCRDPI,
		PageTimeout: cfg.OCRPageTimeout,
		Concurrency: cfg.OCRConcurrency,
		Contrast:    cfg.OCRContrast,
		Threshold:   uint8(cfg.OCRThreshold),
	}
	dispatch := &acquire.Dispatcher{PDF: pdfAcquirer}
	svc := extractor.New(dispatch, section.DefaultSpecs(), log)

	srv := api.NewServer(svc, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Msg("starting syllex")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
