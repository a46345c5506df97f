package main

import (
	"fmt"
	"log"

	"inscan/internal/config"
	"inscan/internal/handler"
	"inscan/internal/port"
	"inscan/internal/repository/postgres"
	"inscan/internal/router"
	"inscan/internal/service"
	s3storage "inscan/internal/storage/s3"
	"inscan/internal/summarizer"
	"inscan/internal/summarizer/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	analysisRepo := postgres.NewAnalysisRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize summarizer chain
	llm := buildSummarizer(&cfg.Summarizer)
	if llm == nil {
		log.Println("no summarizer provider configured; analyze endpoints will be unavailable")
	}

	// Initialize services
	analysisSvc := service.NewAnalysisService(analysisRepo, llm, s3Client, cfg.S3.Bucket)
	reportSvc := service.NewReportService(analysisRepo, s3Client, cfg.S3.Bucket, cfg.S3.PresignExpiry)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, analysisH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildSummarizer assembles the provider chain from config. Providers are
// tried in order with rate-limit circuit breaking; returns nil when none is
// configured.
func buildSummarizer(cfg *config.SummarizerConfig) port.Summarizer {
	var (
		providers []port.Summarizer
		names     []string
	)
	for _, pc := range []*config.SummarizerProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig()} {
		if pc == nil || pc.APIKey == "" {
			continue
		}
		switch pc.Provider {
		case "openai":
			providers = append(providers, openai.NewSummarizer(pc))
			names = append(names, pc.Provider)
		default:
			log.Printf("unknown summarizer provider %q, skipping", pc.Provider)
		}
	}
	if len(providers) == 0 {
		return nil
	}
	if len(providers) == 1 {
		return providers[0]
	}
	return summarizer.NewFallbackSummarizer(providers, names)
}
