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

	"github.com/joho/godotenv"

	"github.com/AI-killer-project-team/backend/internal/config"
	"github.com/AI-killer-project-team/backend/internal/handler"
	aiService "github.com/AI-killer-project-team/backend/internal/service/ai"
	"github.com/AI-killer-project-team/backend/internal/service/company"
	questionService "github.com/AI-killer-project-team/backend/internal/service/question"
	reportService "github.com/AI-killer-project-team/backend/internal/service/report"
	sessionService "github.com/AI-killer-project-team/backend/internal/service/session"
	speechService "github.com/AI-killer-project-team/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	directory, err := company.Load(cfg.Interview.CompanyDataPath)
	if err != nil {
		log.Printf("warning: failed to load company data: %v", err)
		directory = company.NewDirectory(nil)
	}

	store := sessionService.NewStore()

	// Generation is optional; without it questions fall back to templates and
	// reports degrade to deterministic content.
	var gateway aiService.Gateway
	if cfg.AI.Enabled() {
		svc, err := aiService.NewService(ctx, directory, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize generation service: %v", err)
			log.Println("continuing without generated content")
		} else {
			gateway = svc
			log.Println("generation service initialized")
		}
	} else {
		log.Println("Ark credentials not configured, skipping generation service")
	}

	var speechSvc *speechService.Service
	if cfg.Speech.Enabled {
		speechSvc = speechService.NewService(cfg.Speech)
		log.Println("speech service initialized")
	} else {
		log.Println("OpenAI credentials not configured, skipping speech service")
	}

	generator := questionService.NewGenerator(directory, gateway, cfg.Interview)
	builder := reportService.NewBuilder(store, gateway)

	router := handler.NewRouter(store, generator, builder, speechSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("interview trainer backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
