package server

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikhilkoche/Home-Assignment/pkg/chat"
	"github.com/nikhilkoche/Home-Assignment/pkg/config"
	"github.com/nikhilkoche/Home-Assignment/pkg/connection"
	"github.com/nikhilkoche/Home-Assignment/pkg/health"
	"github.com/nikhilkoche/Home-Assignment/pkg/ingest"
	"github.com/nikhilkoche/Home-Assignment/pkg/llm"
	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
	"github.com/nikhilkoche/Home-Assignment/pkg/rag"
	"github.com/nikhilkoche/Home-Assignment/pkg/vectordb"
)

func Main() {
	addr := flag.String("addr", "", "Server address (overrides config)")
	configPath := flag.String("config", "", "Config file path (optional)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	logger.Init(logger.LogLevel(*logLevel), *logFormat)
	log := logger.Get()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.ErrorWithErr("Failed to load configuration", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	log.InfoWith("Configuration loaded",
		"address", cfg.Server.Address,
		"vectordb", cfg.VectorDB.Type,
		"model", cfg.LLM.Model)

	store, err := vectordb.NewStore(cfg.VectorDB)
	if err != nil {
		log.ErrorWithErr("Failed to open vector store", err)
		os.Exit(1)
	}
	defer store.Close()

	client := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, 0)
	embedder := &rag.LLMEmbedder{Client: client, Model: cfg.LLM.EmbeddingModel}
	retriever := rag.NewVectorRetriever(store, embedder, cfg.VectorDB.TopK, cfg.VectorDB.MinSimilarity)
	answerer := rag.NewAnswerer(retriever, client, rag.NewHistory(), cfg.LLM.Model, cfg.LLM.Temperature)

	registry := connection.NewRegistry()
	registry.MaxAttempts = cfg.Chat.SendRetries
	pump := chat.NewPump(registry, answerer, time.Duration(cfg.Chat.ReceiveTimeout)*time.Second)
	pipeline := ingest.NewPipeline(store, embedder)

	monitor := health.NewMonitor()
	monitor.SetComponentStatus("vectordb", health.StatusHealthy, cfg.VectorDB.Type)
	monitor.SetComponentStatus("llm", health.StatusHealthy, cfg.LLM.Model)
	if cfg.LLM.APIKey == "" {
		monitor.SetComponentStatus("llm", health.StatusDegraded, "no API key configured")
		log.WarnWith("No LLM API key configured; answers will fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Documents.Watch {
		watcher, err := ingest.NewWatcher(pipeline)
		if err != nil {
			log.ErrorWithErr("Failed to create document watcher", err)
			os.Exit(1)
		}
		if err := os.MkdirAll(cfg.Documents.Dir, 0o755); err != nil {
			log.ErrorWithErr("Failed to create documents directory", err)
			os.Exit(1)
		}
		go func() {
			if err := watcher.Watch(ctx, cfg.Documents.Dir); err != nil {
				log.ErrorWithErr("Document watcher stopped", err)
			}
		}()
	}

	srv := NewServer(cfg, registry, pump, pipeline, monitor)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		log.InfoWith("Received signal, shutting down", "signal", sig.String())
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.ErrorWithErr("Error during shutdown", err)
		}
	case err := <-errChan:
		if err != nil {
			log.ErrorWithErr("Server error", err)
			os.Exit(1)
		}
	}
	log.InfoWith("Server stopped")
}
