package main

import (
	"log"

	"github.com/joho/godotenv"

	"datalens/adapters/ingest"
	adapterllm "datalens/adapters/llm"
	"datalens/internal/advisor"
	"datalens/internal/config"
	"datalens/internal/session"
	"datalens/ports"
	"datalens/ui"
)

func main() {
	// Optional .env for local development; env vars win in deployment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var client ports.LLMClient
	if cfg.AdvisoryEnabled() {
		client = adapterllm.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Temperature, cfg.AI.Timeout)
	} else {
		log.Println("[Main] OPENAI_API_KEY not set - AI advisory disabled")
	}
	adv := advisor.New(client, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Timeout)

	server := ui.NewServer(cfg, session.NewStore(), ingest.NewReader(cfg.Upload.MaxRows), adv)
	if err := server.Run(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
