package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/avelar/pitch/internal/config"
	"github.com/avelar/pitch/pkg/ollama"
)

// Smoke tool for a locally running Ollama daemon. It checks health, runs a
// plain generation and a JSON-mode generation with the same settings the
// server uses.
func main() {
	uri := flag.String("url", "http://localhost:11434", "Ollama base URL")
	model := flag.String("model", "llama3", "model to exercise")
	flag.Parse()

	cfg := config.OllamaConfig{
		BaseURL: *uri,
		Timeout: 120 * time.Second,
	}

	client, err := ollama.NewDefaultClient(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()

	if err := client.Health(ctx); err != nil {
		log.Fatalf("health check failed: %v", err)
	}
	fmt.Println("daemon healthy")

	res, err := client.Generate(ctx, *model, "Summarize in one sentence what a freelance proposal is.")
	if err != nil {
		log.Fatalf("generate failed: %v", err)
	}
	fmt.Printf("text (%vms): %s\n\n", res.Meta["latency_ms"], res.Text)

	res, err = client.GenerateJSON(ctx, *model,
		`Return a JSON object {"pain_points": [...]} with exactly 3 strings describing problems a slow e-commerce site causes.`)
	if err != nil {
		log.Fatalf("json generate failed: %v", err)
	}
	fmt.Printf("json (%vms): %s\n", res.Meta["latency_ms"], res.Text)
}
