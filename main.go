package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mmshah/job-apply-agent/internal/agent"
	"github.com/mmshah/job-apply-agent/internal/api"
	"github.com/mmshah/job-apply-agent/internal/config"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.ApplyToEnv()

	app := agent.New(context.Background(), cfg)
	defer app.Close()

	server := api.NewServer(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Starting Job Application Assistant on port %s...\n", port)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  POST /prepare - Match resumes and generate an email draft\n")
	fmt.Printf("  POST /send - Send the reviewed email\n")
	fmt.Printf("  GET /tracker/download - Download the application tracker\n")

	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
