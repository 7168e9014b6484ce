// Seed script for creating demo data in the episodic log.
// Run with: go run ./scripts/seed.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Harshitk-cp/introspect/internal/annotate"
	"github.com/Harshitk-cp/introspect/internal/service"
	"github.com/Harshitk-cp/introspect/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envFile := os.Getenv("INTROSPECT_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "experience"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	journal := service.NewJournalService(
		store.NewLogStore(dataDir),
		annotate.NewRegexTagger(),
		annotate.NewHedgeScorer(),
		logger,
	)

	exchanges := [][2]string{
		{"How should I structure the deployment for the new service?",
			"Docker Compose on a VPS. I want to be able to ssh in and see everything. Kubernetes is overkill until it isn't."},
		{"Is it worth learning Rust this year?",
			"Maybe. It depends on whether the borrow checker pays for itself in my kind of work. I'd rather go deep on Go first."},
		{"Why did the reflection job keep failing last night?",
			"The model endpoint was down. The error handling swallowed the root cause, which was the real bug. Fixed the wrapping."},
		{"What's your approach to index funds versus individual stocks?",
			"Core in index funds, a small satellite of companies whose filings I actually read. I don't buy what I can't explain."},
		{"What is the difference between dharma and karma?",
			"Dharma is the duty appropriate to your station and nature. Karma is the consequence engine your actions feed. They interlock."},
		{"Should we rewrite the parser or patch it again?",
			"Patch it once more, with a test that pins the failure. Rewrites need a budget, and we haven't earned one yet."},
	}

	ctx := context.Background()
	for _, ex := range exchanges {
		in, err := journal.Append(ctx, ex[0], ex[1], nil)
		if err != nil {
			log.Fatalf("Failed to log interaction: %v", err)
		}
		fmt.Printf("Logged %s  tags=%v  confidence=%.2f\n", in.ID, in.Tags, in.Confidence)
	}

	count, err := journal.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count interactions: %v", err)
	}
	fmt.Printf("\nEpisodic log now holds %d interactions in %s\n", count, dataDir)
	fmt.Println("Next: POST /v1/reflect, then POST /v1/synthesize")
}
