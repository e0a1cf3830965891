package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"go-entity-extract/internal/entities"
	"go-entity-extract/internal/llm"
)

// sessionRecord stores a single extraction in this session
type sessionRecord struct {
	Source    string
	Entities  []entities.Entity
	Timestamp time.Time
}

func main() {
	ctx := context.Background()

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the LLM client
	client := llm.NewChatClient(llm.Config{
		APIKey:         config.APIKey,
		Model:          config.Model,
		APIURL:         config.APIURL,
		SystemPrompt:   config.SystemPrompt,
		MaxTokens:      config.MaxTokens,
		Temperature:    config.Temperature,
		ResponseFormat: llm.ResponseFormatJSON,
	})

	// Initialize the optional history store
	var store *ExtractionStore
	if config.DatabaseURL != "" {
		store, err = NewExtractionStore(config.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize extraction store: %v", err)
		}
		defer store.Close()

		count, err := store.Count(ctx)
		if err != nil {
			log.Fatalf("Failed to check extraction count: %v", err)
		}
		green := color.New(color.FgGreen)
		green.Printf("\n✓ History store connected (%d past extractions)\n", count)
	}

	if err := runInteractive(ctx, client, store); err != nil {
		log.Fatalf("Session error: %v", err)
	}
}

// runInteractive reads blocks of text from stdin and prints the entities the
// model found in each.
func runInteractive(ctx context.Context, client llm.Client, store *ExtractionStore) error {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	magenta := color.New(color.FgMagenta, color.Bold)

	cyan.Println("╔══════════════════════════╗")
	cyan.Println("║   Entity Extractor CLI   ║")
	cyan.Println("╚══════════════════════════╝")
	yellow.Println("\n🔍 Paste a block of text and I'll list the named entities in it.")
	yellow.Printf("Commands: 'history' to review this session, 'similar' to find past texts like the last one, 'clear' to clear screen, 'exit' to quit\n\n")

	var session []sessionRecord
	var lastFingerprint []float32

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		green.Printf("Text (%s): ", time.Now().Format("15:04:05"))

		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			cyan.Println("\n👋 Goodbye!")
			return scanner.Err()

		case "history":
			var stored []StoredExtraction
			if store != nil {
				recent, err := store.Recent(ctx, 10)
				if err != nil {
					red.Printf("\n❌ History lookup failed: %v\n\n", err)
					continue
				}
				stored = recent
			}
			renderHistory(os.Stdout, session, stored)
			continue

		case "similar":
			if store == nil {
				yellow.Printf("\nNo history store configured. Set DATABASE_URL to enable similarity lookup.\n\n")
				continue
			}
			if lastFingerprint == nil {
				yellow.Printf("\nNothing to compare yet. Extract some text first.\n\n")
				continue
			}
			results, err := store.Similar(ctx, lastFingerprint, 5)
			if err != nil {
				red.Printf("\n❌ Similarity lookup failed: %v\n\n", err)
				continue
			}
			yellow.Printf("\n🔎 %d similar past texts:\n\n", len(results))
			for _, r := range results {
				magenta.Printf("  %.2f  %s (%d entities)\n", r.Similarity, truncate(r.Source, 60), r.EntityCount)
			}
			fmt.Println()
			continue

		case "clear":
			fmt.Print("\033[H\033[2J")
			cyan.Println("\n╔══════════════════════════╗")
			cyan.Println("║   Entity Extractor CLI   ║")
			cyan.Println("╚══════════════════════════╝")
			yellow.Printf("\n✨ Screen cleared! Session history: %d extractions\n\n", len(session))
			continue
		}

		raw, err := client.Complete(ctx, input)
		if err != nil {
			printClientError(os.Stdout, err)
			continue
		}

		ents, err := entities.Parse(raw)
		if err != nil {
			// Bad model output is recoverable; show it and move on.
			fmt.Println()
			entities.RenderFailure(os.Stdout, err)
			fmt.Println()
			continue
		}

		magenta.Printf("\nEntities (%s):\n", time.Now().Format("15:04:05"))
		entities.Render(os.Stdout, ents)
		fmt.Println()

		session = append(session, sessionRecord{
			Source:    input,
			Entities:  ents,
			Timestamp: time.Now(),
		})

		lastFingerprint = Fingerprint(input)
		if store != nil {
			if err := store.Save(ctx, input, raw, len(ents), lastFingerprint); err != nil {
				log.Printf("Failed to store extraction: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// renderHistory prints this session's extractions, then the most recent
// persisted runs when a store is configured (stored is nil without one).
func renderHistory(out io.Writer, session []sessionRecord, stored []StoredExtraction) {
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	magenta := color.New(color.FgMagenta)

	yellow.Fprintf(out, "\n📜 Session history (%d extractions):\n\n", len(session))
	for _, rec := range session {
		green.Fprintf(out, "Text (%s): %s\n", rec.Timestamp.Format("15:04:05"), rec.Source)
		entities.Render(out, rec.Entities)
	}

	if stored != nil {
		yellow.Fprintf(out, "\n🗄  Stored history (%d most recent):\n\n", len(stored))
		for _, rec := range stored {
			magenta.Fprintf(out, "  %s  %s (%d entities)\n",
				rec.CreatedAt.Format("2006-01-02 15:04"), truncate(rec.Source, 60), rec.EntityCount)
		}
	}
	fmt.Fprintln(out)
}

// printClientError maps the client's error taxonomy onto user-facing hints.
func printClientError(out io.Writer, err error) {
	red := color.New(color.FgRed)

	var cfgErr *llm.ConfigError
	var inErr *llm.InputError
	var transErr *llm.TransportError
	var shapeErr *llm.ShapeError

	switch {
	case errors.As(err, &cfgErr):
		red.Fprintf(out, "\n❌ %v. Set LLM_API_KEY and restart.\n\n", err)
	case errors.As(err, &inErr):
		red.Fprintf(out, "\n❌ %v\n\n", err)
	case errors.As(err, &transErr):
		red.Fprintf(out, "\n❌ %v\n", err)
		if transErr.RawBody != "" {
			fmt.Fprintln(out, transErr.RawBody)
		}
		fmt.Fprintln(out)
	case errors.As(err, &shapeErr):
		red.Fprintf(out, "\n❌ %v\n", err)
		fmt.Fprintln(out, shapeErr.RawBody)
		fmt.Fprintln(out)
	default:
		red.Fprintf(out, "\n❌ Error: %v\n\n", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
