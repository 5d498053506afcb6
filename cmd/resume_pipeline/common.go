package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/db"
	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/observability"
	"github.com/jonathan/resume-pipeline/internal/pipeline"
	"github.com/jonathan/resume-pipeline/internal/sheets"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// Flags shared by every stage command.
var (
	flagConfig   string
	flagWorkbook string
	flagAPIKey   string
	flagProvider string
	flagDBURL    string
	flagVerbose  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVarP(&flagWorkbook, "workbook", "w", "", "Path to the resume workbook (.xlsx)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "LLM API key (overrides GEMINI_API_KEY / ANTHROPIC_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "LLM provider: gemini or anthropic")
	rootCmd.PersistentFlags().StringVar(&flagDBURL, "db-url", "", "PostgreSQL URL for optional run persistence")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print per-item progress detail")
}

// loadConfig builds the effective configuration: defaults, then the optional
// JSON config file, then explicit flags on top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		defaults := config.Default()
		cfg = &defaults
	}

	if flagWorkbook != "" {
		cfg.Workbook = flagWorkbook
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	if flagProvider != "" {
		cfg.Provider = flagProvider
	}
	if flagDBURL != "" {
		cfg.DatabaseURL = flagDBURL
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	if cfg.Workbook == "" {
		return nil, fmt.Errorf("a workbook is required (use --workbook or the config file)")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline opens the workbook and wires up the pipeline with its
// completion client, console reporting and optional database persistence.
// The returned cleanup closes the client and database and saves the workbook.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, *sheets.Workbook, func(), error) {
	workbook, err := sheets.OpenWorkbook(cfg.Workbook)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	models := llm.DefaultGeminiConfig()
	if cfg.Provider == "anthropic" {
		models = llm.DefaultAnthropicConfig()
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		_ = workbook.Close()
		return nil, nil, nil, fmt.Errorf("an API key is required (set GEMINI_API_KEY or ANTHROPIC_API_KEY, or use --api-key)")
	}

	client, err := llm.NewClient(ctx, models, apiKey)
	if err != nil {
		_ = workbook.Close()
		return nil, nil, nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	p := pipeline.New(cfg, workbook, client, models)
	p.SetPrinter(observability.NewPrinter(os.Stdout))
	p.SetProgressCallback(func(event pipeline.ProgressEvent) {
		if cfg.Verbose {
			fmt.Printf("  [%d/%d] %s: %s\n", event.Index, event.Total, event.Stage, truncate(event.Message, 70))
		} else {
			fmt.Printf("  [%d/%d] %s\n", event.Index, event.Total, event.Stage)
		}
	})

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: %v, continuing without database persistence", err)
		} else {
			p.SetDatabase(database)
		}
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Printf("Warning: failed to close completion client: %v", err)
		}
		if database != nil {
			database.Close()
		}
		if err := workbook.Close(); err != nil {
			log.Printf("Warning: failed to close workbook: %v", err)
		}
	}
	return p, workbook, cleanup, nil
}

// finishStage saves the workbook and reports the stage outcome.
func finishStage(workbook *sheets.Workbook, result types.StageResult) error {
	if err := workbook.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}
	fmt.Println(result.Message)
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
