package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/ingestion"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description and score every resume bullet against it",
	Long: "Analyze reads the master resume from the workbook, extracts a structured view of\n" +
		"the job description, scores every bullet, skill and certificate against it and\n" +
		"rebuilds the selection sheet for human review.",
	RunE: runAnalyze,
}

var (
	analyzeJDFile string
	analyzeJDURL  string
	analyzeSheet  string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd-file", "", "Path to a job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of a job posting to fetch and extract")
	analyzeCmd.Flags().StringVar(&analyzeSheet, "out", "", "Selection sheet name (default from config)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeJDFile != "" {
		cfg.JDFile = analyzeJDFile
	}
	if analyzeJDURL != "" {
		cfg.JDURL = analyzeJDURL
	}
	if analyzeSheet != "" {
		cfg.SelectionSheet = analyzeSheet
	}
	if cfg.JDFile == "" && cfg.JDURL == "" {
		return fmt.Errorf("a job description is required (use --jd-file or --jd-url)")
	}
	if cfg.JDFile != "" && cfg.JDURL != "" {
		return fmt.Errorf("--jd-file and --jd-url are mutually exclusive")
	}

	ctx := context.Background()

	var jobDescription string
	if cfg.JDURL != "" {
		jobDescription, err = ingestion.JDFromURL(ctx, cfg.JDURL)
	} else {
		jobDescription, err = ingestion.JDFromFile(cfg.JDFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	p, workbook, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result := p.RunScoring(ctx, jobDescription)
	return finishStage(workbook, result)
}
