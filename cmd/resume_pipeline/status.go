package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/pipeline"
	"github.com/jonathan/resume-pipeline/internal/sheets"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the pipeline's durable stage state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	workbook, err := sheets.OpenWorkbook(cfg.Workbook)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	state, err := pipeline.NewStateStore(workbook, cfg.StateSheet).Load()
	if err != nil {
		return fmt.Errorf("failed to read stage state: %w", err)
	}
	if state == nil {
		fmt.Println("No pipeline run recorded yet. Start with 'analyze'.")
		return nil
	}

	fmt.Printf("Run ID:    %s\n", state.RunID)
	fmt.Printf("Status:    %s\n", state.Status)
	fmt.Printf("Version:   %d\n", state.Version)
	fmt.Printf("Updated:   %s\n", state.UpdatedAt)
	return nil
}
