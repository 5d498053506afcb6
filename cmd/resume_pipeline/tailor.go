package main

import (
	"context"

	"github.com/spf13/cobra"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Rewrite the user-selected bullets towards the analyzed role",
	Long: "Tailor reads the reviewed selection sheet and rewrites every row the reviewer\n" +
		"marked selected, writing the rewrites back into the tailored-text column.\n" +
		"Rows whose rewrite fails are marked in place; the batch never aborts.",
	RunE: runTailor,
}

func init() {
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	p, workbook, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result := p.RunTailoring(ctx)
	return finishStage(workbook, result)
}
