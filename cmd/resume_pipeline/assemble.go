package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble and render the final tailored resume",
	Long: "Assemble re-joins the reviewed selection sheet onto the master resume, filters\n" +
		"and caps bullets by relevance, regenerates the summary and renders the result\n" +
		"into the given template (.tex or .docx).",
	RunE: runAssemble,
}

var (
	assembleTemplate string
	assembleOutput   string
)

func init() {
	assembleCmd.Flags().StringVarP(&assembleTemplate, "template", "t", "", "Path to the document template (.tex or .docx)")
	assembleCmd.Flags().StringVarP(&assembleOutput, "output", "o", "", "Path for the rendered resume")

	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if assembleTemplate != "" {
		cfg.Template = assembleTemplate
	}
	if assembleOutput != "" {
		cfg.Output = assembleOutput
	}
	if cfg.Template == "" {
		return fmt.Errorf("a template is required (use --template)")
	}
	if cfg.Output == "" {
		return fmt.Errorf("an output path is required (use --output)")
	}

	ctx := context.Background()
	p, workbook, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result := p.RunAssembly(ctx, cfg.Template, cfg.Output)
	return finishStage(workbook, result)
}
