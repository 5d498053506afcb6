// Package main provides the resume-pipeline CLI: a three-stage, human-gated
// pipeline that scores a master resume against a job description, tailors the
// selected bullets and assembles a rendered, role-specific resume document.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_pipeline",
	Short: "Tailor a master resume to a job description in three reviewed stages",
	Long: "resume_pipeline runs a staged tailoring workflow over a master resume workbook:\n" +
		"'analyze' scores every bullet against a job description into a selection sheet,\n" +
		"a human reviews and marks selections, 'tailor' rewrites the selected bullets,\n" +
		"and 'assemble' produces the final rendered resume from a template.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
