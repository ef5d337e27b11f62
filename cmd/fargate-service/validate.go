package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/internal/validation"
)

// newValidateCmd creates the "validate" subcommand.
func newValidateCmd() *cobra.Command {
	var (
		manifestPath, outputFormat string
		skipLint                   bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the rendered template",
		Long: `Validate composes the deployment and checks the rendered template.

Checks performed:
  - Manifest completeness: all required deployment options present
  - Reference validity: every Ref/GetAtt/DependsOn target exists
  - cfn-lint: rule-based template linting

Examples:
    fargate-service validate
    fargate-service validate --format json
    fargate-service validate --skip-lint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(manifestPath, outputFormat, skipLint)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifestPath, "Deployment manifest file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&skipLint, "skip-lint", false, "Skip cfn-lint, run structural checks only")

	return cmd
}

func runValidate(manifestPath, format string, skipLint bool) error {
	result := fargate.ValidateResult{Success: true}

	tpl, _, err := renderTemplate(manifestPath)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return outputValidateResult(result, format)
	}
	result.Resources = len(tpl.Resources)

	for _, refErr := range validation.CheckReferences(tpl) {
		result.Success = false
		result.Errors = append(result.Errors, refErr.Error())
	}

	if !skipLint {
		lintResult, err := validation.LintTemplate(tpl)
		if err != nil {
			return fmt.Errorf("running cfn-lint: %w", err)
		}
		result.Errors = append(result.Errors, lintResult.Errors...)
		result.Warnings = append(result.Warnings, lintResult.Warnings...)
		if !lintResult.Passed {
			result.Success = false
		}
	}

	return outputValidateResult(result, format)
}

func outputValidateResult(result fargate.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			for _, warnMsg := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", warnMsg)
			}
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
