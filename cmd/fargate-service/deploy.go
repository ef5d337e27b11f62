package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/fargate-service-go/internal/deploy"
	"github.com/lex00/fargate-service-go/internal/template"
	"github.com/lex00/fargate-service-go/internal/validation"
)

func newDeployCmd() *cobra.Command {
	var (
		manifestPath, region string
		wait, skipValidation bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the CloudFormation stack",
		Long: `Deploy renders the template and applies it with CloudFormation,
creating the stack on first run and updating it afterwards.

Credentials come from the default AWS configuration chain (environment,
shared config, instance role).

Examples:
    fargate-service deploy
    fargate-service deploy --region eu-west-1
    fargate-service deploy --wait`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, manifestPath, region, wait, skipValidation)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifestPath, "Deployment manifest file")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default: from AWS config)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait until the stack reaches a terminal state")
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "Skip local reference checks before deploying")

	return cmd
}

func runDeploy(cmd *cobra.Command, manifestPath, region string, wait, skipValidation bool) error {
	ctx := cmd.Context()

	tpl, m, err := renderTemplate(manifestPath)
	if err != nil {
		return err
	}

	if !skipValidation {
		if errs := validation.CheckReferences(tpl); len(errs) > 0 {
			for _, refErr := range errs {
				fmt.Printf("  ERROR: %s\n", refErr)
			}
			return fmt.Errorf("template failed reference checks")
		}
	}

	body, err := template.ToJSON(tpl)
	if err != nil {
		return err
	}

	deployer, err := deploy.New(ctx, region)
	if err != nil {
		return err
	}

	tags := map[string]string{"Service": m.Service.Name}
	if m.Service.Stage != "" {
		tags["Stage"] = m.Service.Stage
	}

	result, err := deployer.Deploy(ctx, m.StackName(), string(body), tags)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if !wait || result.Action == deploy.ActionUnchanged {
		return nil
	}

	fmt.Printf("Waiting for stack %s...\n", result.StackName)
	status, err := deployer.Wait(ctx, result.StackName)
	if err != nil {
		return err
	}
	fmt.Printf("Stack %s: %s\n", result.StackName, status)
	return nil
}
