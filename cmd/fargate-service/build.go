package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/deployment"
	"github.com/lex00/fargate-service-go/internal/manifest"
	"github.com/lex00/fargate-service-go/internal/template"
)

const defaultManifestPath = "fargate.yaml"

func newBuildCmd() *cobra.Command {
	var (
		manifestPath, outputFormat, outputFile string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the CloudFormation template",
		Long: `Build reads the deployment manifest, composes the service resources,
and renders the CloudFormation template.

Examples:
    fargate-service build
    fargate-service build -m deploy/fargate.yaml
    fargate-service build -f yaml -o template.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(manifestPath, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifestPath, "Deployment manifest file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runBuild(manifestPath, format, outputFile string) error {
	tpl, _, err := renderTemplate(manifestPath)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = template.ToJSON(tpl)
	case "yaml":
		data, err = template.ToYAML(tpl)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0o644)
}

// renderTemplate loads the manifest, composes the deployment, and builds
// the template. The returned manifest is used by deploy for stack naming.
func renderTemplate(manifestPath string) (*fargate.Template, *manifest.Manifest, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	res, err := deployment.Compose(m.Prefix(), m.Options())
	if err != nil {
		return nil, nil, err
	}

	b := template.NewBuilder()
	b.SetDescription(templateDescription(m))
	if err := b.AddAll(res.All()); err != nil {
		return nil, nil, err
	}
	b.SetOutput("ExternalUrl", fargate.Output{
		Description: "Public URL of the service",
		Value:       "https://" + m.DNS.DomainName,
	})

	tpl, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return tpl, m, nil
}

func templateDescription(m *manifest.Manifest) string {
	if m.Stack.Description != "" {
		return m.Stack.Description
	}
	return fmt.Sprintf("Fargate web service %s", m.Service.Name)
}
