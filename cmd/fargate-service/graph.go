package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/fargate-service-go/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		manifestPath, outputFormat string
		clusterByService           bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    fargate-service graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    fargate-service graph -f mermaid

Examples:
    fargate-service graph
    fargate-service graph -c              # cluster by service
    fargate-service graph -f mermaid      # mermaid format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(manifestPath, outputFormat, clusterByService)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifestPath, "Deployment manifest file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&clusterByService, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(manifestPath, format string, cluster bool) error {
	tpl, _, err := renderTemplate(manifestPath)
	if err != nil {
		return err
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:           graphFormat,
		ClusterByService: cluster,
	}
	return gen.Generate(tpl, os.Stdout)
}
