// Command fargate-service renders and deploys CloudFormation templates for
// Fargate-backed web services.
//
// Usage:
//
//	fargate-service init my-service       Create a starter manifest
//	fargate-service build                 Render the template
//	fargate-service validate              Check references and lint
//	fargate-service graph                 Show the dependency graph
//	fargate-service watch                 Rebuild on manifest changes
//	fargate-service deploy                Apply the stack
//	fargate-service version               Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fargate-service",
		Short: "Render CloudFormation templates for Fargate web services",
		Long: `fargate-service turns a small deployment manifest into a complete
CloudFormation template: an ECS cluster and service, an internet-facing
load balancer with TLS, IAM roles, logging, and a DNS record.

Describe the service in fargate.yaml:

    service:
      name: order-api
      image: example/order-api:1.4.2
      port: 8080

Then render the template:

    fargate-service build`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newWatchCmd(),
		newDeployCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fargate-service %s\n", getVersion())
		},
	}
}
