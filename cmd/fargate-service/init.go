package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"
)

// validServiceName matches DNS-friendly service names.
var validServiceName = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

func newInitCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "init [service-name]",
		Short: "Create a starter deployment manifest",
		Long: `Init writes a starter manifest for a new service deployment.

The manifest is created in the current directory; fill in the network and
DNS sections before building.

Examples:
    fargate-service init order-api
    fargate-service init order-api -m deploy/fargate.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], manifestPath)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifestPath, "Manifest file to create")

	return cmd
}

func runInit(serviceName, manifestPath string) error {
	if !validServiceName.MatchString(serviceName) {
		return fmt.Errorf("invalid service name %q: must start with a lowercase letter and contain only lowercase letters, numbers, or hyphens", serviceName)
	}

	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("manifest already exists: %s", manifestPath)
	}

	content := fmt.Sprintf(`# Deployment manifest for %[1]s.
# Every value can be overridden via FARGATE_* environment variables,
# e.g. FARGATE_SERVICE_IMAGE.

service:
  name: %[1]s
  image: example/%[1]s:latest
  port: 8080
  # cpu: 256
  # memory: 512
  # desired_count: 2
  # health_check_path: /
  # stage: prod
  # container_insights: true
  # environment:
  #   LOG_LEVEL: info

network:
  vpc_id: vpc-CHANGEME
  private_subnets: [subnet-CHANGEME-a, subnet-CHANGEME-b]
  public_subnets: [subnet-CHANGEME-c, subnet-CHANGEME-d]

dns:
  domain_name: %[1]s.example.com
  zone_name: example.com.
  certificate_arn: arn:aws:acm:REGION:ACCOUNT:certificate/CHANGEME

# Inline IAM grants for the application containers:
# access:
#   - name: TableAccess
#     actions: [dynamodb:GetItem, dynamodb:PutItem]
#     resources: ["arn:aws:dynamodb:*:*:table/%[1]s"]
`, serviceName)

	if err := os.WriteFile(manifestPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	fmt.Printf("Created manifest: %s\n", manifestPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Fill in the network and dns sections")
	fmt.Printf("  2. fargate-service build -m %s\n", manifestPath)
	fmt.Println()

	return nil
}
