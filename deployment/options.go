package deployment

import (
	"errors"
	"fmt"
	"strings"
)

// Options is the input record for Compose. Callers fill in the service
// identity, networking and DNS placement; zero-valued optional fields take
// the documented defaults.
type Options struct {
	// ServiceName names the service, its container, and its log group.
	ServiceName string
	// ImageUrl is the container image reference, e.g. "example/api:latest".
	ImageUrl string
	// ContainerPort is the port the container listens on.
	ContainerPort int

	// ContainerCpu is the CPU units for the task. Defaults to 256.
	ContainerCpu int
	// ContainerMemory is the memory (MiB) for the task. Defaults to 512.
	ContainerMemory int
	// DesiredCount is the replica count for the service. Defaults to 2.
	DesiredCount int

	// VpcId is the VPC all security groups and the target group live in.
	VpcId string
	// PrivateSubnets hold the service tasks.
	PrivateSubnets []string
	// PublicSubnets hold the internet-facing load balancer.
	PublicSubnets []string

	// DomainName is the fully qualified record name, e.g. "api.example.com".
	DomainName string
	// ZoneName is the hosted zone the record goes into, e.g. "example.com.".
	ZoneName string

	// Stage tags the deployment (e.g. "prod", "staging").
	Stage string
	// CertificateArn is the TLS certificate for the HTTPS listener.
	CertificateArn string

	// AccessPolicies become inline IAM policies on the task role.
	AccessPolicies []AccessPolicy
	// Environment is passed to the container as environment variables.
	Environment map[string]string

	// HealthCheckUrl is the target group health-check path. Defaults to "/".
	HealthCheckUrl string
	// EnableContainerInsights turns on CloudWatch Container Insights for
	// the cluster.
	EnableContainerInsights bool
}

// AccessPolicy is a named grant that becomes an inline policy on the task
// role, allowing the application containers to call AWS APIs.
type AccessPolicy struct {
	PolicyName string
	Actions    []string
	Resources  []string
}

// Validate checks that the fields with no usable default are present.
// Anything beyond presence (subnet id shape, certificate validity) is left
// to CloudFormation at stack time.
func (o Options) Validate() error {
	var missing []string

	if o.ServiceName == "" {
		missing = append(missing, "ServiceName")
	}
	if o.ImageUrl == "" {
		missing = append(missing, "ImageUrl")
	}
	if o.ContainerPort == 0 {
		missing = append(missing, "ContainerPort")
	}
	if o.VpcId == "" {
		missing = append(missing, "VpcId")
	}
	if len(o.PrivateSubnets) == 0 {
		missing = append(missing, "PrivateSubnets")
	}
	if len(o.PublicSubnets) == 0 {
		missing = append(missing, "PublicSubnets")
	}
	if o.DomainName == "" {
		missing = append(missing, "DomainName")
	}
	if o.ZoneName == "" {
		missing = append(missing, "ZoneName")
	}
	if o.CertificateArn == "" {
		missing = append(missing, "CertificateArn")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required deployment options: %s", strings.Join(missing, ", "))
	}

	var errs []error
	for i, p := range o.AccessPolicies {
		if p.PolicyName == "" {
			errs = append(errs, fmt.Errorf("access policy %d: PolicyName is required", i))
		}
		if len(p.Actions) == 0 {
			errs = append(errs, fmt.Errorf("access policy %q: at least one action is required", p.PolicyName))
		}
	}

	return errors.Join(errs...)
}
