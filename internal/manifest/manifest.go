// Package manifest loads the deployment manifest that drives the
// fargate-service CLI.
//
// A manifest is a YAML (or JSON, TOML) file describing one service
// deployment. Every setting can be overridden through FARGATE_* environment
// variables, e.g. FARGATE_SERVICE_IMAGE.
package manifest

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/viper"

	"github.com/lex00/fargate-service-go/deployment"
)

// Manifest holds one service deployment configuration.
type Manifest struct {
	Stack   StackConfig   `mapstructure:"stack"`
	Service ServiceConfig `mapstructure:"service"`
	Network NetworkConfig `mapstructure:"network"`
	DNS     DNSConfig     `mapstructure:"dns"`
	Access  []AccessGrant `mapstructure:"access"`
}

// StackConfig names the CloudFormation stack and the logical name prefix.
type StackConfig struct {
	// Name is the CloudFormation stack name. Defaults to the service name.
	Name string `mapstructure:"name"`
	// Prefix is the logical name prefix for every resource in the
	// template. Defaults to the service name in PascalCase.
	Prefix string `mapstructure:"prefix"`
	// Description becomes the template description.
	Description string `mapstructure:"description"`
}

// ServiceConfig describes the container workload.
type ServiceConfig struct {
	Name              string            `mapstructure:"name"`
	Image             string            `mapstructure:"image"`
	Port              int               `mapstructure:"port"`
	Cpu               int               `mapstructure:"cpu"`
	Memory            int               `mapstructure:"memory"`
	DesiredCount      int               `mapstructure:"desired_count"`
	HealthCheckPath   string            `mapstructure:"health_check_path"`
	Stage             string            `mapstructure:"stage"`
	Environment       map[string]string `mapstructure:"environment"`
	ContainerInsights bool              `mapstructure:"container_insights"`
}

// NetworkConfig places the deployment in an existing VPC.
type NetworkConfig struct {
	VpcId          string   `mapstructure:"vpc_id"`
	PrivateSubnets []string `mapstructure:"private_subnets"`
	PublicSubnets  []string `mapstructure:"public_subnets"`
}

// DNSConfig describes the public endpoint.
type DNSConfig struct {
	DomainName     string `mapstructure:"domain_name"`
	ZoneName       string `mapstructure:"zone_name"`
	CertificateArn string `mapstructure:"certificate_arn"`
}

// AccessGrant is an IAM grant for the application containers.
type AccessGrant struct {
	Name      string   `mapstructure:"name"`
	Actions   []string `mapstructure:"actions"`
	Resources []string `mapstructure:"resources"`
}

// Load reads a manifest file and applies environment overrides. A missing
// file is not an error; environment variables and defaults still apply.
func Load(path string) (*Manifest, error) {
	v := viper.New()

	v.SetDefault("service.cpu", deployment.DefaultContainerCpu)
	v.SetDefault("service.memory", deployment.DefaultContainerMemory)
	v.SetDefault("service.desired_count", deployment.DefaultDesiredCount)
	v.SetDefault("service.health_check_path", deployment.DefaultHealthCheckPath)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("parsing manifest: %w", err)
			}
			// Missing file is fine, the environment may carry everything.
		}
	}

	v.SetEnvPrefix("FARGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("unmarshaling manifest: %w", err)
	}

	return &m, nil
}

// StackName returns the configured stack name, defaulting to the service
// name.
func (m *Manifest) StackName() string {
	if m.Stack.Name != "" {
		return m.Stack.Name
	}
	return m.Service.Name
}

// Prefix returns the logical name prefix, derived from the service name
// when not set explicitly: "order-api" becomes "OrderApi".
func (m *Manifest) Prefix() string {
	if m.Stack.Prefix != "" {
		return m.Stack.Prefix
	}
	return pascalCase(m.Service.Name)
}

// Options converts the manifest into deployment options.
func (m *Manifest) Options() deployment.Options {
	opts := deployment.Options{
		ServiceName:             m.Service.Name,
		ImageUrl:                m.Service.Image,
		ContainerPort:           m.Service.Port,
		ContainerCpu:            m.Service.Cpu,
		ContainerMemory:         m.Service.Memory,
		DesiredCount:            m.Service.DesiredCount,
		HealthCheckUrl:          m.Service.HealthCheckPath,
		Stage:                   m.Service.Stage,
		Environment:             m.Service.Environment,
		EnableContainerInsights: m.Service.ContainerInsights,
		VpcId:                   m.Network.VpcId,
		PrivateSubnets:          m.Network.PrivateSubnets,
		PublicSubnets:           m.Network.PublicSubnets,
		DomainName:              m.DNS.DomainName,
		ZoneName:                m.DNS.ZoneName,
		CertificateArn:          m.DNS.CertificateArn,
	}

	for _, grant := range m.Access {
		opts.AccessPolicies = append(opts.AccessPolicies, deployment.AccessPolicy{
			PolicyName: grant.Name,
			Actions:    grant.Actions,
			Resources:  grant.Resources,
		})
	}

	return opts
}

// pascalCase turns a kebab/snake/dotted service name into a CloudFormation
// friendly logical name prefix.
func pascalCase(name string) string {
	var sb strings.Builder
	upperNext := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			sb.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
