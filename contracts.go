// Package fargate_service assembles CloudFormation templates for the
// Fargate-backed web service deployment pattern.
//
// Infrastructure is described with typed resource structs:
//
//	var cluster = ecs.Cluster{
//	    ClusterName: "api",
//	}
//
// A Description attaches a logical name to a resource and hands out the
// references other resources use to point at it:
//
//	c := fargate_service.Describe("ApiCluster", cluster)
//	svc.Cluster = c.Ref()
//
// The deployment package composes the full service topology; the
// fargate-service CLI renders it to a template document.
package fargate_service

import (
	"github.com/lex00/fargate-service-go/intrinsics"
)

// Resource is a CloudFormation resource property bag.
// All resource types (ecs.Cluster, iam.Role, etc.) implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::ECS::Cluster")
	ResourceType() string
}

// Description binds a logical name to a resource and carries its explicit
// ordering constraints. It is the unit the template builder consumes.
//
// References produced by Ref and Attr are placeholders: they serialize to
// {"Ref": ...} and {"Fn::GetAtt": ...} and are resolved by CloudFormation at
// stack time, never by this library.
type Description struct {
	// LogicalName is the unique identifier within one template.
	LogicalName string
	// Resource holds the typed properties.
	Resource Resource

	dependsOn []string
}

// Describe creates a Description for a resource under the given logical name.
func Describe(logicalName string, resource Resource) *Description {
	return &Description{
		LogicalName: logicalName,
		Resource:    resource,
	}
}

// Ref returns an identity reference to this resource.
func (d *Description) Ref() intrinsics.Ref {
	return intrinsics.Ref{LogicalName: d.LogicalName}
}

// Attr returns a reference to a named runtime attribute of this resource,
// e.g. d.Attr("Arn") or d.Attr("DNSName").
func (d *Description) Attr(attribute string) intrinsics.GetAtt {
	return intrinsics.GetAtt{LogicalName: d.LogicalName, Attribute: attribute}
}

// DependsOn records an explicit provisioning-order edge: this resource must
// not be created before dep exists. Property references already imply
// ordering; DependsOn is for edges the properties cannot express.
func (d *Description) DependsOn(dep *Description) {
	d.dependsOn = append(d.dependsOn, dep.LogicalName)
}

// Dependencies returns the logical names of explicit DependsOn targets.
func (d *Description) Dependencies() []string {
	return d.dependsOn
}

// Template represents a CloudFormation template document.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the template document.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Export      *struct {
		Name string `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// BuildResult is the JSON output from `fargate-service build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ValidateResult is the JSON output from `fargate-service validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
