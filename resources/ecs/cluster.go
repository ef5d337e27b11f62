// Package ecs provides Go types for AWS::ECS CloudFormation resources.
package ecs

// Cluster represents AWS::ECS::Cluster.
type Cluster struct {
	ClusterName     string `json:"ClusterName,omitempty"`
	ClusterSettings []any  `json:"ClusterSettings,omitempty"`
	Tags            []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Cluster) ResourceType() string { return "AWS::ECS::Cluster" }

// Cluster_ClusterSettings is a single cluster setting, e.g.
// containerInsights=enabled.
type Cluster_ClusterSettings struct {
	Name  string `json:"Name,omitempty"`
	Value string `json:"Value,omitempty"`
}
