package ecs

// Service represents AWS::ECS::Service.
type Service struct {
	ServiceName             string                           `json:"ServiceName,omitempty"`
	Cluster                 any                              `json:"Cluster,omitempty"`
	TaskDefinition          any                              `json:"TaskDefinition,omitempty"`
	DesiredCount            int                              `json:"DesiredCount,omitempty"`
	LaunchType              string                           `json:"LaunchType,omitempty"`
	DeploymentConfiguration Service_DeploymentConfiguration  `json:"DeploymentConfiguration,omitempty"`
	NetworkConfiguration    Service_NetworkConfiguration     `json:"NetworkConfiguration,omitempty"`
	LoadBalancers           []any                            `json:"LoadBalancers,omitempty"`
	Tags                    []any                            `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Service) ResourceType() string { return "AWS::ECS::Service" }

// Service_DeploymentConfiguration bounds rolling deployments.
type Service_DeploymentConfiguration struct {
	MaximumPercent        int `json:"MaximumPercent,omitempty"`
	MinimumHealthyPercent int `json:"MinimumHealthyPercent,omitempty"`
}

// IsZero reports whether no deployment bounds were set.
func (c Service_DeploymentConfiguration) IsZero() bool {
	return c.MaximumPercent == 0 && c.MinimumHealthyPercent == 0
}

// Service_NetworkConfiguration wraps the awsvpc settings.
type Service_NetworkConfiguration struct {
	AwsvpcConfiguration Service_AwsVpcConfiguration `json:"AwsvpcConfiguration,omitempty"`
}

// IsZero reports whether no network configuration was set.
func (c Service_NetworkConfiguration) IsZero() bool {
	return c.AwsvpcConfiguration.IsZero()
}

// Service_AwsVpcConfiguration places tasks into subnets and security groups.
// Required for tasks with the awsvpc network mode, which is the only mode
// Fargate supports.
type Service_AwsVpcConfiguration struct {
	AssignPublicIp string `json:"AssignPublicIp,omitempty"`
	SecurityGroups []any  `json:"SecurityGroups,omitempty"`
	Subnets        []any  `json:"Subnets,omitempty"`
}

// IsZero reports whether the configuration has not been populated.
func (c Service_AwsVpcConfiguration) IsZero() bool {
	return c.AssignPublicIp == "" && len(c.SecurityGroups) == 0 && len(c.Subnets) == 0
}

// Service_LoadBalancer registers the service's containers with a target group.
type Service_LoadBalancer struct {
	ContainerName  string `json:"ContainerName,omitempty"`
	ContainerPort  int    `json:"ContainerPort,omitempty"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
}
