package ecs

// TaskDefinition represents AWS::ECS::TaskDefinition.
//
// Cpu and Memory are strings in the CloudFormation schema even though they
// carry numeric unit values.
type TaskDefinition struct {
	Family                  string `json:"Family,omitempty"`
	Cpu                     string `json:"Cpu,omitempty"`
	Memory                  string `json:"Memory,omitempty"`
	NetworkMode             string `json:"NetworkMode,omitempty"`
	RequiresCompatibilities []any  `json:"RequiresCompatibilities,omitempty"`
	ExecutionRoleArn        any    `json:"ExecutionRoleArn,omitempty"`
	TaskRoleArn             any    `json:"TaskRoleArn,omitempty"`
	ContainerDefinitions    []any  `json:"ContainerDefinitions,omitempty"`
	Tags                    []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (TaskDefinition) ResourceType() string { return "AWS::ECS::TaskDefinition" }

// TaskDefinition_ContainerDefinition defines one container in the task.
type TaskDefinition_ContainerDefinition struct {
	Name             string                             `json:"Name,omitempty"`
	Image            string                             `json:"Image,omitempty"`
	Essential        bool                               `json:"Essential,omitempty"`
	Cpu              int                                `json:"Cpu,omitempty"`
	Memory           int                                `json:"Memory,omitempty"`
	PortMappings     []any                              `json:"PortMappings,omitempty"`
	Environment      []any                              `json:"Environment,omitempty"`
	LogConfiguration TaskDefinition_LogConfiguration    `json:"LogConfiguration,omitempty"`
}

// TaskDefinition_PortMapping exposes a container port.
type TaskDefinition_PortMapping struct {
	ContainerPort int    `json:"ContainerPort,omitempty"`
	Protocol      string `json:"Protocol,omitempty"`
}

// TaskDefinition_KeyValuePair is a container environment variable.
type TaskDefinition_KeyValuePair struct {
	Name  string `json:"Name,omitempty"`
	Value any    `json:"Value,omitempty"`
}

// TaskDefinition_LogConfiguration routes container logs to a log driver.
type TaskDefinition_LogConfiguration struct {
	LogDriver string         `json:"LogDriver,omitempty"`
	Options   map[string]any `json:"Options,omitempty"`
}

// IsZero reports whether the log configuration has not been populated, so
// the serializer can omit it.
func (c TaskDefinition_LogConfiguration) IsZero() bool {
	return c.LogDriver == "" && len(c.Options) == 0
}
