package deployment

import (
	"sort"
	"strconv"

	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/intrinsics"
	"github.com/lex00/fargate-service-go/resources/ecs"
)

// composeTaskDefinition builds the Fargate task definition: a single
// essential container running the given image, logging to the deployment's
// log group via awslogs.
func composeTaskDefinition(name string, opts Options, executionRole, taskRole, logGroup *fargate.Description) *fargate.Description {
	cpu := opts.ContainerCpu
	if cpu == 0 {
		cpu = DefaultContainerCpu
	}
	memory := opts.ContainerMemory
	if memory == 0 {
		memory = DefaultContainerMemory
	}

	container := ecs.TaskDefinition_ContainerDefinition{
		Name:      opts.ServiceName,
		Image:     opts.ImageUrl,
		Essential: true,
		Cpu:       cpu,
		Memory:    memory,
		PortMappings: intrinsics.Any(ecs.TaskDefinition_PortMapping{
			ContainerPort: opts.ContainerPort,
			Protocol:      "tcp",
		}),
		Environment: containerEnvironment(opts.Environment),
		LogConfiguration: ecs.TaskDefinition_LogConfiguration{
			LogDriver: "awslogs",
			Options: map[string]any{
				"awslogs-group":         logGroup.Ref(),
				"awslogs-region":        intrinsics.AWS_REGION,
				"awslogs-stream-prefix": opts.ServiceName,
			},
		},
	}

	return fargate.Describe(name+"TaskDefinition", ecs.TaskDefinition{
		Family:                  opts.ServiceName,
		Cpu:                     strconv.Itoa(cpu),
		Memory:                  strconv.Itoa(memory),
		NetworkMode:             "awsvpc",
		RequiresCompatibilities: intrinsics.Any("FARGATE"),
		ExecutionRoleArn:        executionRole.Attr("Arn"),
		TaskRoleArn:             taskRole.Attr("Arn"),
		ContainerDefinitions:    intrinsics.Any(container),
		Tags:                    stageTags(opts),
	})
}

// containerEnvironment converts the environment map to a sorted name/value
// list so repeated composes render identical templates.
func containerEnvironment(env map[string]string) []any {
	if len(env) == 0 {
		return nil
	}

	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]any, 0, len(names))
	for _, name := range names {
		out = append(out, ecs.TaskDefinition_KeyValuePair{
			Name:  name,
			Value: env[name],
		})
	}
	return out
}
