package deployment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/fargate-service-go/intrinsics"
	"github.com/lex00/fargate-service-go/resources/ecs"
	"github.com/lex00/fargate-service-go/resources/iam"
)

func TestCompose_TaskDefinitionDefaults(t *testing.T) {
	tests := []struct {
		name       string
		cpu        int
		memory     int
		wantCpu    string
		wantMemory string
	}{
		{name: "defaults", cpu: 0, memory: 0, wantCpu: "256", wantMemory: "512"},
		{name: "explicit sizing", cpu: 1024, memory: 2048, wantCpu: "1024", wantMemory: "2048"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			opts.ContainerCpu = tt.cpu
			opts.ContainerMemory = tt.memory

			res, err := Compose("Api", opts)
			require.NoError(t, err)

			td, ok := res.TaskDefinition.Resource.(ecs.TaskDefinition)
			require.True(t, ok)
			assert.Equal(t, tt.wantCpu, td.Cpu)
			assert.Equal(t, tt.wantMemory, td.Memory)
			assert.Equal(t, "api", td.Family)
			assert.Equal(t, "awsvpc", td.NetworkMode)
			assert.Equal(t, []any{"FARGATE"}, td.RequiresCompatibilities)
			assert.Equal(t, res.ExecutionRole.Attr("Arn"), td.ExecutionRoleArn)
			assert.Equal(t, res.TaskRole.Attr("Arn"), td.TaskRoleArn)
		})
	}
}

func TestCompose_ContainerDefinition(t *testing.T) {
	opts := validOptions()
	opts.Environment = map[string]string{"LOG_LEVEL": "debug", "DB_HOST": "db.internal"}

	res, err := Compose("Api", opts)
	require.NoError(t, err)

	td, ok := res.TaskDefinition.Resource.(ecs.TaskDefinition)
	require.True(t, ok)
	require.Len(t, td.ContainerDefinitions, 1)

	container, ok := td.ContainerDefinitions[0].(ecs.TaskDefinition_ContainerDefinition)
	require.True(t, ok)
	assert.Equal(t, "api", container.Name)
	assert.Equal(t, "example/api:latest", container.Image)
	assert.True(t, container.Essential)

	require.Len(t, container.PortMappings, 1)
	mapping, ok := container.PortMappings[0].(ecs.TaskDefinition_PortMapping)
	require.True(t, ok)
	assert.Equal(t, 8080, mapping.ContainerPort)
	assert.Equal(t, "tcp", mapping.Protocol)

	// Environment entries are sorted by name.
	assert.Equal(t, []any{
		ecs.TaskDefinition_KeyValuePair{Name: "DB_HOST", Value: "db.internal"},
		ecs.TaskDefinition_KeyValuePair{Name: "LOG_LEVEL", Value: "debug"},
	}, container.Environment)
}

func TestCompose_ContainerLogConfiguration(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	td := res.TaskDefinition.Resource.(ecs.TaskDefinition)
	container := td.ContainerDefinitions[0].(ecs.TaskDefinition_ContainerDefinition)

	logConf := container.LogConfiguration
	assert.Equal(t, "awslogs", logConf.LogDriver)
	assert.Equal(t, res.LogGroup.Ref(), logConf.Options["awslogs-group"])
	assert.Equal(t, intrinsics.AWS_REGION, logConf.Options["awslogs-region"])
	assert.Equal(t, "api", logConf.Options["awslogs-stream-prefix"])
}

func TestCompose_ExecutionRole(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	role, ok := res.ExecutionRole.Resource.(iam.Role)
	require.True(t, ok)
	assert.Equal(t, "/", role.Path)
	assert.Equal(t, []any{
		"arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy",
	}, role.ManagedPolicyArns)
	assert.Empty(t, role.Policies)

	trust, ok := role.AssumeRolePolicyDocument.(intrinsics.PolicyDocument)
	require.True(t, ok)
	require.Len(t, trust.Statement, 1)
	stmt := trust.Statement[0].(intrinsics.PolicyStatement)
	assert.Equal(t, intrinsics.ServicePrincipal{"ecs-tasks.amazonaws.com"}, stmt.Principal)
	assert.Equal(t, "sts:AssumeRole", stmt.Action)
}

func TestCompose_TaskRoleGrants(t *testing.T) {
	opts := validOptions()
	opts.AccessPolicies = []AccessPolicy{
		{
			PolicyName: "TableAccess",
			Actions:    []string{"dynamodb:GetItem", "dynamodb:PutItem"},
			Resources:  []string{"arn:aws:dynamodb:*:*:table/orders"},
		},
		{
			PolicyName: "QueueAccess",
			Actions:    []string{"sqs:SendMessage"},
			Resources:  []string{"*"},
		},
	}

	res, err := Compose("Api", opts)
	require.NoError(t, err)

	role, ok := res.TaskRole.Resource.(iam.Role)
	require.True(t, ok)
	assert.Empty(t, role.ManagedPolicyArns)
	require.Len(t, role.Policies, 2)

	first := role.Policies[0].(iam.Role_Policy)
	assert.Equal(t, "TableAccess", first.PolicyName)
	doc := first.PolicyDocument.(intrinsics.PolicyDocument)
	require.Len(t, doc.Statement, 1)
	stmt := doc.Statement[0].(intrinsics.PolicyStatement)
	assert.Equal(t, "Allow", stmt.Effect)
	assert.Equal(t, []any{"dynamodb:GetItem", "dynamodb:PutItem"}, stmt.Action)
	assert.Equal(t, []any{"arn:aws:dynamodb:*:*:table/orders"}, stmt.Resource)

	second := role.Policies[1].(iam.Role_Policy)
	assert.Equal(t, "QueueAccess", second.PolicyName)
}
