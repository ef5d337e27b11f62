package deployment

import (
	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/intrinsics"
	"github.com/lex00/fargate-service-go/resources/iam"
)

// executionRolePolicyArn lets ECS pull images and write container logs on
// the service's behalf. This is distinct from the task role, which the
// application itself assumes.
const executionRolePolicyArn = "arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy"

// ecsTasksTrustPolicy is the trust policy allowing ECS tasks to assume a role.
func ecsTasksTrustPolicy() intrinsics.PolicyDocument {
	return intrinsics.PolicyDocument{
		Version: intrinsics.PolicyVersion,
		Statement: []any{
			intrinsics.PolicyStatement{
				Effect:    "Allow",
				Principal: intrinsics.ServicePrincipal{"ecs-tasks.amazonaws.com"},
				Action:    "sts:AssumeRole",
			},
		},
	}
}

// composeExecutionRole builds the role ECS uses to start tasks.
func composeExecutionRole(name string) *fargate.Description {
	return fargate.Describe(name+"ExecutionRole", iam.Role{
		Path:                     "/",
		AssumeRolePolicyDocument: ecsTasksTrustPolicy(),
		ManagedPolicyArns:        intrinsics.Any(executionRolePolicyArn),
	})
}

// composeTaskRole builds the role the application containers assume. Each
// caller-supplied access policy becomes one inline policy.
func composeTaskRole(name string, grants []AccessPolicy) *fargate.Description {
	role := iam.Role{
		Path:                     "/",
		AssumeRolePolicyDocument: ecsTasksTrustPolicy(),
	}

	for _, grant := range grants {
		role.Policies = append(role.Policies, iam.Role_Policy{
			PolicyName: grant.PolicyName,
			PolicyDocument: intrinsics.PolicyDocument{
				Version: intrinsics.PolicyVersion,
				Statement: []any{
					intrinsics.PolicyStatement{
						Effect:   "Allow",
						Action:   anyStrings(grant.Actions),
						Resource: anyStrings(grant.Resources),
					},
				},
			},
		})
	}

	return fargate.Describe(name+"TaskRole", role)
}
