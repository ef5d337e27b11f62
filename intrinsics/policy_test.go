package intrinsics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicePrincipal_MarshalJSON(t *testing.T) {
	p := ServicePrincipal{"ecs-tasks.amazonaws.com"}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Service": "ecs-tasks.amazonaws.com"}`, string(data))
}

func TestServicePrincipal_MarshalJSON_Multiple(t *testing.T) {
	p := ServicePrincipal{"ecs-tasks.amazonaws.com", "ecs.amazonaws.com"}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Service": ["ecs-tasks.amazonaws.com", "ecs.amazonaws.com"]}`, string(data))
}

func TestPolicyDocument_MarshalJSON(t *testing.T) {
	doc := PolicyDocument{
		Version: PolicyVersion,
		Statement: []any{
			PolicyStatement{
				Effect:    "Allow",
				Principal: ServicePrincipal{"ecs-tasks.amazonaws.com"},
				Action:    "sts:AssumeRole",
			},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Version":"2012-10-17"`)
	assert.Contains(t, string(data), `"sts:AssumeRole"`)
	assert.NotContains(t, string(data), `"Sid"`)
}

func TestPolicyStatement_ResourceList(t *testing.T) {
	stmt := PolicyStatement{
		Effect:   "Allow",
		Action:   []any{"s3:GetObject", "s3:ListBucket"},
		Resource: []any{"arn:aws:s3:::uploads", "arn:aws:s3:::uploads/*"},
	}

	data, err := json.Marshal(stmt)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"s3:ListBucket"`)
	assert.Contains(t, string(data), `"arn:aws:s3:::uploads/*"`)
}
