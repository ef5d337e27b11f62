// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types used by the role composers.
package intrinsics

import (
	"encoding/json"
)

// PolicyDocument represents an IAM policy document.
//
// Example:
//
//	var trust = PolicyDocument{
//	    Version:   PolicyVersion,
//	    Statement: []any{assumeStatement},
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// PolicyVersion is the current IAM policy language version.
const PolicyVersion = "2012-10-17"

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	var assume = PolicyStatement{
//	    Effect:    "Allow",
//	    Principal: ServicePrincipal{"ecs-tasks.amazonaws.com"},
//	    Action:    "sts:AssumeRole",
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
}

// ServicePrincipal represents a service principal (e.g., ecs-tasks.amazonaws.com).
// Serializes to {"Service": ...} format.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}
