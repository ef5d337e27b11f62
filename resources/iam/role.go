// Package iam provides Go types for AWS::IAM CloudFormation resources.
package iam

// Role represents AWS::IAM::Role.
type Role struct {
	RoleName                 any    `json:"RoleName,omitempty"`
	Path                     string `json:"Path,omitempty"`
	AssumeRolePolicyDocument any    `json:"AssumeRolePolicyDocument,omitempty"`
	ManagedPolicyArns        []any  `json:"ManagedPolicyArns,omitempty"`
	Policies                 []any  `json:"Policies,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy attached to a role.
type Role_Policy struct {
	PolicyName     string `json:"PolicyName,omitempty"`
	PolicyDocument any    `json:"PolicyDocument,omitempty"`
}
