// Package intrinsics provides the CloudFormation intrinsic functions the
// deployment composer wires between resources.
//
// The core types come from cloudformation-schema-go; this package re-exports
// the ones the composer and its callers need, and adds IAM policy document
// types.
//
// Core intrinsic functions:
//
//	Ref{LogicalName: "ApiCluster"} → {"Ref": "ApiCluster"}
//	GetAtt{LogicalName: "ApiLoadBalancer", Attribute: "DNSName"} → {"Fn::GetAtt": [...]}
//	Sub{String: "${AWS::Region}-api"} → {"Fn::Sub": "${AWS::Region}-api"}
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// Pseudo-parameters are predefined by CloudFormation and available in every
// template. Re-exported from the shared package.
var (
	// AWS_ACCOUNT_ID returns the AWS account ID of the account in which the stack is created.
	AWS_ACCOUNT_ID = intrinsics.AWS_ACCOUNT_ID

	// AWS_REGION returns the AWS Region in which the stack is created.
	AWS_REGION = intrinsics.AWS_REGION

	// AWS_STACK_NAME returns the name of the stack.
	AWS_STACK_NAME = intrinsics.AWS_STACK_NAME
)

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
//
// Example:
//
//	SecurityGroups: Any(loadBalancerSG.Ref()),
func Any(items ...any) []any {
	return items
}
