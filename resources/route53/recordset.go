// Package route53 provides Go types for AWS::Route53 CloudFormation resources.
package route53

// RecordSet represents AWS::Route53::RecordSet.
type RecordSet struct {
	Name           string                 `json:"Name,omitempty"`
	Type           string                 `json:"Type,omitempty"`
	HostedZoneName string                 `json:"HostedZoneName,omitempty"`
	AliasTarget    RecordSet_AliasTarget  `json:"AliasTarget,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (RecordSet) ResourceType() string { return "AWS::Route53::RecordSet" }

// RecordSet_AliasTarget points an alias record at another AWS resource,
// typically a load balancer's zone and DNS name attributes.
type RecordSet_AliasTarget struct {
	DNSName              any  `json:"DNSName,omitempty"`
	HostedZoneId         any  `json:"HostedZoneId,omitempty"`
	EvaluateTargetHealth bool `json:"EvaluateTargetHealth,omitempty"`
}

// IsZero reports whether the alias target has not been populated.
func (a RecordSet_AliasTarget) IsZero() bool {
	return a.DNSName == nil && a.HostedZoneId == nil && !a.EvaluateTargetHealth
}
