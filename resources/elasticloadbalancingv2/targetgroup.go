package elasticloadbalancingv2

// TargetGroup represents AWS::ElasticLoadBalancingV2::TargetGroup.
type TargetGroup struct {
	HealthCheckIntervalSeconds int    `json:"HealthCheckIntervalSeconds,omitempty"`
	HealthCheckPath            string `json:"HealthCheckPath,omitempty"`
	HealthCheckProtocol        string `json:"HealthCheckProtocol,omitempty"`
	HealthCheckTimeoutSeconds  int    `json:"HealthCheckTimeoutSeconds,omitempty"`
	HealthyThresholdCount      int    `json:"HealthyThresholdCount,omitempty"`
	UnhealthyThresholdCount    int    `json:"UnhealthyThresholdCount,omitempty"`
	Port                       int    `json:"Port,omitempty"`
	Protocol                   string `json:"Protocol,omitempty"`
	TargetType                 string `json:"TargetType,omitempty"`
	VpcId                      any    `json:"VpcId,omitempty"`
	Tags                       []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (TargetGroup) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::TargetGroup"
}
