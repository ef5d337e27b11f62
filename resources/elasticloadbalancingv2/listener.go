package elasticloadbalancingv2

// Listener represents AWS::ElasticLoadBalancingV2::Listener.
type Listener struct {
	DefaultActions  []any  `json:"DefaultActions,omitempty"`
	LoadBalancerArn any    `json:"LoadBalancerArn,omitempty"`
	Port            int    `json:"Port,omitempty"`
	Protocol        string `json:"Protocol,omitempty"`
	Certificates    []any  `json:"Certificates,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Listener) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::Listener"
}

// Listener_Action is a routing action, typically a forward to a target group.
type Listener_Action struct {
	Type           string `json:"Type,omitempty"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
}

// Listener_Certificate attaches a TLS certificate to an HTTPS listener.
type Listener_Certificate struct {
	CertificateArn string `json:"CertificateArn,omitempty"`
}
