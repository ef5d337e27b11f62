// Package elasticloadbalancingv2 provides Go types for
// AWS::ElasticLoadBalancingV2 CloudFormation resources.
package elasticloadbalancingv2

// LoadBalancer represents AWS::ElasticLoadBalancingV2::LoadBalancer.
type LoadBalancer struct {
	Name                   string `json:"Name,omitempty"`
	Scheme                 string `json:"Scheme,omitempty"`
	Subnets                []any  `json:"Subnets,omitempty"`
	SecurityGroups         []any  `json:"SecurityGroups,omitempty"`
	LoadBalancerAttributes []any  `json:"LoadBalancerAttributes,omitempty"`
	Tags                   []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (LoadBalancer) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::LoadBalancer"
}

// LoadBalancer_LoadBalancerAttribute is a key/value load balancer attribute,
// e.g. idle_timeout.timeout_seconds.
type LoadBalancer_LoadBalancerAttribute struct {
	Key   string `json:"Key,omitempty"`
	Value string `json:"Value,omitempty"`
}
