// Package deployment composes the resource graph for a Fargate-backed web
// service: an ECS cluster, security groups, an internet-facing load balancer
// with an HTTPS listener, an execution/task role pair, a task definition, a
// target group, the service itself, a log group, and a DNS alias record.
//
// Compose is a pure function: it performs no I/O and returns the same graph
// for the same inputs. References between resources are placeholders
// resolved by CloudFormation when the rendered template is applied.
package deployment

import (
	fargate "github.com/lex00/fargate-service-go"
	"github.com/lex00/fargate-service-go/intrinsics"
	"github.com/lex00/fargate-service-go/resources/ec2"
	"github.com/lex00/fargate-service-go/resources/ecs"
	elbv2 "github.com/lex00/fargate-service-go/resources/elasticloadbalancingv2"
	"github.com/lex00/fargate-service-go/resources/logs"
	"github.com/lex00/fargate-service-go/resources/route53"
)

// Defaults applied by Compose when the corresponding option is zero.
const (
	// DefaultDesiredCount is the service replica count.
	DefaultDesiredCount = 2
	// DefaultHealthCheckPath is the target group health-check path.
	DefaultHealthCheckPath = "/"
	// DefaultContainerCpu is the task CPU units.
	DefaultContainerCpu = 256
	// DefaultContainerMemory is the task memory in MiB.
	DefaultContainerMemory = 512
)

// Fixed deployment policy for every composed service. The listener port and
// protocol are fixed because the record set and certificate wiring assume
// TLS termination at the load balancer.
const (
	listenerPort          = 443
	loadBalancerIdleSecs  = "30"
	maximumPercent        = 200
	minimumHealthyPercent = 75
)

// Resources is the output record of Compose: the fixed set of named roles
// making up one deployment, each a described resource ready for the
// template builder.
type Resources struct {
	Cluster                   *fargate.Description
	ContainerSecurityGroup    *fargate.Description
	LoadBalancerSecurityGroup *fargate.Description
	LoadBalancerIngress       *fargate.Description
	SelfIngress               *fargate.Description
	LoadBalancer              *fargate.Description
	ExecutionRole             *fargate.Description
	TaskRole                  *fargate.Description
	LogGroup                  *fargate.Description
	TaskDefinition            *fargate.Description
	TargetGroup               *fargate.Description
	Listener                  *fargate.Description
	Service                   *fargate.Description
	RecordSet                 *fargate.Description
}

// All returns the descriptions in construction order.
func (r *Resources) All() []*fargate.Description {
	return []*fargate.Description{
		r.Cluster,
		r.ContainerSecurityGroup,
		r.LoadBalancerSecurityGroup,
		r.LoadBalancerIngress,
		r.SelfIngress,
		r.LoadBalancer,
		r.ExecutionRole,
		r.TaskRole,
		r.LogGroup,
		r.TaskDefinition,
		r.TargetGroup,
		r.Listener,
		r.Service,
		r.RecordSet,
	}
}

// Compose builds the deployment graph for one web service. Every logical
// name is the given name prefix plus a fixed role suffix, except the log
// group, which is named after the bare service name so the CloudWatch group
// stays human-readable.
func Compose(name string, opts Options) (*Resources, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := &Resources{}

	cluster := ecs.Cluster{
		Tags: stageTags(opts),
	}
	if opts.EnableContainerInsights {
		cluster.ClusterSettings = intrinsics.Any(ecs.Cluster_ClusterSettings{
			Name:  "containerInsights",
			Value: "enabled",
		})
	}
	res.Cluster = fargate.Describe(name+"Cluster", cluster)

	res.ContainerSecurityGroup = fargate.Describe(name+"ContainerSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "Access to the Fargate containers",
		VpcId:            opts.VpcId,
	})

	res.LoadBalancerSecurityGroup = fargate.Describe(name+"LoadBalancerSecurityGroup", ec2.SecurityGroup{
		GroupDescription: "Access to the public facing load balancer",
		VpcId:            opts.VpcId,
		SecurityGroupIngress: intrinsics.Any(ec2.SecurityGroup_Ingress{
			Description: "Allow access from anywhere",
			CidrIp:      "0.0.0.0/0",
			IpProtocol:  "-1",
		}),
	})

	res.LoadBalancerIngress = fargate.Describe(name+"IngressFromLoadBalancer", ec2.SecurityGroupIngress{
		Description:           "Ingress from the public ALB",
		GroupId:               res.ContainerSecurityGroup.Ref(),
		IpProtocol:            "-1",
		SourceSecurityGroupId: res.LoadBalancerSecurityGroup.Ref(),
	})

	res.SelfIngress = fargate.Describe(name+"IngressFromSelf", ec2.SecurityGroupIngress{
		Description:           "Ingress from other containers in the same security group",
		GroupId:               res.ContainerSecurityGroup.Ref(),
		IpProtocol:            "-1",
		SourceSecurityGroupId: res.ContainerSecurityGroup.Ref(),
	})

	res.LoadBalancer = fargate.Describe(name+"LoadBalancer", elbv2.LoadBalancer{
		Scheme: "internet-facing",
		LoadBalancerAttributes: intrinsics.Any(elbv2.LoadBalancer_LoadBalancerAttribute{
			Key:   "idle_timeout.timeout_seconds",
			Value: loadBalancerIdleSecs,
		}),
		Subnets:        anyStrings(opts.PublicSubnets),
		SecurityGroups: intrinsics.Any(res.LoadBalancerSecurityGroup.Ref()),
	})

	res.ExecutionRole = composeExecutionRole(name)
	res.TaskRole = composeTaskRole(name, opts.AccessPolicies)

	// The log group keeps the bare service name as both its logical name and
	// its LogGroupName, not the prefixed id used everywhere else.
	res.LogGroup = fargate.Describe(opts.ServiceName, logs.LogGroup{
		LogGroupName: opts.ServiceName,
	})

	res.TaskDefinition = composeTaskDefinition(name, opts, res.ExecutionRole, res.TaskRole, res.LogGroup)

	healthCheckPath := opts.HealthCheckUrl
	if healthCheckPath == "" {
		healthCheckPath = DefaultHealthCheckPath
	}
	res.TargetGroup = fargate.Describe(name+"TargetGroup", elbv2.TargetGroup{
		HealthCheckIntervalSeconds: 10,
		HealthCheckPath:            healthCheckPath,
		HealthCheckProtocol:        "HTTP",
		HealthCheckTimeoutSeconds:  5,
		HealthyThresholdCount:      2,
		UnhealthyThresholdCount:    2,
		Port:                       opts.ContainerPort,
		Protocol:                   "HTTP",
		// Fargate tasks use awsvpc networking and register by IP.
		TargetType: "ip",
		VpcId:      opts.VpcId,
	})

	res.Listener = fargate.Describe(name+"Listener", elbv2.Listener{
		DefaultActions: intrinsics.Any(elbv2.Listener_Action{
			Type:           "forward",
			TargetGroupArn: res.TargetGroup.Ref(),
		}),
		LoadBalancerArn: res.LoadBalancer.Ref(),
		Port:            listenerPort,
		Protocol:        "HTTPS",
		Certificates: intrinsics.Any(elbv2.Listener_Certificate{
			CertificateArn: opts.CertificateArn,
		}),
	})

	desired := opts.DesiredCount
	if desired == 0 {
		desired = DefaultDesiredCount
	}
	res.Service = fargate.Describe(name+"Service", ecs.Service{
		ServiceName:    opts.ServiceName,
		Cluster:        res.Cluster.Ref(),
		LaunchType:     "FARGATE",
		DesiredCount:   desired,
		TaskDefinition: res.TaskDefinition.Ref(),
		DeploymentConfiguration: ecs.Service_DeploymentConfiguration{
			MaximumPercent:        maximumPercent,
			MinimumHealthyPercent: minimumHealthyPercent,
		},
		NetworkConfiguration: ecs.Service_NetworkConfiguration{
			AwsvpcConfiguration: ecs.Service_AwsVpcConfiguration{
				SecurityGroups: intrinsics.Any(res.ContainerSecurityGroup.Ref()),
				Subnets:        anyStrings(opts.PrivateSubnets),
			},
		},
		LoadBalancers: intrinsics.Any(ecs.Service_LoadBalancer{
			ContainerName:  opts.ServiceName,
			ContainerPort:  opts.ContainerPort,
			TargetGroupArn: res.TargetGroup.Ref(),
		}),
		Tags: stageTags(opts),
	})

	// The load balancer must be routable before the service registers
	// targets against it.
	res.Service.DependsOn(res.Listener)

	res.RecordSet = fargate.Describe(name+"RecordSet", route53.RecordSet{
		Name:           opts.DomainName,
		Type:           "A",
		HostedZoneName: opts.ZoneName,
		AliasTarget: route53.RecordSet_AliasTarget{
			DNSName:              res.LoadBalancer.Attr("DNSName"),
			HostedZoneId:         res.LoadBalancer.Attr("CanonicalHostedZoneID"),
			EvaluateTargetHealth: true,
		},
	})

	return res, nil
}

// stageTags returns the Stage tag list, or nil when no stage was given.
func stageTags(opts Options) []any {
	if opts.Stage == "" {
		return nil
	}
	return intrinsics.Any(intrinsics.Tag{Key: "Stage", Value: opts.Stage})
}

// anyStrings widens a string slice for []any resource fields.
func anyStrings(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
