package deployment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/fargate-service-go/intrinsics"
	"github.com/lex00/fargate-service-go/resources/ec2"
	"github.com/lex00/fargate-service-go/resources/ecs"
	elbv2 "github.com/lex00/fargate-service-go/resources/elasticloadbalancingv2"
	"github.com/lex00/fargate-service-go/resources/logs"
	"github.com/lex00/fargate-service-go/resources/route53"
)

func validOptions() Options {
	return Options{
		ServiceName:    "api",
		ImageUrl:       "example/api:latest",
		ContainerPort:  8080,
		VpcId:          "vpc-0123456789abcdef0",
		PrivateSubnets: []string{"subnet-aaa", "subnet-bbb"},
		PublicSubnets:  []string{"subnet-ccc", "subnet-ddd"},
		DomainName:     "api.example.com",
		ZoneName:       "example.com.",
		CertificateArn: "arn:aws:acm:us-east-1:123456789012:certificate/abc",
	}
}

func TestCompose_LogicalNames(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	expected := map[string]string{
		"ApiCluster":                   res.Cluster.LogicalName,
		"ApiContainerSecurityGroup":    res.ContainerSecurityGroup.LogicalName,
		"ApiLoadBalancerSecurityGroup": res.LoadBalancerSecurityGroup.LogicalName,
		"ApiIngressFromLoadBalancer":   res.LoadBalancerIngress.LogicalName,
		"ApiIngressFromSelf":           res.SelfIngress.LogicalName,
		"ApiLoadBalancer":              res.LoadBalancer.LogicalName,
		"ApiExecutionRole":             res.ExecutionRole.LogicalName,
		"ApiTaskRole":                  res.TaskRole.LogicalName,
		"ApiTaskDefinition":            res.TaskDefinition.LogicalName,
		"ApiTargetGroup":               res.TargetGroup.LogicalName,
		"ApiListener":                  res.Listener.LogicalName,
		"ApiService":                   res.Service.LogicalName,
		"ApiRecordSet":                 res.RecordSet.LogicalName,
	}
	for want, got := range expected {
		assert.Equal(t, want, got)
	}

	// The log group alone uses the bare service name.
	assert.Equal(t, "api", res.LogGroup.LogicalName)
}

func TestCompose_AllReturnsEveryResource(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	all := res.All()
	assert.Len(t, all, 14)
	for _, d := range all {
		require.NotNil(t, d)
		assert.NotEmpty(t, d.LogicalName)
		assert.NotNil(t, d.Resource)
	}
}

func TestCompose_InvalidOptions(t *testing.T) {
	res, err := Compose("Api", Options{})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ServiceName")
}

func TestCompose_Cluster(t *testing.T) {
	tests := []struct {
		name     string
		insights bool
	}{
		{name: "insights disabled", insights: false},
		{name: "insights enabled", insights: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			opts.EnableContainerInsights = tt.insights

			res, err := Compose("Api", opts)
			require.NoError(t, err)

			cluster, ok := res.Cluster.Resource.(ecs.Cluster)
			require.True(t, ok)

			if !tt.insights {
				assert.Empty(t, cluster.ClusterSettings)
				return
			}
			require.Len(t, cluster.ClusterSettings, 1)
			setting, ok := cluster.ClusterSettings[0].(ecs.Cluster_ClusterSettings)
			require.True(t, ok)
			assert.Equal(t, "containerInsights", setting.Name)
			assert.Equal(t, "enabled", setting.Value)
		})
	}
}

func TestCompose_SecurityGroups(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	containers, ok := res.ContainerSecurityGroup.Resource.(ec2.SecurityGroup)
	require.True(t, ok)
	assert.Equal(t, "Access to the Fargate containers", containers.GroupDescription)
	assert.Equal(t, "vpc-0123456789abcdef0", containers.VpcId)
	assert.Empty(t, containers.SecurityGroupIngress)

	public, ok := res.LoadBalancerSecurityGroup.Resource.(ec2.SecurityGroup)
	require.True(t, ok)
	assert.Equal(t, "Access to the public facing load balancer", public.GroupDescription)
	require.Len(t, public.SecurityGroupIngress, 1)
	ingress, ok := public.SecurityGroupIngress[0].(ec2.SecurityGroup_Ingress)
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0/0", ingress.CidrIp)
	assert.Equal(t, "-1", ingress.IpProtocol)
}

func TestCompose_IngressRules(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	fromALB, ok := res.LoadBalancerIngress.Resource.(ec2.SecurityGroupIngress)
	require.True(t, ok)
	assert.Equal(t, res.ContainerSecurityGroup.Ref(), fromALB.GroupId)
	assert.Equal(t, res.LoadBalancerSecurityGroup.Ref(), fromALB.SourceSecurityGroupId)
	assert.Equal(t, "-1", fromALB.IpProtocol)

	fromSelf, ok := res.SelfIngress.Resource.(ec2.SecurityGroupIngress)
	require.True(t, ok)
	assert.Equal(t, res.ContainerSecurityGroup.Ref(), fromSelf.GroupId)
	assert.Equal(t, res.ContainerSecurityGroup.Ref(), fromSelf.SourceSecurityGroupId)
}

func TestCompose_LoadBalancer(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	lb, ok := res.LoadBalancer.Resource.(elbv2.LoadBalancer)
	require.True(t, ok)
	assert.Equal(t, "internet-facing", lb.Scheme)
	assert.Equal(t, []any{"subnet-ccc", "subnet-ddd"}, lb.Subnets)
	assert.Equal(t, []any{res.LoadBalancerSecurityGroup.Ref()}, lb.SecurityGroups)

	require.Len(t, lb.LoadBalancerAttributes, 1)
	attr, ok := lb.LoadBalancerAttributes[0].(elbv2.LoadBalancer_LoadBalancerAttribute)
	require.True(t, ok)
	assert.Equal(t, "idle_timeout.timeout_seconds", attr.Key)
	assert.Equal(t, "30", attr.Value)
}

func TestCompose_TargetGroup(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "default path", path: "", expected: "/"},
		{name: "custom path", path: "/healthz", expected: "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			opts.HealthCheckUrl = tt.path

			res, err := Compose("Api", opts)
			require.NoError(t, err)

			tg, ok := res.TargetGroup.Resource.(elbv2.TargetGroup)
			require.True(t, ok)
			assert.Equal(t, tt.expected, tg.HealthCheckPath)
			assert.Equal(t, 10, tg.HealthCheckIntervalSeconds)
			assert.Equal(t, 5, tg.HealthCheckTimeoutSeconds)
			assert.Equal(t, 2, tg.HealthyThresholdCount)
			assert.Equal(t, 2, tg.UnhealthyThresholdCount)
			assert.Equal(t, "HTTP", tg.HealthCheckProtocol)
			assert.Equal(t, "HTTP", tg.Protocol)
			assert.Equal(t, "ip", tg.TargetType)
			assert.Equal(t, 8080, tg.Port)
			assert.Equal(t, "vpc-0123456789abcdef0", tg.VpcId)
		})
	}
}

func TestCompose_Listener(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	listener, ok := res.Listener.Resource.(elbv2.Listener)
	require.True(t, ok)
	assert.Equal(t, 443, listener.Port)
	assert.Equal(t, "HTTPS", listener.Protocol)
	assert.Equal(t, res.LoadBalancer.Ref(), listener.LoadBalancerArn)

	require.Len(t, listener.DefaultActions, 1)
	action, ok := listener.DefaultActions[0].(elbv2.Listener_Action)
	require.True(t, ok)
	assert.Equal(t, "forward", action.Type)
	assert.Equal(t, res.TargetGroup.Ref(), action.TargetGroupArn)

	require.Len(t, listener.Certificates, 1)
	cert, ok := listener.Certificates[0].(elbv2.Listener_Certificate)
	require.True(t, ok)
	assert.Equal(t, "arn:aws:acm:us-east-1:123456789012:certificate/abc", cert.CertificateArn)
}

func TestCompose_Service(t *testing.T) {
	tests := []struct {
		name     string
		desired  int
		expected int
	}{
		{name: "default count", desired: 0, expected: 2},
		{name: "explicit count", desired: 5, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			opts.DesiredCount = tt.desired

			res, err := Compose("Api", opts)
			require.NoError(t, err)

			svc, ok := res.Service.Resource.(ecs.Service)
			require.True(t, ok)
			assert.Equal(t, "api", svc.ServiceName)
			assert.Equal(t, tt.expected, svc.DesiredCount)
			assert.Equal(t, "FARGATE", svc.LaunchType)
			assert.Equal(t, res.Cluster.Ref(), svc.Cluster)
			assert.Equal(t, res.TaskDefinition.Ref(), svc.TaskDefinition)
			assert.Equal(t, 200, svc.DeploymentConfiguration.MaximumPercent)
			assert.Equal(t, 75, svc.DeploymentConfiguration.MinimumHealthyPercent)

			vpcConf := svc.NetworkConfiguration.AwsvpcConfiguration
			assert.Equal(t, []any{"subnet-aaa", "subnet-bbb"}, vpcConf.Subnets)
			assert.Equal(t, []any{res.ContainerSecurityGroup.Ref()}, vpcConf.SecurityGroups)

			require.Len(t, svc.LoadBalancers, 1)
			lb, ok := svc.LoadBalancers[0].(ecs.Service_LoadBalancer)
			require.True(t, ok)
			assert.Equal(t, "api", lb.ContainerName)
			assert.Equal(t, 8080, lb.ContainerPort)
			assert.Equal(t, res.TargetGroup.Ref(), lb.TargetGroupArn)
		})
	}
}

func TestCompose_ServiceDependsOnListener(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"ApiListener"}, res.Service.Dependencies())

	// No other resource carries an explicit dependency edge.
	for _, d := range res.All() {
		if d == res.Service {
			continue
		}
		assert.Empty(t, d.Dependencies(), d.LogicalName)
	}
}

func TestCompose_LogGroup(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	lg, ok := res.LogGroup.Resource.(logs.LogGroup)
	require.True(t, ok)
	assert.Equal(t, "api", lg.LogGroupName)
}

func TestCompose_RecordSet(t *testing.T) {
	res, err := Compose("Api", validOptions())
	require.NoError(t, err)

	record, ok := res.RecordSet.Resource.(route53.RecordSet)
	require.True(t, ok)
	assert.Equal(t, "api.example.com", record.Name)
	assert.Equal(t, "A", record.Type)
	assert.Equal(t, "example.com.", record.HostedZoneName)
	assert.Equal(t, res.LoadBalancer.Attr("DNSName"), record.AliasTarget.DNSName)
	assert.Equal(t, res.LoadBalancer.Attr("CanonicalHostedZoneID"), record.AliasTarget.HostedZoneId)
	assert.True(t, record.AliasTarget.EvaluateTargetHealth)
}

func TestCompose_StageTags(t *testing.T) {
	opts := validOptions()
	opts.Stage = "prod"

	res, err := Compose("Api", opts)
	require.NoError(t, err)

	cluster, ok := res.Cluster.Resource.(ecs.Cluster)
	require.True(t, ok)
	require.Len(t, cluster.Tags, 1)
	assert.Equal(t, intrinsics.Tag{Key: "Stage", Value: "prod"}, cluster.Tags[0])

	svc, ok := res.Service.Resource.(ecs.Service)
	require.True(t, ok)
	require.Len(t, svc.Tags, 1)
}

func TestCompose_Deterministic(t *testing.T) {
	opts := validOptions()
	opts.Environment = map[string]string{"B": "2", "A": "1", "C": "3"}

	first, err := Compose("Api", opts)
	require.NoError(t, err)
	second, err := Compose("Api", opts)
	require.NoError(t, err)

	for i, d := range first.All() {
		assert.Equal(t, d.LogicalName, second.All()[i].LogicalName)
		assert.Equal(t, d.Resource, second.All()[i].Resource)
	}
}
