// Package ec2 provides Go types for AWS::EC2 CloudFormation resources.
package ec2

// SecurityGroup represents AWS::EC2::SecurityGroup.
type SecurityGroup struct {
	GroupDescription     string `json:"GroupDescription,omitempty"`
	VpcId                any    `json:"VpcId,omitempty"`
	SecurityGroupIngress []any  `json:"SecurityGroupIngress,omitempty"`
	Tags                 []any  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Ingress is an inline ingress rule.
type SecurityGroup_Ingress struct {
	Description string `json:"Description,omitempty"`
	CidrIp      string `json:"CidrIp,omitempty"`
	IpProtocol  string `json:"IpProtocol,omitempty"`
	FromPort    int    `json:"FromPort,omitempty"`
	ToPort      int    `json:"ToPort,omitempty"`
}

// SecurityGroupIngress represents AWS::EC2::SecurityGroupIngress, a
// standalone ingress rule. Standalone rules break the cycle that inline
// rules would create when two groups reference each other.
type SecurityGroupIngress struct {
	Description           string `json:"Description,omitempty"`
	GroupId               any    `json:"GroupId,omitempty"`
	IpProtocol            string `json:"IpProtocol,omitempty"`
	CidrIp                string `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroupIngress) ResourceType() string { return "AWS::EC2::SecurityGroupIngress" }
