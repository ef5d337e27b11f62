// Package deploy applies rendered templates to CloudFormation.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// API is the slice of the CloudFormation client this package uses.
type API interface {
	CreateStack(ctx context.Context, in *cloudformation.CreateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, in *cloudformation.UpdateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	ValidateTemplate(ctx context.Context, in *cloudformation.ValidateTemplateInput, opts ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error)
}

// Action says whether a deploy created or updated the stack.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionUnchanged Action = "unchanged"
)

// Result describes the outcome of one deploy.
type Result struct {
	StackName string `json:"stack_name"`
	StackID   string `json:"stack_id,omitempty"`
	Action    Action `json:"action"`
}

// Deployer creates or updates CloudFormation stacks. The template carries
// IAM roles, so both IAM capabilities are passed on every call.
type Deployer struct {
	api API

	// PollInterval is how often Wait checks the stack status.
	PollInterval time.Duration
}

// New builds a Deployer from the default AWS configuration chain.
func New(ctx context.Context, region string) (*Deployer, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return NewWithAPI(cloudformation.NewFromConfig(cfg)), nil
}

// NewWithAPI builds a Deployer around an existing client.
func NewWithAPI(api API) *Deployer {
	return &Deployer{
		api:          api,
		PollInterval: 5 * time.Second,
	}
}

// Deploy validates the template, then creates the stack or updates it if it
// already exists. An update with no changes is reported as unchanged, not
// as an error.
func (d *Deployer) Deploy(ctx context.Context, stackName, templateBody string, tags map[string]string) (*Result, error) {
	if _, err := d.api.ValidateTemplate(ctx, &cloudformation.ValidateTemplateInput{
		TemplateBody: aws.String(templateBody),
	}); err != nil {
		return nil, fmt.Errorf("validating template: %w", err)
	}

	exists, err := d.stackExists(ctx, stackName)
	if err != nil {
		return nil, err
	}

	capabilities := []types.Capability{
		types.CapabilityCapabilityIam,
		types.CapabilityCapabilityNamedIam,
	}
	stackTags := tagList(tags)

	if !exists {
		out, err := d.api.CreateStack(ctx, &cloudformation.CreateStackInput{
			StackName:    aws.String(stackName),
			TemplateBody: aws.String(templateBody),
			Capabilities: capabilities,
			Tags:         stackTags,
		})
		if err != nil {
			return nil, fmt.Errorf("creating stack %s: %w", stackName, err)
		}
		return &Result{
			StackName: stackName,
			StackID:   aws.ToString(out.StackId),
			Action:    ActionCreate,
		}, nil
	}

	out, err := d.api.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(stackName),
		TemplateBody: aws.String(templateBody),
		Capabilities: capabilities,
		Tags:         stackTags,
	})
	if err != nil {
		if isNoUpdateError(err) {
			return &Result{StackName: stackName, Action: ActionUnchanged}, nil
		}
		return nil, fmt.Errorf("updating stack %s: %w", stackName, err)
	}

	return &Result{
		StackName: stackName,
		StackID:   aws.ToString(out.StackId),
		Action:    ActionUpdate,
	}, nil
}

// Wait polls the stack until it reaches a terminal status. Rollback states
// are returned as errors.
func (d *Deployer) Wait(ctx context.Context, stackName string) (types.StackStatus, error) {
	interval := d.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := d.stackStatus(ctx, stackName)
		if err != nil {
			return "", err
		}

		switch status {
		case types.StackStatusCreateComplete, types.StackStatusUpdateComplete:
			return status, nil
		case types.StackStatusCreateFailed,
			types.StackStatusRollbackComplete,
			types.StackStatusRollbackFailed,
			types.StackStatusUpdateRollbackComplete,
			types.StackStatusUpdateRollbackFailed:
			return status, fmt.Errorf("stack %s ended in %s", stackName, status)
		}

		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (d *Deployer) stackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := d.api.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("describing stack %s: %w", stackName, err)
	}
	return true, nil
}

func (d *Deployer) stackStatus(ctx context.Context, stackName string) (types.StackStatus, error) {
	out, err := d.api.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return "", fmt.Errorf("describing stack %s: %w", stackName, err)
	}
	if len(out.Stacks) == 0 {
		return "", errors.New("stack " + stackName + " not found")
	}
	return out.Stacks[0].StackStatus, nil
}

func tagList(tags map[string]string) []types.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]types.Tag, 0, len(tags))
	for key, value := range tags {
		out = append(out, types.Tag{
			Key:   aws.String(key),
			Value: aws.String(value),
		})
	}
	return out
}

// isNotFoundError matches the ValidationError CloudFormation returns when a
// stack name does not resolve.
func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "does not exist")
}

// isNoUpdateError matches the no-op update rejection.
func isNoUpdateError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "No updates are to be performed")
}
