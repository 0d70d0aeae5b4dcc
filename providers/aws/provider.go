// Package aws adapts the EC2 API to the console's operations.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/dmelo/ec2console/internal/config"
	"github.com/dmelo/ec2console/types"
)

// Provider is the configured handle to the EC2 API. It is constructed
// once at startup and reused by every operation.
type Provider struct {
	client EC2API
	launch config.LaunchConfig
	region string
}

// New builds a Provider from the loaded configuration using the static
// credential pair taken from the environment.
func New(ctx context.Context, cfg *config.Config) (*Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Provider{
		client: ec2.NewFromConfig(awsCfg),
		launch: cfg.Launch,
		region: cfg.Region,
	}, nil
}

// NewWithClient builds a Provider around an existing EC2 client.
func NewWithClient(client EC2API, launch config.LaunchConfig, region string) *Provider {
	return &Provider{client: client, launch: launch, region: region}
}

// Region returns the region this provider talks to.
func (p *Provider) Region() string {
	return p.region
}

// ListInstances returns every instance in the region, flattening all
// reservations into one slice.
func (p *Provider) ListInstances(ctx context.Context) ([]types.InstanceSummary, error) {
	var summaries []types.InstanceSummary
	var nextToken *string

	for {
		output, err := p.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{NextToken: nextToken})
		if err != nil {
			return nil, classify("describe-instances", err)
		}

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				summaries = append(summaries, convertInstance(instance))
			}
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return summaries, nil
}

// CreateInstance launches exactly one instance with the configured image
// and type, tagged with the given name.
func (p *Provider) CreateInstance(ctx context.Context, name string) (*types.InstanceSummary, error) {
	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(p.launch.ImageID),
		InstanceType: ec2types.InstanceType(p.launch.InstanceType),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		TagSpecifications: []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeInstance,
				Tags: []ec2types.Tag{
					{Key: aws.String("Name"), Value: aws.String(name)},
				},
			},
		},
	}

	output, err := p.client.RunInstances(ctx, input)
	if err != nil {
		return nil, classify("run-instances", err)
	}
	if len(output.Instances) == 0 {
		return nil, &OpError{Op: "run-instances", Kind: ErrUnknown, Err: fmt.Errorf("no instance in response")}
	}

	summary := convertInstance(output.Instances[0])
	return &summary, nil
}

// StartInstance starts a stopped instance by id.
func (p *Provider) StartInstance(ctx context.Context, id string) (*types.StateChange, error) {
	output, err := p.client.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, classify("start-instances", err)
	}
	return convertStateChange("start-instances", id, output.StartingInstances)
}

// StopInstance stops a running instance by id.
func (p *Provider) StopInstance(ctx context.Context, id string) (*types.StateChange, error) {
	output, err := p.client.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, classify("stop-instances", err)
	}
	return convertStateChange("stop-instances", id, output.StoppingInstances)
}

// TerminateInstance terminates an instance by id.
func (p *Provider) TerminateInstance(ctx context.Context, id string) (*types.StateChange, error) {
	output, err := p.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, classify("terminate-instances", err)
	}
	return convertStateChange("terminate-instances", id, output.TerminatingInstances)
}

// TagInstance overwrites the Environment and Department tags on the
// given instance. Existing values for those keys are replaced.
func (p *Provider) TagInstance(ctx context.Context, id, environment, department string) error {
	input := &ec2.CreateTagsInput{
		Resources: []string{id},
		Tags: []ec2types.Tag{
			{Key: aws.String("Environment"), Value: aws.String(environment)},
			{Key: aws.String("Department"), Value: aws.String(department)},
		},
	}

	if _, err := p.client.CreateTags(ctx, input); err != nil {
		return classify("create-tags", err)
	}
	return nil
}

// ListTags returns the tags attached to the given instance.
func (p *Provider) ListTags(ctx context.Context, id string) ([]types.Tag, error) {
	input := &ec2.DescribeTagsInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("resource-id"), Values: []string{id}},
		},
	}

	output, err := p.client.DescribeTags(ctx, input)
	if err != nil {
		return nil, classify("describe-tags", err)
	}

	tags := make([]types.Tag, 0, len(output.Tags))
	for _, tag := range output.Tags {
		tags = append(tags, types.Tag{Key: aws.ToString(tag.Key), Value: aws.ToString(tag.Value)})
	}
	return tags, nil
}

// convertInstance projects an EC2 instance onto the console summary.
func convertInstance(instance ec2types.Instance) types.InstanceSummary {
	summary := types.InstanceSummary{
		ID:           aws.ToString(instance.InstanceId),
		State:        stateName(instance.State),
		InstanceType: string(instance.InstanceType),
		PublicIP:     aws.ToString(instance.PublicIpAddress),
		PrivateIP:    aws.ToString(instance.PrivateIpAddress),
	}

	if instance.Placement != nil {
		summary.AvailabilityZone = aws.ToString(instance.Placement.AvailabilityZone)
	}
	if instance.LaunchTime != nil {
		summary.LaunchTime = *instance.LaunchTime
	}
	for _, tag := range instance.Tags {
		if aws.ToString(tag.Key) == "Name" {
			summary.Name = aws.ToString(tag.Value)
		}
	}

	return summary
}

func convertStateChange(op, id string, changes []ec2types.InstanceStateChange) (*types.StateChange, error) {
	if len(changes) == 0 {
		return nil, &OpError{Op: op, Kind: ErrUnknown, Err: fmt.Errorf("no state change for %s in response", id)}
	}

	change := changes[0]
	return &types.StateChange{
		InstanceID:    aws.ToString(change.InstanceId),
		PreviousState: stateName(change.PreviousState),
		CurrentState:  stateName(change.CurrentState),
	}, nil
}

func stateName(state *ec2types.InstanceState) string {
	if state == nil {
		return ""
	}
	return string(state.Name)
}
