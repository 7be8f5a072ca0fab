// Package aws wraps the SQS, CloudWatch, and SNS control-plane calls
// Vahti needs. Clients sit behind narrow interfaces for testability.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Provider holds the AWS clients for one region.
type Provider struct {
	region string

	sqsClient SQSAPI
	cwClient  CloudWatchAPI
	snsClient SNSAPI
}

// New creates a provider with real AWS clients.
func New(ctx context.Context, region string) (*Provider, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Provider{
		region:    region,
		sqsClient: sqs.NewFromConfig(awsCfg),
		cwClient:  cloudwatch.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

// NewWithClients creates a provider with injected clients, for tests.
func NewWithClients(region string, sqsClient SQSAPI, cwClient CloudWatchAPI, snsClient SNSAPI) *Provider {
	return &Provider{
		region:    region,
		sqsClient: sqsClient,
		cwClient:  cwClient,
		snsClient: snsClient,
	}
}

// Region returns the region this provider operates in.
func (p *Provider) Region() string {
	return p.region
}
