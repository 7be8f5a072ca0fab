package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Publish sends a notification to an SNS topic.
func (p *Provider) Publish(ctx context.Context, topicARN, subject, body string) error {
	input := &sns.PublishInput{
		TopicArn: awssdk.String(topicARN),
		Subject:  awssdk.String(subject),
		Message:  awssdk.String(body),
	}

	if _, err := p.snsClient.Publish(ctx, input); err != nil {
		return fmt.Errorf("publish to %s: %w", topicARN, err)
	}
	return nil
}
