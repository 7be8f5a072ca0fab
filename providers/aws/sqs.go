package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/vahti-io/vahti/naming"
)

// ListQueueNames enumerates SQS queues in the region and returns their
// names, extracted from the queue URLs. Single page only.
func (p *Provider) ListQueueNames(ctx context.Context) ([]string, error) {
	output, err := p.sqsClient.ListQueues(ctx, &sqs.ListQueuesInput{})
	if err != nil {
		return nil, fmt.Errorf("list queues: %w", err)
	}

	names := make([]string, 0, len(output.QueueUrls))
	for _, queueURL := range output.QueueUrls {
		name, err := naming.QueueNameFromURL(queueURL)
		if err != nil {
			// Malformed URL from the API, skip it
			continue
		}
		names = append(names, name)
	}

	return names, nil
}
