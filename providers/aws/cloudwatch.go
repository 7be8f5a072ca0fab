package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Alarm is a CloudWatch alarm as seen by the reconciler.
type Alarm struct {
	Name string
	ARN  string
}

// QueueDepthAlarm describes the alarm created for a queue.
type QueueDepthAlarm struct {
	AlarmName     string
	QueueName     string
	Threshold     int
	PeriodSeconds int
	TopicARN      string
}

// ListAlarms returns metric alarms in the region. A non-empty prefix is
// pushed down to the API as a name-prefix filter; any further filtering
// happens in the caller. Single page only.
func (p *Provider) ListAlarms(ctx context.Context, prefix string) ([]Alarm, error) {
	input := &cloudwatch.DescribeAlarmsInput{}
	if prefix != "" {
		input.AlarmNamePrefix = awssdk.String(prefix)
	}

	output, err := p.cwClient.DescribeAlarms(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("describe alarms: %w", err)
	}

	alarms := make([]Alarm, 0, len(output.MetricAlarms))
	for _, metricAlarm := range output.MetricAlarms {
		alarms = append(alarms, Alarm{
			Name: awssdk.ToString(metricAlarm.AlarmName),
			ARN:  awssdk.ToString(metricAlarm.AlarmArn),
		})
	}

	return alarms, nil
}

// PutQueueDepthAlarm creates or overwrites a visible-message-count alarm
// for an SQS queue. Missing data never breaches: an idle queue with no
// datapoints must not alert.
func (p *Provider) PutQueueDepthAlarm(ctx context.Context, alarm QueueDepthAlarm) error {
	input := &cloudwatch.PutMetricAlarmInput{
		AlarmName: awssdk.String(alarm.AlarmName),
		AlarmDescription: awssdk.String(
			fmt.Sprintf("Message backlog on SQS queue %s reached %d", alarm.QueueName, alarm.Threshold)),
		Namespace:  awssdk.String("AWS/SQS"),
		MetricName: awssdk.String("ApproximateNumberOfMessagesVisible"),
		Dimensions: []types.Dimension{
			{Name: awssdk.String("QueueName"), Value: awssdk.String(alarm.QueueName)},
		},
		Statistic:          types.StatisticAverage,
		Period:             awssdk.Int32(int32(alarm.PeriodSeconds)),
		EvaluationPeriods:  awssdk.Int32(1),
		Threshold:          awssdk.Float64(float64(alarm.Threshold)),
		ComparisonOperator: types.ComparisonOperatorGreaterThanOrEqualToThreshold,
		TreatMissingData:   awssdk.String("notBreaching"),
	}
	if alarm.TopicARN != "" {
		input.AlarmActions = []string{alarm.TopicARN}
		input.OKActions = []string{alarm.TopicARN}
	}

	if _, err := p.cwClient.PutMetricAlarm(ctx, input); err != nil {
		return fmt.Errorf("put metric alarm %s: %w", alarm.AlarmName, err)
	}
	return nil
}

// DeleteAlarm removes an alarm by name.
func (p *Provider) DeleteAlarm(ctx context.Context, name string) error {
	input := &cloudwatch.DeleteAlarmsInput{AlarmNames: []string{name}}
	if _, err := p.cwClient.DeleteAlarms(ctx, input); err != nil {
		return fmt.Errorf("delete alarm %s: %w", name, err)
	}
	return nil
}

// TagAlarm looks up the alarm's ARN and applies tags to it.
func (p *Provider) TagAlarm(ctx context.Context, name string, tags map[string]string) error {
	output, err := p.cwClient.DescribeAlarms(ctx, &cloudwatch.DescribeAlarmsInput{
		AlarmNames: []string{name},
	})
	if err != nil {
		return fmt.Errorf("describe alarm %s: %w", name, err)
	}
	if len(output.MetricAlarms) == 0 {
		return fmt.Errorf("alarm %s not found for tagging", name)
	}

	cwTags := make([]types.Tag, 0, len(tags))
	for key, value := range tags {
		cwTags = append(cwTags, types.Tag{
			Key:   awssdk.String(key),
			Value: awssdk.String(value),
		})
	}

	_, err = p.cwClient.TagResource(ctx, &cloudwatch.TagResourceInput{
		ResourceARN: output.MetricAlarms[0].AlarmArn,
		Tags:        cwTags,
	})
	if err != nil {
		return fmt.Errorf("tag alarm %s: %w", name, err)
	}
	return nil
}
