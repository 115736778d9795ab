package sms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type AWSSNSProvider struct {
	client *sns.Client
	region string
}

func NewAWSSNSProvider(region string) (*AWSSNSProvider, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSNSProvider{
		client: sns.NewFromConfig(cfg),
		region: region,
	}, nil
}

func (a *AWSSNSProvider) SendSMS(ctx context.Context, request *Request) (*Response, error) {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(request.To),
		Message:     aws.String(request.Message),
		MessageAttributes: map[string]snsTypes.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	}

	resp, err := a.client.Publish(ctx, input)
	if err != nil {
		return &Response{
			Status: "failed",
			Error:  err.Error(),
		}, err
	}

	return &Response{
		MessageID: *resp.MessageId,
		Status:    "sent",
	}, nil
}

func (a *AWSSNSProvider) SendBulkSMS(ctx context.Context, requests []*Request) ([]*Response, error) {
	responses := make([]*Response, len(requests))

	for i, req := range requests {
		resp, err := a.SendSMS(ctx, req)
		if err != nil {
			resp = &Response{
				Status: "failed",
				Error:  err.Error(),
			}
		}
		responses[i] = resp
	}

	return responses, nil
}
