package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used here
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends through AWS Simple Email Service
type SESMailer struct {
	client SESAPI
}

// NewSESMailer loads the default AWS credential chain for region
func NewSESMailer(ctx context.Context, region string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg)}, nil
}

// NewSESMailerWithClient wraps an existing client
func NewSESMailerWithClient(client SESAPI) *SESMailer {
	return &SESMailer{client: client}
}

func (m *SESMailer) Name() string { return "ses" }

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(msg.From),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Html: &sestypes.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}
