package alert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	DefaultCharSet     = "UTF-8"
	DefaultSubjectText = "Product category sync error"
)

type Config struct {
	AWSRegion          string
	CharSet            string
	ReturnToAddr       string
	SubjectText        string
	RecipientEmails    []string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Enabled is true when there is someone to send alerts to
func (c Config) Enabled() bool {
	return len(c.RecipientEmails) > 0 && c.ReturnToAddr != ""
}

type emailSender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SendEmail sends body to every recipient in config through SES. It does
// nothing if alerts are not configured.
func SendEmail(ctx context.Context, cfg Config, body string) error {
	if !cfg.Enabled() {
		return nil
	}

	svc, err := createSESService(ctx, cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
	if err != nil {
		return fmt.Errorf("failed to create SES service: %w", err)
	}

	return sendEmails(ctx, svc, cfg, body)
}

func sendEmails(ctx context.Context, svc emailSender, cfg Config, body string) error {
	msg := newMessage(cfg, body)

	// Send emails to one recipient at a time to avoid one bad email sabotaging it all
	var errs []error
	var badRecipients []string
	for _, address := range cfg.RecipientEmails {
		input := &ses.SendEmailInput{
			Destination: &types.Destination{
				ToAddresses: []string{address},
			},
			Message: msg,
			Source:  aws.String(cfg.ReturnToAddr),
		}
		if _, err := svc.SendEmail(ctx, input); err != nil {
			errs = append(errs, err)
			badRecipients = append(badRecipients, address)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("error sending email from '%s' to '%s': %w",
			cfg.ReturnToAddr, strings.Join(badRecipients, ", "), errors.Join(errs...))
	}
	return nil
}

func newMessage(cfg Config, body string) *types.Message {
	charSet := cfg.CharSet
	if charSet == "" {
		charSet = DefaultCharSet
	}
	subject := cfg.SubjectText
	if subject == "" {
		subject = DefaultSubjectText
	}

	return &types.Message{
		Subject: &types.Content{
			Charset: aws.String(charSet),
			Data:    aws.String(subject),
		},
		Body: &types.Body{
			Text: &types.Content{
				Charset: aws.String(charSet),
				Data:    aws.String(body),
			},
		},
	}
}

func createSESService(ctx context.Context, region, key, secret string) (*ses.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("AWS SDK LoadDefaultConfig failed: %w", err)
	}

	if region != "" {
		cfg.Region = region
	}
	if key != "" && secret != "" {
		cfg.Credentials = credentials.NewStaticCredentialsProvider(key, secret, "")
	}

	return ses.NewFromConfig(cfg), nil
}
