package alert

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	fail  map[string]bool
	sends []*ses.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.sends = append(f.sends, params)
	if f.fail[params.Destination.ToAddresses[0]] {
		return nil, errors.New("address is not verified")
	}
	return &ses.SendEmailOutput{MessageId: aws.String("message-id")}, nil
}

func TestConfig_Enabled(t *testing.T) {
	require.False(t, Config{}.Enabled())
	require.False(t, Config{RecipientEmails: []string{"a@example.org"}}.Enabled())
	require.False(t, Config{ReturnToAddr: "no_reply@example.org"}.Enabled())
	require.True(t, Config{ReturnToAddr: "no_reply@example.org", RecipientEmails: []string{"a@example.org"}}.Enabled())
}

func TestSendEmail_NotConfigured(t *testing.T) {
	require.NoError(t, SendEmail(context.Background(), Config{}, "body"))
}

func Test_sendEmails(t *testing.T) {
	cfg := Config{
		ReturnToAddr:    "no_reply@example.org",
		RecipientEmails: []string{"a@example.org", "b@example.org", "c@example.org"},
	}

	t.Run("all sent", func(t *testing.T) {
		svc := &fakeSES{}
		require.NoError(t, sendEmails(context.Background(), svc, cfg, "sync failed"))
		require.Len(t, svc.sends, 3)

		first := svc.sends[0]
		require.Equal(t, "no_reply@example.org", *first.Source)
		require.Equal(t, DefaultSubjectText, *first.Message.Subject.Data)
		require.Equal(t, DefaultCharSet, *first.Message.Body.Text.Charset)
		require.Equal(t, "sync failed", *first.Message.Body.Text.Data)
	})

	t.Run("one bad recipient", func(t *testing.T) {
		svc := &fakeSES{fail: map[string]bool{"b@example.org": true}}
		err := sendEmails(context.Background(), svc, cfg, "sync failed")
		require.ErrorContains(t, err, "b@example.org")
		require.NotContains(t, err.Error(), "a@example.org")
		require.Len(t, svc.sends, 3)
	})
}
