package whatsapp

import (
	"context"
	"fmt"

	"geo-optimizer-server/internal/observability"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioClient sends WhatsApp messages through Twilio's messaging API.
type TwilioClient struct {
	client *twilio.RestClient
	from   string
	logger *observability.Logger
}

func NewTwilioClient(accountSID, authToken, from string, logger *observability.Logger) *TwilioClient {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioClient{
		client: client,
		from:   from,
		logger: logger,
	}
}

// SendMessage delivers a WhatsApp message to the given phone number
// (E.164, without the whatsapp: prefix).
func (c *TwilioClient) SendMessage(ctx context.Context, to, body string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "whatsapp_to", Value: to})

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + c.from)
	params.SetTo("whatsapp:" + to)
	params.SetBody(body)

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send whatsapp message", err)
		return "", fmt.Errorf("failed to send whatsapp message: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	c.logger.Info(ctx, "whatsapp message sent")
	return sid, nil
}
