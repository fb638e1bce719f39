package service

import (
	"log/slog"
	"net/http"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"

	"github.com/romashorodok/room-token-server/pkg/protocol"
	"github.com/romashorodok/room-token-server/pkg/provider"
	"github.com/romashorodok/room-token-server/pkg/variables"
	"go.uber.org/fx"
)

// Redirects are returned as-is, the same as the SDK default client.
func twilioHTTPClient(config *variables.Config) *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: config.ProvisionTimeout,
	}
}

func twilioRestClient(config *variables.Config, httpClient *http.Client) *twilio.RestClient {
	client := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(config.TwilioAPIKeySID, config.TwilioAPIKeySecret),
		HTTPClient:  httpClient,
	}
	client.SetAccountSid(config.TwilioAccountSID)

	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Client: client,
	})
}

func twilioRoomProvider(client *twilio.RestClient, logger *slog.Logger) protocol.RoomProvider {
	logger.Debug("twilio video provider ready")
	return provider.NewTwilioRoomProvider(client.VideoV1)
}

var TwilioModule = fx.Module("twilio", fx.Provide(
	fx.Private,
	twilioHTTPClient,
), fx.Provide(
	twilioRestClient,
	twilioRoomProvider,
))
