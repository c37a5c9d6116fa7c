package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jbh_backend/internals/features/liveclass/webhooks/service"
	"jbh_backend/internals/helpers/dbtest"
	"jbh_backend/internals/helpers/videosdk"
)

type noopRooms struct{}

func (noopRooms) CreateRoom(ctx context.Context) (string, error) { return "room-x", nil }

func (noopRooms) GenerateAccessToken(role videosdk.Role) (string, error) {
	return "tok-" + string(role), nil
}

func (noopRooms) StartParticipantRecording(ctx context.Context, roomID, participantID string) error {
	return nil
}

// The provider retries on any non-200, so the intake must acknowledge
// everything it receives, parseable or not.
func TestWebhookIntakeAlwaysAcknowledges(t *testing.T) {
	db := dbtest.Open(t)
	app := fiber.New()
	ctl := NewWebhookController(db, noopRooms{}, service.PlaybackConfig{})
	app.Post("/api/webhook/videosdk", ctl.HandleVideoSDK)

	for _, body := range []string{
		`{"webhookType":"session-ended","data":{"roomId":"room-nobody"}}`,
		`{"webhookType":"some-new-event","data":{"roomId":"room-nobody"}}`,
		`not json at all`,
		``,
	} {
		req := httptest.NewRequest("POST", "/api/webhook/videosdk", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %q", body)
	}
}
