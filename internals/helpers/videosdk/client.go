// Package videosdk is the room-provider client (VideoSDK REST API).
package videosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"jbh_backend/internals/helpers/errs"
)

type Role string

const (
	RoleModerator   Role = "moderator"
	RoleParticipant Role = "participant"
)

// RoomProvider is the capability set the live-class core needs from the
// conferencing vendor. Consumers take this interface so tests can fake it.
type RoomProvider interface {
	CreateRoom(ctx context.Context) (string, error)
	GenerateAccessToken(role Role) (string, error)
	StartParticipantRecording(ctx context.Context, roomID, participantID string) error
}

type Client struct {
	APIKey          string
	SecretKey       string
	Endpoint        string // e.g. https://api.videosdk.live/v2
	WebhookEndpoint string // our intake URL, registered on every room
	HTTPClient      *http.Client
}

func NewClient(apiKey, secretKey, endpoint, webhookEndpoint string) *Client {
	return &Client{
		APIKey:          apiKey,
		SecretKey:       secretKey,
		Endpoint:        endpoint,
		WebhookEndpoint: webhookEndpoint,
		HTTPClient:      &http.Client{Timeout: 15 * time.Second},
	}
}

// GenerateAccessToken mints a 24h HS256 token. Moderators get recording and
// publish permissions, participants may only join.
func (cl *Client) GenerateAccessToken(role Role) (string, error) {
	permissions := []string{"allow_join"}
	if role == RoleModerator {
		permissions = []string{"allow_join", "allow_mod", "allow_publish", "allow_recording"}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"apikey":      cl.APIKey,
		"permissions": permissions,
		"version":     2,
		"roles":       []string{string(role)},
		"iat":         now.Unix(),
		"exp":         now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cl.SecretKey))
	if err != nil {
		return "", errs.Upstream("failed to sign room provider token", err)
	}
	return signed, nil
}

func (cl *Client) CreateRoom(ctx context.Context) (string, error) {
	token, err := cl.GenerateAccessToken(RoleModerator)
	if err != nil {
		return "", err
	}

	reqBody := map[string]interface{}{
		"name": "Live Class Room",
		"webhook": map[string]interface{}{
			"endPoint": cl.WebhookEndpoint,
			"events": []string{
				"recording-started",
				"recording-stopped",
				"recording-failed",
				"participant-joined",
				"participant-left",
				"session-ended",
			},
		},
	}

	var resp struct {
		RoomID string `json:"roomId"`
	}
	if err := cl.post(ctx, "/rooms", token, reqBody, &resp); err != nil {
		return "", errs.Upstream("failed to create room", err)
	}
	if resp.RoomID == "" {
		return "", errs.Upstream("room provider returned empty roomId", nil)
	}
	return resp.RoomID, nil
}

func (cl *Client) StartParticipantRecording(ctx context.Context, roomID, participantID string) error {
	token, err := cl.GenerateAccessToken(RoleModerator)
	if err != nil {
		return err
	}

	reqBody := map[string]interface{}{
		"roomId":        roomID,
		"participantId": participantID,
	}
	if err := cl.post(ctx, "/recordings/participant/start", token, reqBody, nil); err != nil {
		return errs.Upstream("failed to start participant recording", err)
	}
	return nil
}

func (cl *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.Endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	res, err := cl.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return fmt.Errorf("room provider responded %d: %s", res.StatusCode, string(b))
	}
	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}
