package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"edesign/config"
)

const defaultFonnteURL = "https://api.fonnte.com/send"

// FonnteClient sends WhatsApp messages through Fonnte.
type FonnteClient struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewFonnteClient() *FonnteClient {
	return &FonnteClient{
		Token:      config.GetEnv("FONNTE_TOKEN", ""),
		BaseURL:    config.GetEnv("FONNTE_API_URL", defaultFonnteURL),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SendMessage delivers one message to a phone number. Fonnte expects the
// target without a leading '+'.
func (fc *FonnteClient) SendMessage(ctx context.Context, target, message string) error {
	payload, err := json.Marshal(map[string]string{
		"target":  strings.TrimPrefix(target, "+"),
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fc.BaseURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fc.Token)

	resp, err := fc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Fonnte: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fonnte API error (%d): %s", resp.StatusCode, string(body))
	}

	return nil
}
