package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// googleVerifier validates ID tokens against Google's tokeninfo
// endpoint.
type googleVerifier struct {
	client   *http.Client
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		clientID: clientID,
	}
}

type tokenInfoResponse struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", googleTokenInfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	if v.clientID != "" && info.Aud != v.clientID {
		return nil, errors.New("token audience mismatch")
	}
	if info.EmailVerified != "true" {
		return nil, errors.New("google account email is not verified")
	}

	return &GoogleProfile{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
	}, nil
}
