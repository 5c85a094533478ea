package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"machinehub/internal/config"
)

// OAuthService talks to the external identity provider
type OAuthService struct {
	cfg config.OAuthConfig
}

// OAuthTokenResponse represents the provider's token response
type OAuthTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// OAuthProfile represents the provider's user profile
type OAuthProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(cfg config.OAuthConfig) *OAuthService {
	return &OAuthService{cfg: cfg}
}

// Enabled reports whether the provider is configured
func (s *OAuthService) Enabled() bool {
	return s.cfg.ClientID != "" && s.cfg.AuthorizeURL != ""
}

// GetLoginURL generates the provider authorization URL
func (s *OAuthService) GetLoginURL(state string) string {
	params := url.Values{}
	params.Add("response_type", "code")
	params.Add("client_id", s.cfg.ClientID)
	params.Add("redirect_uri", s.cfg.CallbackURL)
	params.Add("state", state)
	params.Add("scope", "profile email")

	return fmt.Sprintf("%s?%s", s.cfg.AuthorizeURL, params.Encode())
}

// ExchangeToken exchanges an authorization code for an access token
func (s *OAuthService) ExchangeToken(code string) (*OAuthTokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", s.cfg.CallbackURL)
	data.Set("client_id", s.cfg.ClientID)
	data.Set("client_secret", s.cfg.ClientSecret)

	req, err := http.NewRequest("POST", s.cfg.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth token error: %s", string(body))
	}

	var tokenResp OAuthTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// GetProfile fetches the provider user profile
func (s *OAuthService) GetProfile(accessToken string) (*OAuthProfile, error) {
	req, err := http.NewRequest("GET", s.cfg.ProfileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth profile error: %s", string(body))
	}

	var profile OAuthProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
