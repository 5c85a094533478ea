package handlers

import (
	"net/url"

	"machinehub/internal/config"
	"machinehub/internal/core/services"
	"machinehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// OAuthHandler handles external identity-provider login
type OAuthHandler struct {
	oauthService *services.OAuthService
	authService  *services.AuthService
	cfg          *config.Config
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(oauthService *services.OAuthService, authService *services.AuthService, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		authService:  authService,
		cfg:          cfg,
	}
}

// GetLoginURL returns the provider authorization URL
// @Summary Get OAuth login URL
// @Description Get URL to redirect user to the external identity provider
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/oauth/url [get]
func (h *OAuthHandler) GetLoginURL(c *fiber.Ctx) error {
	if !h.oauthService.Enabled() {
		return response.NotFound(c, "External login is not configured")
	}

	state := uuid.New().String()

	// State cookie for CSRF protection on the callback
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		MaxAge:   300,
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: "Lax",
	})

	return response.Success(c, "OAuth login URL", fiber.Map{
		"url": h.oauthService.GetLoginURL(state),
	})
}

// Callback handles the provider redirect. On any failure the user is
// sent back to the web app with an error query parameter; on success
// with token and role parameters.
// @Summary OAuth callback
// @Description Handle callback from the external identity provider
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State for CSRF protection"
// @Success 302
// @Router /auth/oauth/callback [get]
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	errorParam := c.Query("error")

	webAppURL := h.cfg.OAuth.WebAppURL

	// Check for error from the provider
	if errorParam != "" {
		return c.Redirect(webAppURL + "/login?error=oauth_cancelled")
	}

	if code == "" {
		return c.Redirect(webAppURL + "/login?error=no_code")
	}

	// Verify state
	savedState := c.Cookies("oauth_state")
	if savedState == "" || savedState != state {
		return c.Redirect(webAppURL + "/login?error=invalid_state")
	}

	// Clear state cookie
	c.Cookie(&fiber.Cookie{Name: "oauth_state", Value: "", MaxAge: -1})

	// Exchange code for a provider token
	tokenResp, err := h.oauthService.ExchangeToken(code)
	if err != nil {
		return c.Redirect(webAppURL + "/login?error=token_exchange_failed")
	}

	// Fetch the provider profile
	profile, err := h.oauthService.GetProfile(tokenResp.AccessToken)
	if err != nil {
		return c.Redirect(webAppURL + "/login?error=profile_failed")
	}
	if profile.Email == "" {
		return c.Redirect(webAppURL + "/login?error=no_email")
	}

	username := profile.Name
	if username == "" {
		username = profile.Email
	}

	// Find or provision the local account and issue tokens
	result, err := h.authService.LoginExternal(c.Context(), profile.Email, username)
	if err != nil {
		return c.Redirect(webAppURL + "/login?error=login_failed")
	}

	params := url.Values{}
	params.Set("token", result.AccessToken)
	params.Set("role", result.User.Role)

	return c.Redirect(webAppURL + "/login/callback?" + params.Encode())
}
