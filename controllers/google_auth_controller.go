package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/freshtide/seamart/config"
	"github.com/freshtide/seamart/models"
	"github.com/freshtide/seamart/utils"
)

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GoogleLogin redirects to Google's consent page with a per-session state
func GoogleLogin(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		utils.InternalServerError(c, "Google login is not configured", nil)
		return
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		utils.InternalServerError(c, "Failed to start login", nil)
		return
	}
	state := hex.EncodeToString(buf)

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save OAuth state: %v", err)
		utils.InternalServerError(c, "Failed to start login", nil)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}

// GoogleCallback exchanges the code, provisions the account if needed, and
// redirects to the frontend with a JWT.
func GoogleCallback(c *gin.Context) {
	if config.GoogleOAuthConfig == nil {
		utils.InternalServerError(c, "Google login is not configured", nil)
		return
	}

	session := sessions.Default(c)
	savedState, _ := session.Get("oauth_state").(string)
	session.Delete("oauth_state")
	session.Save()

	if state := c.Query("state"); savedState == "" || state != savedState {
		utils.LogError("Google callback rejected - state mismatch")
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.LogError("Google token exchange failed: %v", err)
		utils.InternalServerError(c, "Failed to exchange token", nil)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + url.QueryEscape(token.AccessToken))
	if err != nil {
		utils.LogError("Failed to fetch Google user info: %v", err)
		utils.InternalServerError(c, "Failed to get user info", nil)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", nil)
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", nil)
		return
	}
	if googleUser.Email == "" {
		utils.BadRequest(c, "Google account has no email", nil)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		// First Google sign-in provisions a verified account with a random
		// password; the user can reset it later if they want email login.
		random := make([]byte, 24)
		rand.Read(random)
		hash, err := utils.HashPassword(hex.EncodeToString(random))
		if err != nil {
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}

		user = models.User{
			Username:   googleUser.Email,
			Email:      googleUser.Email,
			Password:   hash,
			FirstName:  googleUser.GivenName,
			LastName:   googleUser.FamilyName,
			IsVerified: true,
			GoogleID:   googleUser.ID,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create Google user %s: %v", googleUser.Email, err)
			utils.InternalServerError(c, "Failed to create user", nil)
			return
		}
		utils.LogInfo("Provisioned new account via Google: %s", user.Email)
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("User logged in via Google: %s", user.Email)
	redirectURL := fmt.Sprintf("%s?token=%s", os.Getenv("FRONTEND_URL"), url.QueryEscape(jwtToken))
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
