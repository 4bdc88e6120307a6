package authController

import (
	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/utils"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Pending OAuth state nonces. Consumed on callback, expired after 10 minutes.
var oauthStates = struct {
	sync.Mutex
	m map[string]time.Time
}{m: make(map[string]time.Time)}

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleLogin redirects the browser to Google's consent screen.
func GoogleLogin(c *fiber.Ctx) error {
	if config.AppConfig.GoogleClientID == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Google sign-in is not configured!", nil)
	}

	state := uuid.NewString()

	oauthStates.Lock()
	now := time.Now()
	for s, expiry := range oauthStates.m {
		if now.After(expiry) {
			delete(oauthStates.m, s)
		}
	}
	oauthStates.m[state] = now.Add(10 * time.Minute)
	oauthStates.Unlock()

	return c.Redirect(googleOAuthConfig().AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

type googleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback exchanges the authorization code, resolves the Google
// profile to a local user and returns a session token. New users become
// unapproved students; admins are only ever created manually.
func GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing state or code!", nil)
	}

	oauthStates.Lock()
	expiry, ok := oauthStates.m[state]
	delete(oauthStates.m, state)
	oauthStates.Unlock()
	if !ok || time.Now().After(expiry) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired OAuth state!", nil)
	}

	tok, err := googleOAuthConfig().Exchange(c.Context(), code)
	if err != nil {
		log.Printf("Error exchanging Google auth code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Google sign-in failed!", nil)
	}

	var profile googleProfile
	resp, err := resty.New().SetTimeout(10 * time.Second).R().
		SetAuthToken(tok.AccessToken).
		SetResult(&profile).
		Get(googleUserInfoURL)
	if err != nil || resp.IsError() || profile.Email == "" {
		log.Printf("Error fetching Google profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Google sign-in failed!", nil)
	}

	db := database.Database.Db

	var user models.User
	err = db.Where("(gmail_uid = ? OR email = ?) AND is_deleted = ?", profile.ID, profile.Email, false).First(&user).Error
	switch {
	case err == nil:
		// Returning user: refresh the display name and bind the Google id
		user.FullName = profile.Name
		user.GmailUID = profile.ID
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error updating Google user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign in!", nil)
		}
		middleware.InvalidateUser(user.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			FullName: profile.Name,
			Email:    profile.Email,
			GmailUID: profile.ID,
			Role:     models.RoleStudent,
			Approved: false,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error creating Google user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign in!", nil)
		}
		go utils.SendWelcomeEmail(user.Email, user.FullName)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign in!", nil)
	}

	user.Password = ""

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}
