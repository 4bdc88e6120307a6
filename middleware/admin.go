package middleware

import (
	"errors"
	"time"

	"academy/models"
	"academy/repository"

	"github.com/gofiber/fiber/v2"
)

var sessionUsers = newUserCache(5*time.Minute, 1000)

// Users is the repo the session layer resolves identities with. Set in main
// after the database connects.
var Users *repository.UserRepo

func init() {
	sessionUsers.startJanitor(time.Minute)
}

// CurrentUser resolves the authenticated user for a request, serving repeat
// lookups from the session cache.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}

	if cached, ok := sessionUsers.get(userID); ok {
		return &cached, nil
	}

	user, err := Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	sessionUsers.set(*user)
	return user, nil
}

// InvalidateUser drops a user from the session cache, e.g. after an admin
// changes their account flags.
func InvalidateUser(id uint) {
	sessionUsers.invalidate(id)
}

// RequireAdmin rejects any caller whose account is not an active admin.
// Runs after JWTMiddleware.
func RequireAdmin(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if user.Role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	return c.Next()
}
