package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const adminRealm = `Basic realm="admin"`

// AdminAuth guards the write endpoints with HTTP Basic credentials. The
// configured password may be a bcrypt hash, recognized by its $2 prefix;
// plain values are compared in constant time. With no credentials configured
// every request is rejected, so a forgotten environment variable fails
// closed rather than open.
func AdminAuth(username, password string, log *logrus.Logger) fiber.Handler {
	configured := username != "" && password != ""
	if !configured {
		log.Warn("Admin credentials not configured; admin endpoints will reject all requests")
	}

	return basicauth.New(basicauth.Config{
		Realm: "admin",
		Authorizer: func(user, pass string) bool {
			if !configured {
				return false
			}
			if subtle.ConstantTimeCompare([]byte(user), []byte(username)) != 1 {
				return false
			}
			if strings.HasPrefix(password, "$2") {
				return bcrypt.CompareHashAndPassword([]byte(password), []byte(pass)) == nil
			}
			return subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, adminRealm)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Administrator credentials required",
			})
		},
	})
}
