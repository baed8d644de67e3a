package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/jgecalumni/room-booking-app/utils"
)

// Identity is the decoded caller attached to the request context. Handlers
// read this typed struct instead of digging through raw claims.
type Identity struct {
	ID    uint
	Email string
	Name  string
	Role  string
}

const identityKey = "identity"

// Protected verifies the identity token from the Authorization header
// (Bearer scheme) or the "token" cookie. A missing credential answers 404,
// an invalid or expired one 401.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:Authorization,cookie:token",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if err.Error() == "Missing or malformed JWT" {
				return utils.Fail(c, utils.E(utils.KindNotFound, "No token provided", nil))
			}
			return utils.Fail(c, utils.E(utils.KindAuth, "Invalid or expired token", err))
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Fail(c, utils.E(utils.KindAuth, "Invalid token", nil))
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Fail(c, utils.E(utils.KindAuth, "Invalid token claims", nil))
			}

			identity := Identity{}
			if id, ok := claims["id"].(float64); ok {
				identity.ID = uint(id)
			}
			identity.Email, _ = claims["email"].(string)
			identity.Name, _ = claims["name"].(string)
			identity.Role, _ = claims["role"].(string)

			c.Locals(identityKey, identity)
			return c.Next()
		},
	})
}

// RequireAdmin gates admin-only routes: the caller must match the
// configured admin address or carry the ADMIN role.
func RequireAdmin(adminEmail string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return utils.Fail(c, utils.E(utils.KindAuth, "Invalid or expired token", nil))
		}
		if identity.Email != adminEmail && identity.Role != "ADMIN" {
			return utils.Fail(c, utils.E(utils.KindForbidden, "Access denied", nil))
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity set by Protected.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}
