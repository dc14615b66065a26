package middleware

import (
	"github.com/gofiber/fiber/v2"

	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/response"
)

const principalKey = "principal"

// Authenticate resolves the bearer token into a principal; requests without one stay anonymous
func Authenticate(auth *services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := auth.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return response.FromError(c, err)
		}
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	}
}

// Principal returns the authenticated caller of the request, or nil
func Principal(c *fiber.Ctx) *domain.Principal {
	p, _ := c.Locals(principalKey).(*domain.Principal)
	return p
}

// Authorize permits the request when any rule matches the principal and the request parameters
func Authorize(rules ...services.Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := Principal(c)
		if principal == nil {
			return response.Unauthorized(c)
		}

		params := services.RequestParams{Path: c.AllParams(), Query: queryValues(c)}
		if services.DecideAny(principal, rules, params) == services.Deny {
			return response.Forbidden(c)
		}
		return c.Next()
	}
}

// queryValues collects every value of every query key
func queryValues(c *fiber.Ctx) map[string][]string {
	values := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		values[k] = append(values[k], string(value))
	})
	return values
}

// RequireAuth only requires an authenticated principal
func RequireAuth() fiber.Handler {
	return Authorize(services.Allow(domain.AllRoles()...))
}
