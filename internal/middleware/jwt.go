package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject and role claims into the request context.  The
// provided secret must match the one used when issuing tokens.  This
// middleware wraps every gated route so that handlers can read the
// authenticated principal via `c.Get("user_id")` and `c.Get("role")`.
//
// The token is verified synchronously before any routing decision is made:
// there is no "still checking" window in which a request could be bounced
// to login with incomplete information.  A missing or invalid token yields
// the login redirect produced by Authorize.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return respondDecision(c, Authorize(nil, ""))
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject any other signing
			// method so an attacker cannot downgrade the algorithm.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return respondDecision(c, Authorize(nil, ""))
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return respondDecision(c, Authorize(nil, ""))
			}

			// Store the subject (user ID) and role claims in the context
			// for handlers and the role gate.
			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

// respondDecision translates an authorization decision into a JSON
// response.  Redirect decisions carry the navigation target so API clients
// can route the user instead of showing an error page.
func respondDecision(c echo.Context, d Decision) error {
	if d.Allowed {
		return nil
	}
	status := http.StatusForbidden
	if d.Redirect == LoginPath {
		status = http.StatusUnauthorized
	}
	return c.JSON(status, echo.Map{"error": d.Reason, "redirect": d.Redirect})
}
