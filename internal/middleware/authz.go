package middleware

import (
	"github.com/labstack/echo/v4"
)

// Role names carried in the JWT "role" claim.
const (
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// Client navigation targets used by redirect decisions.
const (
	LoginPath     = "/auth/login"
	DashboardPath = "/seller/dashboard"
)

// Principal is the authenticated identity a gate decides on.
type Principal struct {
	ID   uint64
	Role string
}

// Decision is the outcome of an authorization check: either the request
// may proceed, or the client should navigate to Redirect.
type Decision struct {
	Allowed  bool
	Redirect string
	Reason   string
}

// Authorize is the single authorization rule for every route gate.  It is
// a pure function so each gate enforces identical policy:
//   - no principal              -> redirect to login
//   - admin route, seller token -> redirect to the seller dashboard
//     (a deliberate downgrade rather than an error page)
//   - otherwise                 -> allowed
// requiredRole is empty for routes that only need authentication.
func Authorize(p *Principal, requiredRole string) Decision {
	if p == nil {
		return Decision{Redirect: LoginPath, Reason: "authentication required"}
	}
	if requiredRole != "" && p.Role != requiredRole {
		return Decision{Redirect: DashboardPath, Reason: "forbidden"}
	}
	return Decision{Allowed: true}
}

// RequireRole returns a middleware enforcing that the authenticated user
// holds the given role.  It assumes JWTAuth already ran and stored the
// role claim under "role".  The decision comes from Authorize so every
// gate shares one policy.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := principalFrom(c)
			if d := Authorize(p, role); !d.Allowed {
				return respondDecision(c, d)
			}
			return next(c)
		}
	}
}

// principalFrom rebuilds the Principal from context values set by JWTAuth.
// Returns nil when the request carries no authenticated identity.
func principalFrom(c echo.Context) *Principal {
	role, _ := c.Get("role").(string)
	switch id := c.Get("user_id").(type) {
	case float64: // JWT numeric claims decode as float64
		return &Principal{ID: uint64(id), Role: role}
	case uint64:
		return &Principal{ID: id, Role: role}
	}
	return nil
}
