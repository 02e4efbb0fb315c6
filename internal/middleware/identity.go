package middleware

// identity.go resolves the current user for every request. The platform
// sits behind a gateway that authenticates members and forwards their id
// in the X-User-ID header; requests without one are treated as the shared
// guest identity.

import "github.com/labstack/echo/v4"

// UserHeader is the header the gateway sets after authentication.
const UserHeader = "X-User-ID"

// Guest is the identity used when no user header is present.
const Guest = "guest"

// Identity stores the request's user id in the Echo context under
// "user_id" where handlers and the other middleware read it.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.Request().Header.Get(UserHeader)
			if uid == "" {
				uid = Guest
			}
			c.Set("user_id", uid)
			return next(c)
		}
	}
}

// currentUserID reads the identity set by Identity, falling back to guest
// for routes mounted outside it.
func currentUserID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return Guest
}
