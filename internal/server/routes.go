package server

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesは全ルートを登録する。
// loginだけが公開で、残りは全てJWTガード配下（「認証済みであること」だけが権限条件）。
func RegisterRoutes(e *echo.Echo, h Handlers, guard echo.MiddlewareFunc) {
	h.Auth.RegisterPublicRoutes(e)

	g := e.Group("", guard)
	h.Auth.RegisterProtectedRoutes(g)
	h.Item.RegisterRoutes(g)
	h.Movement.RegisterRoutes(g)
	h.Stats.RegisterRoutes(g)
}
