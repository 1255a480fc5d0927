package server

import (
	"inventario/internal/handler"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// echoに渡すリクエスト検証（validate タグ）
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Handlersはルート登録に必要なhandler一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Item     *handler.ItemHandler
	Movement *handler.MovementHandler
	Stats    *handler.StatsHandler
}

// Newはechoサーバーを組み立てる
func New(h Handlers, guard echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Validator = &requestValidator{validate: validator.New()}

	RegisterRoutes(e, h, guard)
	return e
}

// Startはサーバーを起動する
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
