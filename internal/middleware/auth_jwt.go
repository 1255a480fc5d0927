package middleware

import (
	"errors"
	"net/http"
	"strings"

	"inventario/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxEmployeeIDKey    = "employee_id"    // string
	CtxEmployeeEmailKey = "employee_email" // string
	CtxEmployeeNameKey  = "employee_name"  // string
)

// bearerAuth用のJWT検証ミドルウェア。
// 検証が通ったらactorの情報をcontextへ入れる。mutation系のルートはこれを前提にする。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//claimsを取り出す
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			employeeID, err := parseString(claims["sub"])
			if err != nil || employeeID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			email, err := parseString(claims["email"])
			if err != nil || email == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			// nameは表示用。無くても通す
			name, _ := parseString(claims["name"])

			//contextへ保存
			c.Set(CtxEmployeeIDKey, employeeID)
			c.Set(CtxEmployeeEmailKey, email)
			c.Set(CtxEmployeeNameKey, name)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

// ActorIDはミドルウェアが入れたactorのIDを返す。未認証ルートでは空文字。
func ActorID(c echo.Context) string {
	if v, ok := c.Get(CtxEmployeeIDKey).(string); ok {
		return v
	}
	return ""
}
