package auth

import (
	"context"
	"errors"
	"time"

	"inventario/internal/domain/model"
	"inventario/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Employee model.Employee `json:"employee"`
	Token    JwtAccessToken `json:"token"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済み従業員
var ErrEmployeeInactive = errors.New("employee is inactive")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(e model.Employee, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type LoginUsecase struct {
	employeeRepo repository.EmployeeRepository
	verifier     PasswordVerifier
	issuer       AccessTokenIssuer
	clock        Clock
}

// DI
func NewLoginUsecase(
	employeeRepo repository.EmployeeRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		employeeRepo: employeeRepo,
		verifier:     verifier,
		issuer:       issuer,
		clock:        clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	e, err := u.employeeRepo.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// 存在の有無は外に漏らさない
		return out, ErrInvalidCredentials
	}
	if err != nil {
		return out, err
	}

	if !u.verifier.Verify(in.Password, e.PasswordHash) {
		return out, ErrInvalidCredentials
	}

	if !e.IsActive {
		return out, ErrEmployeeInactive
	}

	now := u.clock.Now()
	accessToken, expiresAt, err := u.issuer.Issue(*e, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	e.LastLoginAt = &now
	if err := u.employeeRepo.Update(ctx, e); err != nil {
		return out, err
	}

	//出力（ハッシュは返さない）
	safe := *e
	safe.PasswordHash = ""

	out.Employee = safe
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	return out, nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
