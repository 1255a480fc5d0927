package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"inventario/internal/domain/model"
	"inventario/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 初期アカウントの入力
type SeedEmployeeInput struct {
	Email    string
	Password string
	Name     string
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 従業員テーブルが空のときだけ初期アカウントを作る。
// 従業員の新規登録UIは無い（アカウントは管理側が用意する）前提の置き換え。
type SeedEmployeeUsecase struct {
	employeeRepo repository.EmployeeRepository
	hasher       PasswordHasher
	idGen        IDGenerator
	clock        Clock
}

// DI
func NewSeedEmployeeUsecase(
	employeeRepo repository.EmployeeRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
) *SeedEmployeeUsecase {
	return &SeedEmployeeUsecase{
		employeeRepo: employeeRepo,
		hasher:       hasher,
		idGen:        idGen,
		clock:        clock,
	}
}

// Executeは初期アカウントを作成したときtrueを返す。
// 既に従業員がいれば何もしない。
func (u *SeedEmployeeUsecase) Execute(ctx context.Context, in SeedEmployeeInput) (bool, error) {
	n, err := u.employeeRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	// emailの形式チェック
	if !isValidEmailFormat(in.Email) {
		return false, ErrInvalidEmailFormat
	}

	// password の長さチェック（最小12文字）
	if len(in.Password) < 12 {
		return false, ErrPasswordTooShort
	}

	// よくある弱いパスワードの拒否
	if isWeakPassword(in.Password) {
		return false, ErrWeakPassword
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return false, err
	}

	now := u.clock.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(in.Email)
	}

	e := &model.Employee{
		ID:           u.idGen.NewID(),
		Email:        strings.TrimSpace(in.Email),
		Name:         name,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		IsActive:     true,
		LastLoginAt:  nil,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.employeeRepo.Create(ctx, e); err != nil {
		return false, err
	}
	return true, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// よくある弱いパスワード
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":     {},
		"password123":  {},
		"123456789012": {},
		"1234567890":   {},
		"12345678":     {},
		"qwerty":       {},
		"qwertyuiop":   {},
		"letmein":      {},
		"admin":        {},
		"admin123":     {},
	}

	_, ok := weak[normalized]
	return ok
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
