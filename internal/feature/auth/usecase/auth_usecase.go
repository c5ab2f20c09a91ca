// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"company_research/internal/feature/auth/domain"
	"company_research/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数です。
	minPasswordLength = 8
	// maxPasswordLength はbcryptが扱える最大バイト数です。
	maxPasswordLength = 72
)

// dummyHash はユーザーが存在しない場合にも比較処理を行うためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。メールアドレス重複時はdomain.ErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail はメールアドレスでユーザーを取得します。存在しない場合はdomain.ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
	Expiration() time.Duration
}

// TokenRevoker はログアウトしたトークンを失効させます。
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	revoker      TokenRevoker
	now          func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// revokerがnilの場合、ログアウトはクライアント側のトークン破棄のみとなります。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, revoker TokenRevoker) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		revoker:      revoker,
		now:          time.Now,
	}
}

// validatePassword はパスワードが長さ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: length must be between %d and %d", domain.ErrWeakPassword, minPasswordLength, maxPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: normalizeEmail(email), Password: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、署名済みJWTとその有効期間を返します。
// ユーザーが存在しない場合でもbcrypt比較を実行し、応答時間からの列挙を防ぎます。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, time.Duration, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", 0, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", 0, domain.ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, u.jwtGenerator.Expiration(), nil
}

// Logout はトークンIDを残り有効期間だけ失効リストに登録します。
func (u *authUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return domain.ErrInvalidToken
	}
	if u.revoker == nil {
		slog.Debug("token revocation disabled; logout is client-side only", "jti", jti)
		return nil
	}
	ttl := expiresAt.Sub(u.now())
	if err := u.revoker.Revoke(ctx, jti, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
