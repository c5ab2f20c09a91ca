package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "company_research/internal/feature/auth/adapters"
	authhandler "company_research/internal/feature/auth/transport/handler"
	authusecase "company_research/internal/feature/auth/usecase"
	jwtmw "company_research/internal/platform/jwt"
	"company_research/internal/platform/session"
)

// revocationKeyPrefix はRedis上の失効済みトークンキーの接頭辞です。
const revocationKeyPrefix = "revoked"

// RevocationStore はログアウト時の失効登録と認証時の失効確認の両方を担います。
type RevocationStore interface {
	authusecase.TokenRevoker
	jwtmw.RevocationChecker
}

// NewRevocationStore はRedisが利用可能な場合にRedis実装を返します。
// Redisがない場合はnilを返し、失効チェックは無効になります。
func NewRevocationStore(rdb *redis.Client) RevocationStore {
	if rdb == nil {
		return nil
	}
	return session.NewRevocationRedis(rdb, revocationKeyPrefix)
}

// NewAuthUsecase はJWT設定を読み込み、認証ユースケースを生成します。
func NewAuthUsecase(db *gorm.DB, revocations RevocationStore) authhandler.AuthUsecase {
	cfg := jwtmw.LoadConfig()
	var revoker authusecase.TokenRevoker
	if revocations != nil {
		revoker = revocations
	}
	return authusecase.NewAuthUsecase(
		authadapters.NewUserGorm(db),
		jwtmw.NewGenerator(cfg.Secret, cfg.Expiration),
		revoker,
	)
}
