// Package session はログアウト済みトークンの失効リストをRedisで管理します。
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRedis はJWTのID（jti）単位で失効状態を保持します。
// キーはトークンの残り有効期間だけ保持され、期限切れ後はRedisのTTLで消えます。
type RevocationRedis struct {
	client *redis.Client
	prefix string
}

// NewRevocationRedis はRevocationRedisの新しいインスタンスを生成します。
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	return &RevocationRedis{client: client, prefix: prefix}
}

func (r *RevocationRedis) key(jti string) string {
	return fmt.Sprintf("%s:%s", r.prefix, jti)
}

// Revoke はjtiを失効させます。ttlが0以下のトークンは既に期限切れのため何もしません。
func (r *RevocationRedis) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("token id is empty")
	}
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.key(jti), "1", ttl).Err()
}

// IsRevoked はjtiが失効済みかどうかを返します。
func (r *RevocationRedis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
