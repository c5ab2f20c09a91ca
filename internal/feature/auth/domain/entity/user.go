// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// User はレポートを保存できる登録ユーザーです。
// Passwordにはbcryptハッシュのみを保持し、平文は保存しません。
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
