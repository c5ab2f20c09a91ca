// Package domain はauthフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrUserAlreadyExists は同じメールアドレスのユーザーが既に存在することを示します。
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound は条件に一致するユーザーが存在しないことを示します。
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials はメールアドレスまたはパスワードが一致しないことを示します。
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword はパスワードが強度要件を満たさないことを示します。
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrInvalidToken はログアウト対象のトークン情報が欠けていることを示します。
	ErrInvalidToken = errors.New("invalid token")
)
