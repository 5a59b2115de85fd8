package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// NewRefreshToken генерирует opaque refresh-токен: 32 случайных байта
// в base64url без паддинга. В отличие от access-токена это не JWT,
// сервер узнаёт его только по хэшу в таблице sessions.
func NewRefreshToken() (string, error) {
	b := make([]byte, 32) // 256-bit
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshToken считает SHA-256 от refresh-токена.
// В базу пишется только этот хэш, так что утечка таблицы sessions
// не раскрывает сами токены.
func HashRefreshToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
