package models

import "time"

// TokenPair — пара токенов, выдаваемая при аутентификации/регистрации/ротации.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API;
//   - RefreshToken — долгоживущий JWT с зашитым jti; предъявляется один раз
//     для выпуска новой пары, после чего недействителен;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
//
// Plaintext обоих токенов существует вне клиента только в момент возврата
// этой структуры.
type TokenPair struct {
	// AccessToken — JWT для авторизации запросов.
	AccessToken string
	// RefreshToken — JWT для обновления пары (single-use).
	RefreshToken string
	// AccessExpiresAt — время истечения действия access-токена (UTC).
	AccessExpiresAt time.Time
}
