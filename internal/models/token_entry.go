package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenEntry — одна активная refresh-сессия пользователя (устройство).
//
// Описание:
//   - JTI — уникальный идентификатор сессии; тот же jti зашит в подписанный
//     refresh-токен, по нему запись находится при ротации;
//   - TokenHash — bcrypt-хэш plaintext refresh-токена; сам токен сервер
//     не хранит никогда;
//   - Device — необязательная метка устройства/клиента.
//
// Инвариант: внутри коллекции пользователя jti уникален (PK (user_id, jti)).
// Запись создаётся при выпуске токена (login/register/ротация), атомарно
// заменяется при ротации, удаляется при logout; вся коллекция очищается
// при обнаружении повторного использования токена.
type TokenEntry struct {
	UserID    uuid.UUID
	JTI       uuid.UUID
	TokenHash string
	Device    string
	CreatedAt time.Time
}
