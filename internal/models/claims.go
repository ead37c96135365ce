package models

import (
	"time"

	"github.com/google/uuid"
)

// Claims — проверенные утверждения токена, прикрепляемые к запросу.
// Не персистятся. JTI заполнен только для refresh-токенов; у access-токенов
// он всегда uuid.Nil.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	JTI       uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
