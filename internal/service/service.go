// service содержит бизнес-логику task-tracker'а: регистрацию и аутентификацию
// пользователей, выпуск/ротацию/отзыв refresh-токенов с детекцией повторного
// использования, проверку access-токенов и операции над задачами.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Сериализация конкурентных ротаций одного refresh-токена достигается
//     условным обновлением на уровне хранилища (ReplaceTokenEntry), без
//     блокировок в сервисе.
//   - Ошибки возвращаются сентинелами и далее маппятся транспортом на
//     HTTP-коды (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/pribylovaa/go-task-tracker/internal/config"
	"github.com/pribylovaa/go-task-tracker/internal/queue"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Транспорт: 401; тело ответа не различает причину.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken — e-mail уже занят другим пользователем. Транспорт: 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidToken — access-токен некорректен по формату/подписи. Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия access-токена истёк. Транспорт: 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidRefreshToken — refresh-токен не прошёл проверку подписи/срока
	// или пользователь из claims исчез. Терминальная ошибка, состояние
	// хранилища не меняется. Транспорт: 401.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrReuseDetected — структурно валидный refresh-токен ссылается на
	// отсутствующую сессию либо не совпал с сохранённым хэшем: сигнал кражи
	// или повторного использования. К моменту возврата ошибки все сессии
	// пользователя уже отозваны. Транспорт: 401, тело неотличимо от прочих
	// 401 — различие только во внутренних логах.
	ErrReuseDetected = errors.New("refresh token reuse detected")

	// ErrInvalidEmail — e-mail имеет некорректный формат. Транспорт: 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политике сложности. Транспорт: 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrNotFound — сущность (задача/пользователь) не найдена. Транспорт: 404.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied — операция доступна только владельцу или админу.
	// Транспорт: 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument — некорректные входные данные (статус/приоритет/заголовок).
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service описывает бизнес-логику сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	jobs    queue.Queue // может быть nil, если очередь не сконфигурирована
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetQueue устанавливает очередь фоновых задач (опционально).
func (s *Service) SetQueue(q queue.Queue) {
	s.jobs = q
}
