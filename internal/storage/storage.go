package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-task-tracker/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/сессия/задача).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/jti).
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnavailable — транзиентная ошибка инфраструктуры (таймаут/обрыв
	// соединения). Вызывающая сторона может повторить запрос; сервисный
	// слой сам мутации не ретраит.
	ErrUnavailable = errors.New("storage unavailable")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя. Уникальность email обеспечивает
	// ограничение БД: при дубликате возвращается ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateUser обновляет профиль (email/name/password_hash).
	UpdateUser(ctx context.Context, user *models.User) error
	// DeleteUser удаляет пользователя.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// TokenStorage выполняет операции над refresh-сессиями пользователя.
// Все мутации атомарны на уровне одного SQL-запроса.
type TokenStorage interface {
	// SaveTokenEntry добавляет новую сессию в коллекцию пользователя.
	SaveTokenEntry(ctx context.Context, entry *models.TokenEntry) error
	// TokenEntryByJTI находит сессию по (userID, jti).
	TokenEntryByJTI(ctx context.Context, userID, jti uuid.UUID) (*models.TokenEntry, error)
	// ReplaceTokenEntry атомарно заменяет сессию oldJTI на entry одним
	// условным запросом. Если oldJTI уже отсутствует (сессия потреблена
	// конкурентной ротацией или отозвана) — ErrNotFound, entry не записывается.
	ReplaceTokenEntry(ctx context.Context, userID, oldJTI uuid.UUID, entry *models.TokenEntry) error
	// RemoveTokenEntry удаляет одну сессию. Идемпотентна: отсутствие jti
	// ошибкой не считается.
	RemoveTokenEntry(ctx context.Context, userID, jti uuid.UUID) error
	// ClearTokenEntries удаляет все сессии пользователя (ремедиация при
	// обнаружении повторного использования refresh-токена).
	ClearTokenEntries(ctx context.Context, userID uuid.UUID) error
	// DeleteStaleTokenEntries удаляет сессии, созданные раньше cutoff
	// (санитарная уборка: подпись таких токенов всё равно истекла).
	DeleteStaleTokenEntries(ctx context.Context, cutoff time.Time) error
}

// TaskStorage выполняет операции над задачами.
type TaskStorage interface {
	// SaveTask создает новую задачу.
	SaveTask(ctx context.Context, task *models.Task) error
	// TaskByID находит задачу по ID.
	TaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// ListTasks возвращает страницу задач по фильтру и общее количество.
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, int64, error)
	// UpdateTask обновляет задачу.
	UpdateTask(ctx context.Context, task *models.Task) error
	// DeleteTask удаляет задачу.
	DeleteTask(ctx context.Context, id uuid.UUID) error
	// TaskStats считает агрегаты по статусам и приоритетам.
	TaskStats(ctx context.Context) (*models.TaskStats, error)
	// MarkOverdueTasks одним запросом переводит просроченные PENDING-задачи
	// (due_date < now) в OVERDUE и возвращает их идентификаторы.
	MarkOverdueTasks(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	TokenStorage
	TaskStorage
	Close()
}
