package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus — статус задачи.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusOverdue    TaskStatus = "OVERDUE"
)

// Valid сообщает, известен ли статус.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}

	return false
}

// TaskPriority — приоритет задачи.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Valid сообщает, известен ли приоритет.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}

	return false
}

// Task — задача пользователя.
// DueDate может отсутствовать (nil) — такая задача не попадает в overdue-обход.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilter — фильтр и пагинация списка задач.
// Нулевые значения Status/Priority означают "без фильтра".
type TaskFilter struct {
	Status   TaskStatus
	Priority TaskPriority
	Page     int
	Limit    int
}

// TaskStats — агрегаты по задачам.
type TaskStats struct {
	Total          int64
	Completed      int64
	InProgress     int64
	Pending        int64
	Overdue        int64
	HighPriority   int64
	MediumPriority int64
	LowPriority    int64
}
