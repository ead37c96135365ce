package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

// SaveTask создает новую задачу.
func (s *Storage) SaveTask(ctx context.Context, task *models.Task) error {
	const op = "storage.postgres.SaveTask"

	query := `
        INSERT INTO tasks(id, title, description, status, priority, due_date, user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	_, err := s.db.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return wrapErr(op, err)
	}

	return nil
}

// TaskByID находит задачу по ID.
func (s *Storage) TaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	const op = "storage.postgres.TaskByID"

	query := `
        SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
        FROM tasks
        WHERE id = $1
    `

	var task models.Task
	err := s.db.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, wrapErr(op, err)
	}

	return &task, nil
}

// ListTasks возвращает страницу задач по фильтру и общее количество записей,
// подпадающих под фильтр (для пагинации на клиенте).
func (s *Storage) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, int64, error) {
	const op = "storage.postgres.ListTasks"

	var (
		conds []string
		args  []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conds = append(conds, "priority = $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr(op, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	offsetArg := len(args) + 1
	limitArg := len(args) + 2
	args = append(args, (page-1)*limit, limit)

	query := `
        SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
        FROM tasks` + where + `
        ORDER BY created_at DESC, id
        OFFSET $` + strconv.Itoa(offsetArg) + ` LIMIT $` + strconv.Itoa(limitArg)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr(op, err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.DueDate,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, 0, wrapErr(op, err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr(op, err)
	}

	return tasks, total, nil
}

// UpdateTask обновляет задачу.
func (s *Storage) UpdateTask(ctx context.Context, task *models.Task) error {
	const op = "storage.postgres.UpdateTask"

	query := `
        UPDATE tasks
        SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7
        WHERE id = $1
    `

	cmdTag, err := s.db.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.UpdatedAt,
	)

	if err != nil {
		return wrapErr(op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteTask удаляет задачу.
func (s *Storage) DeleteTask(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteTask"

	query := `
        DELETE FROM tasks
        WHERE id = $1
    `

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return wrapErr(op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// TaskStats считает агрегаты одним запросом.
func (s *Storage) TaskStats(ctx context.Context) (*models.TaskStats, error) {
	const op = "storage.postgres.TaskStats"

	query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'COMPLETED'),
            COUNT(*) FILTER (WHERE status = 'IN_PROGRESS'),
            COUNT(*) FILTER (WHERE status = 'PENDING'),
            COUNT(*) FILTER (WHERE status = 'OVERDUE'),
            COUNT(*) FILTER (WHERE priority = 'HIGH'),
            COUNT(*) FILTER (WHERE priority = 'MEDIUM'),
            COUNT(*) FILTER (WHERE priority = 'LOW')
        FROM tasks
    `

	var stats models.TaskStats
	err := s.db.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Completed,
		&stats.InProgress,
		&stats.Pending,
		&stats.Overdue,
		&stats.HighPriority,
		&stats.MediumPriority,
		&stats.LowPriority,
	)

	if err != nil {
		return nil, wrapErr(op, err)
	}

	return &stats, nil
}

// MarkOverdueTasks одним условным UPDATE переводит просроченные PENDING-задачи
// в OVERDUE и возвращает их идентификаторы. Конкурентные обходы не могут
// обработать одну задачу дважды: строку забирает тот, чей UPDATE выполнился.
func (s *Storage) MarkOverdueTasks(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	const op = "storage.postgres.MarkOverdueTasks"

	query := `
        UPDATE tasks
        SET status = 'OVERDUE', updated_at = $1
        WHERE status = 'PENDING' AND due_date IS NOT NULL AND due_date < $1
        RETURNING id
    `

	rows, err := s.db.Query(ctx, query, now)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(op, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return ids, nil
}
