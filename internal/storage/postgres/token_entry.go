package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

// SaveTokenEntry добавляет новую refresh-сессию в коллекцию пользователя.
func (s *Storage) SaveTokenEntry(ctx context.Context, entry *models.TokenEntry) error {
	const op = "storage.postgres.SaveTokenEntry"

	query := `
        INSERT INTO refresh_tokens(user_id, jti, token_hash, device, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := s.db.Exec(ctx, query,
		entry.UserID,
		entry.JTI,
		entry.TokenHash,
		entry.Device,
		entry.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return wrapErr(op, err)
	}

	return nil
}

// TokenEntryByJTI находит refresh-сессию по (userID, jti).
func (s *Storage) TokenEntryByJTI(ctx context.Context, userID, jti uuid.UUID) (*models.TokenEntry, error) {
	const op = "storage.postgres.TokenEntryByJTI"

	query := `
        SELECT user_id, jti, token_hash, device, created_at
        FROM refresh_tokens
        WHERE user_id = $1 AND jti = $2
    `

	var entry models.TokenEntry
	err := s.db.QueryRow(ctx, query, userID, jti).Scan(
		&entry.UserID,
		&entry.JTI,
		&entry.TokenHash,
		&entry.Device,
		&entry.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, wrapErr(op, err)
	}

	return &entry, nil
}

// ReplaceTokenEntry атомарно заменяет сессию oldJTI на entry одним условным
// UPDATE, ключом которого служит пара (user_id, jti). Это точка сериализации
// ротации: из двух конкурентных вызовов с одним и тем же старым jti
// обновление выполнит ровно один; второй получит ErrNotFound.
func (s *Storage) ReplaceTokenEntry(ctx context.Context, userID, oldJTI uuid.UUID, entry *models.TokenEntry) error {
	const op = "storage.postgres.ReplaceTokenEntry"

	query := `
        UPDATE refresh_tokens
        SET jti = $3, token_hash = $4, device = $5, created_at = $6
        WHERE user_id = $1 AND jti = $2
    `

	cmdTag, err := s.db.Exec(ctx, query,
		userID,
		oldJTI,
		entry.JTI,
		entry.TokenHash,
		entry.Device,
		entry.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return wrapErr(op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RemoveTokenEntry удаляет одну сессию. Отсутствие jti ошибкой не считается.
func (s *Storage) RemoveTokenEntry(ctx context.Context, userID, jti uuid.UUID) error {
	const op = "storage.postgres.RemoveTokenEntry"

	query := `
        DELETE FROM refresh_tokens
        WHERE user_id = $1 AND jti = $2
    `

	if _, err := s.db.Exec(ctx, query, userID, jti); err != nil {
		return wrapErr(op, err)
	}

	return nil
}

// ClearTokenEntries удаляет все сессии пользователя.
func (s *Storage) ClearTokenEntries(ctx context.Context, userID uuid.UUID) error {
	const op = "storage.postgres.ClearTokenEntries"

	query := `
        DELETE FROM refresh_tokens
        WHERE user_id = $1
    `

	if _, err := s.db.Exec(ctx, query, userID); err != nil {
		return wrapErr(op, err)
	}

	return nil
}

// DeleteStaleTokenEntries удаляет сессии старше cutoff.
func (s *Storage) DeleteStaleTokenEntries(ctx context.Context, cutoff time.Time) error {
	const op = "storage.postgres.DeleteStaleTokenEntries"

	query := `
        DELETE FROM refresh_tokens
        WHERE created_at <= $1
    `

	if _, err := s.db.Exec(ctx, query, cutoff); err != nil {
		return wrapErr(op, err)
	}

	return nil
}
