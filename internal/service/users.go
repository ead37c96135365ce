package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

// UpdateProfileParams — частичное обновление профиля: nil-поле не трогается.
type UpdateProfileParams struct {
	Name     *string
	Email    *string
	Password *string
}

// UserByID возвращает профиль пользователя.
// Доступ: сам пользователь или администратор.
func (s *Service) UserByID(ctx context.Context, actorID, targetID uuid.UUID) (*models.User, error) {
	const op = "service.users.UserByID"

	if err := s.authorizeSelfOrAdmin(ctx, actorID, targetID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UpdateProfile обновляет имя, email и/или пароль пользователя.
// Смена email на занятый возвращает ErrEmailTaken (ограничение БД, без пре-чека).
func (s *Service) UpdateProfile(ctx context.Context, actorID, targetID uuid.UUID, params UpdateProfileParams) (*models.User, error) {
	const op = "service.users.UpdateProfile"

	if err := s.authorizeSelfOrAdmin(ctx, actorID, targetID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if params.Name != nil {
		user.Name = strings.TrimSpace(*params.Name)
	}

	if params.Email != nil {
		normEmail, err := validateEmail(*params.Email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
		}

		user.Email = normEmail
	}

	if params.Password != nil {
		if err := validatePassword(*params.Password); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		hash, err := s.hashPassword(*params.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		user.PasswordHash = hash
	}

	if err := s.storage.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	log.From(ctx).Info("profile_updated",
		slog.String("op", op),
		slog.String("user_id", targetID.String()),
	)

	return user, nil
}

// DeleteUser удаляет аккаунт вместе со всеми задачами и сессиями
// (каскад на стороне БД).
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	const op = "service.users.DeleteUser"

	if err := s.authorizeSelfOrAdmin(ctx, actorID, targetID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteUser(ctx, targetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_deleted",
		slog.String("op", op),
		slog.String("user_id", targetID.String()),
	)

	return nil
}

// authorizeSelfOrAdmin пропускает владельца ресурса либо администратора.
// Роль актора поднимается из хранилища, а не из токена: понижение в правах
// действует немедленно, не дожидаясь истечения access-токена.
func (s *Service) authorizeSelfOrAdmin(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return nil
	}

	actor, err := s.storage.UserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPermissionDenied
		}

		return err
	}

	if actor.Role != models.RoleAdmin {
		return ErrPermissionDenied
	}

	return nil
}
