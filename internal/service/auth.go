package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-task-tracker/internal/pkg/redact"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

// RegisterUser регистрирует нового пользователя и выпускает первую пару токенов.
// Уникальность email обеспечивается только ограничением БД: пре-чека нет,
// из двух конкурентных регистраций одного email выигрывает ровно одна.
func (s *Service) RegisterUser(ctx context.Context, email, password, name, device string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(password); err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(name),
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return s.issueTokens(ctx, user, device)
}

// LoginUser выполняет вход по email+пароль и выпускает новую пару токенов.
// Новая сессия добавляется к существующим: логин с другого устройства
// не отзывает чужие refresh-токены.
func (s *Service) LoginUser(ctx context.Context, email, password, device string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.LoginUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.issueTokens(ctx, user, device)
}

// RefreshTokens обменивает валидный refresh-токен на новую пару, атомарно
// потребляя предъявленную сессию.
//
// Протокол ротации:
//  1. проверка подписи/срока refresh-секретом — при провале терминальный
//     ErrInvalidRefreshToken без изменения состояния;
//  2. подъём пользователя из claims.sub — его отсутствие неотличимо от
//     подделки, тоже ErrInvalidRefreshToken;
//  3. поиск сессии по (userID, jti): отсутствие записи или несовпадение
//     bcrypt-хэша — сигнал повторного использования/кражи: все сессии
//     пользователя отзываются, возвращается ErrReuseDetected;
//  4. условная замена записи одним запросом (ReplaceTokenEntry); проигравший
//     конкурентную ротацию того же токена наблюдает запись уже потреблённой
//     и проходит ту же ремедиацию, что и в п.3.
//
// Ремедиация (полный отзыв) выполняется до возврата ошибки и не зависит от
// дальнейшей судьбы запроса.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.RefreshTokens"

	lg := log.From(ctx)

	claims, err := s.validateRefreshToken(refreshToken)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	entry, err := s.storage.TokenEntryByJTI(ctx, user.ID, claims.JTI)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Предъявлен уже ротированный (или никогда не существовавший) jti.
			return nil, uuid.Nil, s.revokeAllSessions(ctx, op, user.ID, "jti_not_found")
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !compareRefreshToken(refreshToken, entry.TokenHash) {
		// jti легитимен, но тело токена не совпало с сохранённым хэшем.
		return nil, uuid.Nil, s.revokeAllSessions(ctx, op, user.ID, "hash_mismatch")
	}

	now := time.Now().UTC()
	newJTI := uuid.New()

	newRefresh, err := s.generateRefreshToken(ctx, user.ID, user.Email, newJTI, now)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	newHash, err := s.hashRefreshToken(newRefresh)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	newEntry := &models.TokenEntry{
		UserID:    user.ID,
		JTI:       newJTI,
		TokenHash: newHash,
		Device:    entry.Device,
		CreatedAt: now,
	}

	if err := s.storage.ReplaceTokenEntry(ctx, user.ID, claims.JTI, newEntry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Сессию успела потребить конкурентная ротация того же токена.
			return nil, uuid.Nil, s.revokeAllSessions(ctx, op, user.ID, "concurrent_rotation")
		}

		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	accessToken, err := s.generateAccessToken(ctx, user.ID, user.Email, now)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("refresh_rotated",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
	)

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    newRefresh,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, user.ID, nil
}

// RevokeToken отзывает одну сессию (logout с устройства) по refresh-токену.
// Идемпотентен: повторный отзыв или отзыв уже ротированного jti — no-op.
func (s *Service) RevokeToken(ctx context.Context, refreshToken string) error {
	const op = "service.auth.RevokeToken"

	claims, err := s.validateRefreshToken(refreshToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.RemoveTokenEntry(ctx, claims.UserID, claims.JTI); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("session_revoked",
		slog.String("op", op),
		slog.String("user_id", claims.UserID.String()),
	)

	return nil
}

// Authenticate проверяет access-токен и возвращает его claims.
// Без похода в хранилище: access-токены индивидуально не отзываются.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*models.Claims, error) {
	const op = "service.auth.Authenticate"

	claims, err := s.validateAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return claims, nil
}

// issueTokens выпускает пару access+refresh и сохраняет новую сессию.
// Единственное место, где plaintext обоих токенов существует вне клиента.
func (s *Service) issueTokens(ctx context.Context, user *models.User, device string) (*models.TokenPair, uuid.UUID, error) {
	const op = "service.auth.issueTokens"

	now := time.Now().UTC()

	accessToken, err := s.generateAccessToken(ctx, user.ID, user.Email, now)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	jti := uuid.New()
	refreshToken, err := s.generateRefreshToken(ctx, user.ID, user.Email, jti, now)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hashRefreshToken(refreshToken)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	entry := &models.TokenEntry{
		UserID:    user.ID,
		JTI:       jti,
		TokenHash: hash,
		Device:    strings.TrimSpace(device),
		CreatedAt: now,
	}

	if err := s.storage.SaveTokenEntry(ctx, entry); err != nil {
		return nil, uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, user.ID, nil
}

// revokeAllSessions — ремедиация при обнаружении повторного использования:
// отзывает все сессии пользователя и возвращает ErrReuseDetected.
// Если отзыв не удался (хранилище недоступно), наружу уходит ошибка
// хранилища: подтверждать ремедиацию, которой не было, нельзя.
func (s *Service) revokeAllSessions(ctx context.Context, op string, userID uuid.UUID, reason string) error {
	log.From(ctx).Warn("refresh_reuse_detected",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("reason", reason),
	)

	if err := s.storage.ClearTokenEntries(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w", op, ErrReuseDetected)
}

// hashPassword хэширует пароль с помощью bcrypt.
func (s *Service) hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
