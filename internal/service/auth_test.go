package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-task-tracker/internal/config"
	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
	"github.com/pribylovaa/go-task-tracker/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:    "unit-access-secret",
		RefreshSecret:   "unit-refresh-secret",
		AccessTokenTTL:  30 * time.Second,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "task-tracker",
		Audience:        []string{"task-tracker-api"},
		BcryptCost:      bcrypt.MinCost,
		RefreshHashCost: bcrypt.MinCost,
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, svc *Service, pw string) string {
	t.Helper()
	h, err := svc.hashPassword(pw)
	require.NoError(t, err)
	return h
}

// mustRefreshToken выпускает refresh-токен и его bcrypt-хэш для тестов ротации.
func mustRefreshToken(t *testing.T, svc *Service, userID uuid.UUID, email string, jti uuid.UUID) (string, string) {
	t.Helper()
	token, err := svc.generateRefreshToken(context.Background(), userID, email, jti, time.Now().UTC())
	require.NoError(t, err)
	hash, err := svc.hashRefreshToken(token)
	require.NoError(t, err)
	return token, hash
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "User@Example.com"
	norm := "user@example.com"
	pw := "Abcdef1!"

	var savedUser *models.User
	var savedEntry *models.TokenEntry

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			savedUser = u
			return nil
		})
	st.EXPECT().SaveTokenEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.TokenEntry) error {
			savedEntry = e
			return nil
		})

	tp, uid, err := svc.RegisterUser(ctx, email, pw, "Alice", "browser")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, uid)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), tp.AccessExpiresAt, 2*time.Second)

	// Email нормализуется, plaintext пароля не сохраняется.
	require.Equal(t, norm, savedUser.Email)
	require.NotEqual(t, pw, savedUser.PasswordHash)
	require.True(t, checkPassword(savedUser.PasswordHash, pw))
	require.Equal(t, models.RoleUser, savedUser.Role)

	// Сессия привязана к пользователю, хэш соответствует выданному токену.
	require.Equal(t, savedUser.ID, savedEntry.UserID)
	require.NotEqual(t, uuid.Nil, savedEntry.JTI)
	require.Equal(t, "browser", savedEntry.Device)
	require.NotEqual(t, tp.RefreshToken, savedEntry.TokenHash)
	require.True(t, compareRefreshToken(tp.RefreshToken, savedEntry.TokenHash))
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.RegisterUser(context.Background(), "not-an-email", "Abcdef1!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_WeakOrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.RegisterUser(context.Background(), "u@e.com", "", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)

	_, _, err = svc.RegisterUser(context.Background(), "u@e.com", "short", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)

	_, _, err = svc.RegisterUser(context.Background(), "u@e.com", "alllowercase1!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterUser_EmailTaken_FromConstraint(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Конфликт уникальности приходит только из SaveUser: пре-чека по email нет.
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)

	_, _, err := svc.RegisterUser(context.Background(), "user@example.com", "Abcdef1!", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUser_SaveUserOtherError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		Return(errors.New("insert failed"))

	_, _, err := svc.RegisterUser(context.Background(), "user@example.com", "Abcdef1!", "", "")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "user@example.com"
	pw := "Abcdef1!"
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: mustHashPW(t, svc, pw),
	}

	st.EXPECT().UserByEmail(gomock.Any(), email).Return(user, nil)
	st.EXPECT().SaveTokenEntry(gomock.Any(), gomock.Any()).Return(nil)

	tp, uid, err := svc.LoginUser(ctx, email, pw, "cli")
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
}

func TestLoginUser_InvalidEmail_OrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.LoginUser(context.Background(), "bad", "Abcdef1!", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginUser(context.Background(), "user@example.com", "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUser_UserNotFound_OrWrongPassword(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, storage.ErrNotFound)

	_, _, err := svc.LoginUser(context.Background(), "user@example.com", "Abcdef1!", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHashPW(t, svc, "Abcdef1!"),
	}
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)

	_, _, err = svc.LoginUser(context.Background(), "user@example.com", "Wrong1!pw", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokens_OK_RotatesSession(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}
	oldJTI := uuid.New()
	token, hash := mustRefreshToken(t, svc, user.ID, user.Email, oldJTI)

	entry := &models.TokenEntry{
		UserID:    user.ID,
		JTI:       oldJTI,
		TokenHash: hash,
		Device:    "browser",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}

	var replaced *models.TokenEntry

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	st.EXPECT().TokenEntryByJTI(gomock.Any(), user.ID, oldJTI).Return(entry, nil)
	st.EXPECT().ReplaceTokenEntry(gomock.Any(), user.ID, oldJTI, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, e *models.TokenEntry) error {
			replaced = e
			return nil
		})

	tp, uid, err := svc.RefreshTokens(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEqual(t, token, tp.RefreshToken)

	// Новая сессия: новый jti, хэш нового токена, метка устройства сохранена.
	require.NotEqual(t, oldJTI, replaced.JTI)
	require.True(t, compareRefreshToken(tp.RefreshToken, replaced.TokenHash))
	require.Equal(t, "browser", replaced.Device)
}

func TestRefreshTokens_GarbageToken_NoStateChange(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Ни одного вызова хранилища не ожидается.
	_, _, err := svc.RefreshTokens(context.Background(), "garbage.token.value")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokens_ExpiredToken_NoStateChange(t *testing.T) {
	t.Parallel()

	st := mocks.NewMockStorage(gomock.NewController(t))
	cfg := testCfg()
	cfg.RefreshTokenTTL = -time.Hour
	svc := New(st, cfg)

	token, _ := mustRefreshToken(t, svc, uuid.New(), "user@example.com", uuid.New())

	_, _, err := svc.RefreshTokens(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokens_UnknownJTI_WipesAllSessions(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}
	jti := uuid.New()
	token, _ := mustRefreshToken(t, svc, user.ID, user.Email, jti)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	st.EXPECT().TokenEntryByJTI(gomock.Any(), user.ID, jti).Return(nil, storage.ErrNotFound)
	st.EXPECT().ClearTokenEntries(gomock.Any(), user.ID).Return(nil)

	_, _, err := svc.RefreshTokens(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReuseDetected)
}

func TestRefreshTokens_HashMismatch_WipesAllSessions(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}
	jti := uuid.New()
	token, _ := mustRefreshToken(t, svc, user.ID, user.Email, jti)
	// В хранилище лежит хэш другого токена с тем же jti.
	_, otherHash := mustRefreshToken(t, svc, uuid.New(), "other@example.com", jti)

	entry := &models.TokenEntry{UserID: user.ID, JTI: jti, TokenHash: otherHash}

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	st.EXPECT().TokenEntryByJTI(gomock.Any(), user.ID, jti).Return(entry, nil)
	st.EXPECT().ClearTokenEntries(gomock.Any(), user.ID).Return(nil)

	_, _, err := svc.RefreshTokens(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReuseDetected)
}

func TestRefreshTokens_ConcurrentConsumption_WipesAllSessions(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}
	jti := uuid.New()
	token, hash := mustRefreshToken(t, svc, user.ID, user.Email, jti)
	entry := &models.TokenEntry{UserID: user.ID, JTI: jti, TokenHash: hash}

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	st.EXPECT().TokenEntryByJTI(gomock.Any(), user.ID, jti).Return(entry, nil)
	// Между чтением и заменой сессию потребила конкурентная ротация.
	st.EXPECT().ReplaceTokenEntry(gomock.Any(), user.ID, jti, gomock.Any()).
		Return(storage.ErrNotFound)
	st.EXPECT().ClearTokenEntries(gomock.Any(), user.ID).Return(nil)

	_, _, err := svc.RefreshTokens(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReuseDetected)
}

func TestRefreshTokens_WipeFailure_SurfacesStorageError(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "user@example.com"}
	jti := uuid.New()
	token, _ := mustRefreshToken(t, svc, user.ID, user.Email, jti)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	st.EXPECT().TokenEntryByJTI(gomock.Any(), user.ID, jti).Return(nil, storage.ErrNotFound)
	st.EXPECT().ClearTokenEntries(gomock.Any(), user.ID).Return(storage.ErrUnavailable)

	// Ремедиация не прошла — наружу уходит ошибка хранилища, а не ReuseDetected.
	_, _, err := svc.RefreshTokens(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrUnavailable)
	require.NotErrorIs(t, err, ErrReuseDetected)
}

// TestRefreshTokens_ReplayScenario прогоняет полный сценарий кражи:
// регистрация → ротация R1 → (A2, R2); повторная ротация R1 — детекция
// повторного использования и пустая коллекция; ротация валидного R2 после
// ремедиации тоже отклоняется.
func TestRefreshTokens_ReplayScenario(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	// Стейтфул-модель хранилища: коллекция сессий одного пользователя.
	var user models.User
	sessions := map[uuid.UUID]*models.TokenEntry{}

	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			user = *u
			return nil
		})
	st.EXPECT().UserByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.User, error) {
			if id != user.ID {
				return nil, storage.ErrNotFound
			}
			u := user
			return &u, nil
		}).AnyTimes()
	st.EXPECT().SaveTokenEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.TokenEntry) error {
			sessions[e.JTI] = e
			return nil
		}).AnyTimes()
	st.EXPECT().TokenEntryByJTI(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, jti uuid.UUID) (*models.TokenEntry, error) {
			e, ok := sessions[jti]
			if !ok {
				return nil, storage.ErrNotFound
			}
			return e, nil
		}).AnyTimes()
	st.EXPECT().ReplaceTokenEntry(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, oldJTI uuid.UUID, e *models.TokenEntry) error {
			if _, ok := sessions[oldJTI]; !ok {
				return storage.ErrNotFound
			}
			delete(sessions, oldJTI)
			sessions[e.JTI] = e
			return nil
		}).AnyTimes()
	st.EXPECT().ClearTokenEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) error {
			sessions = map[uuid.UUID]*models.TokenEntry{}
			return nil
		}).AnyTimes()

	// Регистрация: пара (A1, R1).
	pair1, _, err := svc.RegisterUser(ctx, "user@example.com", "Abcdef1!", "Alice", "browser")
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	// Легитимная ротация R1 → (A2, R2).
	pair2, _, err := svc.RefreshTokens(ctx, pair1.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair1.RefreshToken, pair2.RefreshToken)
	require.Len(t, sessions, 1)

	// Оба access-токена остаются валидными: добытый R1 их не отзывает.
	_, err = svc.Authenticate(ctx, pair1.AccessToken)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, pair2.AccessToken)
	require.NoError(t, err)

	// Replay R1: детекция, коллекция пуста.
	_, _, err = svc.RefreshTokens(ctx, pair1.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReuseDetected)
	require.Empty(t, sessions)

	// Даже "честный" R2 после ремедиации отклоняется: его сессия отозвана.
	_, _, err = svc.RefreshTokens(ctx, pair2.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrReuseDetected)
	require.Empty(t, sessions)
}

func TestRevokeToken_OK_AndIdempotent(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	userID := uuid.New()
	jti := uuid.New()
	token, _ := mustRefreshToken(t, svc, userID, "user@example.com", jti)

	// Повторный отзыв того же jti — такой же no-op, как первый.
	st.EXPECT().RemoveTokenEntry(gomock.Any(), userID, jti).Return(nil).Times(2)

	require.NoError(t, svc.RevokeToken(context.Background(), token))
	require.NoError(t, svc.RevokeToken(context.Background(), token))
}

func TestRevokeToken_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	err := svc.RevokeToken(context.Background(), "garbage")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}
