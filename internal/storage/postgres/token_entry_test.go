package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/storage"
)

func newTestEntry(userID uuid.UUID) *models.TokenEntry {
	return &models.TokenEntry{
		UserID:    userID,
		JTI:       uuid.New(),
		TokenHash: "hash-" + uuid.NewString(),
		Device:    "browser",
		CreatedAt: time.Now().UTC(),
	}
}

func TestIntegration_TokenEntry_SaveAndLookup(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := newTestUser("user@example.com")
	require.NoError(t, st.SaveUser(context.Background(), u))

	entry := newTestEntry(u.ID)
	require.NoError(t, st.SaveTokenEntry(context.Background(), entry))

	got, err := st.TokenEntryByJTI(context.Background(), u.ID, entry.JTI)
	require.NoError(t, err)
	require.Equal(t, entry.TokenHash, got.TokenHash)
	require.Equal(t, entry.Device, got.Device)

	// Дубликат (user_id, jti) — конфликт первичного ключа.
	err = st.SaveTokenEntry(context.Background(), entry)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_ReplaceTokenEntry_ConsumesOldJTI(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := newTestUser("user@example.com")
	require.NoError(t, st.SaveUser(context.Background(), u))

	old := newTestEntry(u.ID)
	require.NoError(t, st.SaveTokenEntry(context.Background(), old))

	next := newTestEntry(u.ID)
	require.NoError(t, st.ReplaceTokenEntry(context.Background(), u.ID, old.JTI, next))

	// Старый jti потреблён, новый доступен.
	_, err := st.TokenEntryByJTI(context.Background(), u.ID, old.JTI)
	require.ErrorIs(t, err, storage.ErrNotFound)

	got, err := st.TokenEntryByJTI(context.Background(), u.ID, next.JTI)
	require.NoError(t, err)
	require.Equal(t, next.TokenHash, got.TokenHash)

	// Повторная замена уже потреблённого jti — ErrNotFound, состояние не меняется.
	err = st.ReplaceTokenEntry(context.Background(), u.ID, old.JTI, newTestEntry(u.ID))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Конкурентные ротации одного jti: ровно одна выигрывает, остальные
// наблюдают ErrNotFound.
func TestIntegration_ReplaceTokenEntry_Concurrent_OneWinner(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := newTestUser("user@example.com")
	require.NoError(t, st.SaveUser(context.Background(), u))

	old := newTestEntry(u.ID)
	require.NoError(t, st.SaveTokenEntry(context.Background(), old))

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = st.ReplaceTokenEntry(context.Background(), u.ID, old.JTI, newTestEntry(u.ID))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, storage.ErrNotFound)
		}
	}
	require.Equal(t, 1, winners)
}

func TestIntegration_RemoveTokenEntry_Idempotent(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := newTestUser("user@example.com")
	require.NoError(t, st.SaveUser(context.Background(), u))

	entry := newTestEntry(u.ID)
	require.NoError(t, st.SaveTokenEntry(context.Background(), entry))

	require.NoError(t, st.RemoveTokenEntry(context.Background(), u.ID, entry.JTI))
	// Повторное удаление — no-op без ошибки.
	require.NoError(t, st.RemoveTokenEntry(context.Background(), u.ID, entry.JTI))
}

func TestIntegration_ClearTokenEntries_WipesWholeCollection(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := newTestUser("user@example.com")
	other := newTestUser("other@example.com")
	require.NoError(t, st.SaveUser(context.Background(), u))
	require.NoError(t, st.SaveUser(context.Background(), other))

	entries := []*models.TokenEntry{newTestEntry(u.ID), newTestEntry(u.ID), newTestEntry(u.ID)}
	for _, e := range entries {
		require.NoError(t, st.SaveTokenEntry(context.Background(), e))
	}
	foreign := newTestEntry(other.ID)
	require.NoError(t, st.SaveTokenEntry(context.Background(), foreign))

	require.NoError(t, st.ClearTokenEntries(context.Background(), u.ID))

	for _, e := range entries {
		_, err := st.TokenEntryByJTI(context.Background(), u.ID, e.JTI)
		require.ErrorIs(t, err, storage.ErrNotFound)
	}

	// Чужие сессии не затронуты.
	_, err := st.TokenEntryByJTI(context.Background(), other.ID, foreign.JTI)
	require.NoError(t, err)
}

func TestIntegration_DeleteStaleTokenEntries(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := newTestUser("user@example.com")
	require.NoError(t, st.SaveUser(context.Background(), u))

	stale := newTestEntry(u.ID)
	stale.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	fresh := newTestEntry(u.ID)

	require.NoError(t, st.SaveTokenEntry(context.Background(), stale))
	require.NoError(t, st.SaveTokenEntry(context.Background(), fresh))

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, st.DeleteStaleTokenEntries(context.Background(), cutoff))

	_, err := st.TokenEntryByJTI(context.Background(), u.ID, stale.JTI)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.TokenEntryByJTI(context.Background(), u.ID, fresh.JTI)
	require.NoError(t, err)
}
