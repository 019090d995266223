package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/go-calc-service/internal/models"
	"github.com/pribylovaa/go-calc-service/internal/storage"
)

// Файл интеграционных тестов для пакета postgres (репозиторий user.go):
// - поднимает реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// - миграции применяет сам New (embedded goose);
// - проверяет happy-path (создание и поиск по username/email/ID), уникальность
//   (username, email CITEXT) и сценарии отсутствия записей (storage.ErrNotFound).
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// startPostgres — поднимает временный экземпляр PostgreSQL через testcontainers-go
// и возвращает инициализированное хранилище и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func newTestUser(username, email string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TestIntegration_SaveUser_And_Lookups_OK — happy-path:
// сохранение пользователя и последующий поиск по username, email и ID.
func TestIntegration_SaveUser_And_Lookups_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := newTestUser("alice", "alice@example.com")

	require.NoError(t, st.SaveUser(ctx, u))

	byUsername, err := st.UserByIdentifier(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)
	require.WithinDuration(t, u.CreatedAt, byUsername.CreatedAt, time.Second)

	byEmail, err := st.UserByIdentifier(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)
}

// TestIntegration_UserByIdentifier_EmailCaseInsensitive — email хранится в CITEXT:
// поиск нечувствителен к регистру.
func TestIntegration_UserByIdentifier_EmailCaseInsensitive(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := newTestUser("bob", "bob@example.com")
	require.NoError(t, st.SaveUser(ctx, u))

	got, err := st.UserByIdentifier(ctx, "BOB@EXAMPLE.COM")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

// TestIntegration_SaveUser_DuplicateUsername — конфликт уникальности по username,
// ожидаем storage.ErrAlreadyExists.
func TestIntegration_SaveUser_DuplicateUsername(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.SaveUser(ctx, newTestUser("carol", "carol@example.com")))

	err := st.SaveUser(ctx, newTestUser("carol", "other@example.com"))
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_SaveUser_DuplicateEmail_CaseInsensitive — конфликт уникальности
// по email при различии только в регистре (CITEXT).
func TestIntegration_SaveUser_DuplicateEmail_CaseInsensitive(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.SaveUser(ctx, newTestUser("dave", "dave@example.com")))

	err := st.SaveUser(ctx, newTestUser("dave2", "DAVE@EXAMPLE.COM"))
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_UserLookups_NotFound — поиск отсутствующих записей,
// ожидаем storage.ErrNotFound.
func TestIntegration_UserLookups_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	_, err := st.UserByIdentifier(ctx, "ghost")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.UserByID(ctx, uuid.New())
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_UserQueries_ContextCanceled — отменённый контекст «просачивается»
// в ошибки чтения как context.Canceled.
func TestIntegration_UserQueries_ContextCanceled(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.UserByIdentifier(ctx, "alice")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)

	_, err = st.UserByID(ctx, uuid.New())
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
