package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	driver "gorm.io/driver/postgres"

	"github.com/roastline/beanbot/internal/domain/entity"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(driver.New(driver.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return gdb, mock
}

func TestUserStorageGet(t *testing.T) {
	gdb, mock := newMockDB(t)
	storage := NewUserStorage(gdb)

	rows := sqlmock.NewRows([]string{"id", "telegram_id", "full_name", "role", "locale", "is_banned"}).
		AddRow("u1", int64(42), "Ana Reyes", "farmer", "en", false)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(rows)

	user, err := storage.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.TelegramID)
	assert.Equal(t, entity.RoleFarmer, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorageGetNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	storage := NewUserStorage(gdb)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := storage.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserStorageGetByTelegramID(t *testing.T) {
	gdb, mock := newMockDB(t)
	storage := NewUserStorage(gdb)

	rows := sqlmock.NewRows([]string{"id", "telegram_id", "role", "is_banned"}).
		AddRow("u1", int64(42), "farmer", true)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE telegram_id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	user, err := storage.GetByTelegramID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.IsBanned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorageGetByRolesExcludesBanned(t *testing.T) {
	gdb, mock := newMockDB(t)
	storage := NewUserStorage(gdb)

	rows := sqlmock.NewRows([]string{"id", "telegram_id", "role", "is_banned"}).
		AddRow("r1", int64(10), "roaster", false).
		AddRow("c1", int64(20), "cafe", false)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE role IN \(\$1,\$2\) AND is_banned = false`).
		WithArgs("roaster", "cafe").
		WillReturnRows(rows)

	users, err := storage.GetByRoles(context.Background(), entity.RoleRoaster, entity.RoleCafe)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, entity.RoleRoaster, users[0].Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorageRoleHitsDatabase(t *testing.T) {
	gdb, mock := newMockDB(t)
	storage := NewUserStorage(gdb)

	// Each call issues its own query, the role is never cached.
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`SELECT "role" FROM "users" WHERE id = \$1`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))
	}

	for i := 0; i < 2; i++ {
		role, err := storage.Role(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, role)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
