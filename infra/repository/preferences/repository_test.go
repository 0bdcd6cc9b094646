package preferences

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	repo "github.com/amirasaad/fxcalc/pkg/repository/preferences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	rows := sqlmock.NewRows([]string{"session_id", "codes", "base_code"}).
		AddRow("sess-1", "USD,EUR,KRW", "USD")
	mock.ExpectQuery(`SELECT \* FROM "layout_preferences" WHERE session_id = (.+) ORDER BY (.+) LIMIT (.+)`).
		WithArgs("sess-1", 1).
		WillReturnRows(rows)

	layout, err := r.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, layout)
	assert.Equal(t, []string{"USD", "EUR", "KRW"}, layout.Codes)
	assert.Equal(t, "USD", layout.BaseCode)
}

func TestRepository_GetMissingReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT \* FROM "layout_preferences"`).
		WithArgs("absent", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	layout, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, layout)
}

func TestRepository_SaveUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)

	mock.ExpectExec(`INSERT INTO "layout_preferences" (.+) ON CONFLICT (.+) DO UPDATE SET (.+)`).
		WithArgs("sess-1", "USD,EUR", "EUR", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.Save(context.Background(), repo.Layout{
		SessionID: "sess-1",
		Codes:     []string{"USD", "EUR"},
		BaseCode:  "EUR",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	layout, err := m.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, layout)

	saved := repo.Layout{SessionID: "s", Codes: []string{"USD", "JPY"}, BaseCode: "JPY"}
	require.NoError(t, m.Save(ctx, saved))

	layout, err = m.Get(ctx, "s")
	require.NoError(t, err)
	require.NotNil(t, layout)
	assert.Equal(t, saved.Codes, layout.Codes)
	assert.Equal(t, "JPY", layout.BaseCode)

	// Mutating the returned copy must not corrupt the stored layout.
	layout.Codes[0] = "XXX"
	again, err := m.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "USD", again.Codes[0])
}
