package accounting

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

// Postgres rejects FOR UPDATE on aggregates, so the allocation must lock
// the tenant's highest row via an ordered single-row select.
const numeroQuery = `SELECT numero FROM lancamento_contabil WHERE admin_id = $1 ORDER BY numero DESC LIMIT 1 FOR UPDATE`

func balancedEntry(adminID int64) *LancamentoContabil {
	return &LancamentoContabil{
		Data:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Historico:  "Pagamento NF 3",
		ValorTotal: decimal.NewFromInt(100),
		Origem:     OrigemNotaPaga,
		OrigemID:   3,
		AdminID:    adminID,
		Partidas: []PartidaContabil{
			{ContaCodigo: ContaDespesasAdmin, Tipo: LadoDebito, Valor: decimal.NewFromInt(100)},
			{ContaCodigo: ContaBancos, Tipo: LadoCredito, Valor: decimal.NewFromInt(100)},
		},
	}
}

func TestCreateBalanced_AllocatesNextNumeroUnderRowLock(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(numeroQuery)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"numero"}).AddRow(int64(41)))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "lancamento_contabil"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO "partida_contabil"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	entry := balancedEntry(9)
	require.NoError(t, repo.CreateBalanced(context.Background(), entry))

	assert.Equal(t, int64(42), entry.Numero)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBalanced_FirstEntryStartsAtOne(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(regexp.QuoteMeta(numeroQuery)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"numero"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "lancamento_contabil"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO "partida_contabil"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	entry := balancedEntry(9)
	require.NoError(t, repo.CreateBalanced(context.Background(), entry))

	assert.Equal(t, int64(1), entry.Numero)
	assert.NoError(t, mock.ExpectationsWereMet())
}
