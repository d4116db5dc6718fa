package accounting

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sige/internal/shared/apperror"
	"sige/internal/tenant"
)

var ErrDuplicateOrigin = apperror.New(
	apperror.CodeConflict,
	"This fact was already posted for the tenant",
	http.StatusConflict,
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// CreateBalanced validates the lines, allocates the next per-tenant
	// numero under lock and persists header plus lines atomically. Must
	// run inside a transaction.
	CreateBalanced(ctx context.Context, entry *LancamentoContabil) error
	ExistsByOrigin(ctx context.Context, adminID int64, origem string, origemID int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBalanced(ctx context.Context, entry *LancamentoContabil) error {
	if err := ValidateBalanced(entry.Partidas); err != nil {
		return err
	}

	scoped, err := tenant.Scoped(r.db.WithContext(ctx), entry.AdminID)
	if err != nil {
		return err
	}

	numero, err := r.nextNumero(ctx, entry.AdminID)
	if err != nil {
		return err
	}
	entry.Numero = numero

	for i := range entry.Partidas {
		entry.Partidas[i].Sequencia = i + 1
		entry.Partidas[i].AdminID = entry.AdminID
	}

	if err := scoped.Create(entry).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateOrigin
		}
		return err
	}
	return nil
}

// nextNumero serializes concurrent allocations per tenant by locking the
// tenant's highest header row until the surrounding tx commits. Postgres
// rejects locking clauses combined with aggregates, so the max comes
// from an ordered single-row select.
func (r *repository) nextNumero(ctx context.Context, adminID int64) (int64, error) {
	var current *int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT numero FROM lancamento_contabil WHERE admin_id = ? ORDER BY numero DESC LIMIT 1 FOR UPDATE`, adminID).
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 1, nil
	}
	return *current + 1, nil
}

func (r *repository) ExistsByOrigin(ctx context.Context, adminID int64, origem string, origemID int64) (bool, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return false, err
	}

	var count int64
	err = scoped.Model(&LancamentoContabil{}).
		Where("origem = ? AND origem_id = ?", origem, origemID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
