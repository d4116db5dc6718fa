package saga

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

type Execution struct {
	ID        string
	SagaType  string
	TenantID  int64
	Status    string
	Error     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StepRecord struct {
	ExecutionID string
	Ordinal     int
	Name        string
	Status      string
	Error       *string
}

type Store interface {
	EnsureTables(ctx context.Context) error
	CreateExecution(ctx context.Context, e *Execution) error
	UpdateExecutionStatus(ctx context.Context, id, status string, errMsg *string) error
	CreateStep(ctx context.Context, s *StepRecord) error
	UpdateStepStatus(ctx context.Context, executionID string, ordinal int, status string, errMsg *string) error
	FindExecution(ctx context.Context, tenantID int64, id string) (*Execution, []StepRecord, error)
}

// sqlStore persists saga bookkeeping outside the business transactions,
// so a crash mid-saga leaves the executed/pending split visible. Tables
// are created lazily on first use, not by the migration runner.
type sqlStore struct {
	db   *gorm.DB
	once sync.Once
	err  error
}

func NewStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) EnsureTables(ctx context.Context) error {
	s.once.Do(func() {
		s.err = s.db.WithContext(ctx).Exec(`
			CREATE TABLE IF NOT EXISTS saga_executions (
				id         UUID PRIMARY KEY,
				saga_type  VARCHAR(60) NOT NULL,
				tenant_id  BIGINT NOT NULL,
				status     VARCHAR(20) NOT NULL,
				error      TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`).Error
		if s.err != nil {
			return
		}
		s.err = s.db.WithContext(ctx).Exec(`
			CREATE TABLE IF NOT EXISTS saga_steps (
				id           BIGSERIAL PRIMARY KEY,
				execution_id UUID NOT NULL REFERENCES saga_executions(id) ON DELETE CASCADE,
				ordinal      INTEGER NOT NULL,
				name         VARCHAR(80) NOT NULL,
				status       VARCHAR(20) NOT NULL,
				error        TEXT,
				updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT uq_saga_step UNIQUE (execution_id, ordinal)
			)`).Error
	})
	return s.err
}

func (s *sqlStore) CreateExecution(ctx context.Context, e *Execution) error {
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO saga_executions (id, saga_type, tenant_id, status) VALUES (?, ?, ?, ?)`,
		e.ID, e.SagaType, e.TenantID, e.Status,
	).Error
}

func (s *sqlStore) UpdateExecutionStatus(ctx context.Context, id, status string, errMsg *string) error {
	return s.db.WithContext(ctx).Exec(
		`UPDATE saga_executions SET status = ?, error = ?, updated_at = NOW() WHERE id = ?`,
		status, errMsg, id,
	).Error
}

func (s *sqlStore) CreateStep(ctx context.Context, rec *StepRecord) error {
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO saga_steps (execution_id, ordinal, name, status) VALUES (?, ?, ?, ?)`,
		rec.ExecutionID, rec.Ordinal, rec.Name, rec.Status,
	).Error
}

func (s *sqlStore) UpdateStepStatus(ctx context.Context, executionID string, ordinal int, status string, errMsg *string) error {
	return s.db.WithContext(ctx).Exec(
		`UPDATE saga_steps SET status = ?, error = ?, updated_at = NOW() WHERE execution_id = ? AND ordinal = ?`,
		status, errMsg, executionID, ordinal,
	).Error
}

func (s *sqlStore) FindExecution(ctx context.Context, tenantID int64, id string) (*Execution, []StepRecord, error) {
	var exec Execution
	err := s.db.WithContext(ctx).
		Raw(`SELECT id, saga_type, tenant_id, status, error, created_at, updated_at
		     FROM saga_executions WHERE id = ? AND tenant_id = ?`, id, tenantID).
		Scan(&exec).Error
	if err != nil {
		return nil, nil, err
	}
	if exec.ID == "" {
		return nil, nil, gorm.ErrRecordNotFound
	}

	var steps []StepRecord
	err = s.db.WithContext(ctx).
		Raw(`SELECT execution_id, ordinal, name, status, error
		     FROM saga_steps WHERE execution_id = ? ORDER BY ordinal`, id).
		Scan(&steps).Error
	if err != nil {
		return nil, nil, err
	}
	return &exec, steps, nil
}
