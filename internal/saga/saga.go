package saga

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Execution statuses.
const (
	StatusStarted      = "STARTED"
	StatusCompleted    = "COMPLETED"
	StatusCompensating = "COMPENSATING"
	StatusCompensated  = "COMPENSATED"
	StatusFailed       = "FAILED"
)

// Step statuses.
const (
	StepPending     = "PENDING"
	StepExecuted    = "EXECUTED"
	StepCompensated = "COMPENSATED"
	StepFailed      = "FAILED"
)

// StepFunc runs one forward step inside its own transaction. The result
// is handed back to the step's compensation on rollback.
type StepFunc func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error)

// CompensateFunc undoes a previously executed step. It runs in its own
// transaction because the forward effect already committed.
type CompensateFunc func(ctx context.Context, tx *gorm.DB, data map[string]any, result any) error

type step struct {
	name       string
	exec       StepFunc
	compensate CompensateFunc
	status     string
	result     any
	errMsg     string
}

// Saga executes steps in order, each committed separately so a crash
// leaves the progress observable in saga_steps. On a step failure the
// executed steps are compensated LIFO; a failing compensation is logged
// and the remaining ones still run.
type Saga struct {
	ID       string
	Type     string
	TenantID int64

	db     *gorm.DB
	store  Store
	logger *zap.Logger
	data   map[string]any
	steps  []*step
	status string
}

func New(db *gorm.DB, store Store, logger *zap.Logger, sagaType string, tenantID int64, data map[string]any) *Saga {
	if data == nil {
		data = make(map[string]any)
	}
	return &Saga{
		ID:       uuid.New().String(),
		Type:     sagaType,
		TenantID: tenantID,
		db:       db,
		store:    store,
		logger:   logger.Named("saga." + sagaType),
		data:     data,
		status:   StatusStarted,
	}
}

func (s *Saga) AddStep(name string, exec StepFunc, compensate CompensateFunc) *Saga {
	s.steps = append(s.steps, &step{
		name:       name,
		exec:       exec,
		compensate: compensate,
		status:     StepPending,
	})
	return s
}

// Execute runs the saga to completion. Returns true when every step
// executed; false means the saga was rolled back.
func (s *Saga) Execute(ctx context.Context) bool {
	if err := s.store.EnsureTables(ctx); err != nil {
		s.logger.Error("saga tables unavailable", zap.Error(err))
		s.status = StatusFailed
		return false
	}

	if err := s.store.CreateExecution(ctx, &Execution{
		ID:       s.ID,
		SagaType: s.Type,
		TenantID: s.TenantID,
		Status:   StatusStarted,
	}); err != nil {
		s.logger.Error("saga execution insert failed", zap.Error(err))
		s.status = StatusFailed
		return false
	}
	for i, st := range s.steps {
		if err := s.store.CreateStep(ctx, &StepRecord{
			ExecutionID: s.ID,
			Ordinal:     i + 1,
			Name:        st.name,
			Status:      StepPending,
		}); err != nil {
			s.logger.Error("saga step insert failed", zap.Error(err))
			s.status = StatusFailed
			return false
		}
	}

	for i, st := range s.steps {
		err := s.transact(ctx, func(tx *gorm.DB) error {
			result, err := st.exec(ctx, tx, s.data)
			if err != nil {
				return err
			}
			st.result = result
			return nil
		})
		if err != nil {
			st.status = StepFailed
			st.errMsg = err.Error()
			s.markStep(ctx, i+1, StepFailed, err)
			s.logger.Warn("saga step failed, compensating",
				zap.String("saga_id", s.ID),
				zap.String("step", st.name),
				zap.Error(err),
			)
			s.rollback(ctx, i-1, err)
			return false
		}

		st.status = StepExecuted
		s.markStep(ctx, i+1, StepExecuted, nil)
	}

	s.status = StatusCompleted
	s.markExecution(ctx, StatusCompleted, nil)
	s.logger.Info("saga completed", zap.String("saga_id", s.ID))
	return true
}

// rollback compensates steps [0..last] in reverse order.
func (s *Saga) rollback(ctx context.Context, last int, cause error) {
	s.status = StatusCompensating
	s.markExecution(ctx, StatusCompensating, cause)

	for i := last; i >= 0; i-- {
		st := s.steps[i]
		if st.compensate == nil {
			st.status = StepCompensated
			s.markStep(ctx, i+1, StepCompensated, nil)
			continue
		}

		err := s.transact(ctx, func(tx *gorm.DB) error {
			return st.compensate(ctx, tx, s.data, st.result)
		})
		if err != nil {
			st.status = StepFailed
			st.errMsg = err.Error()
			s.markStep(ctx, i+1, StepFailed, err)
			s.logger.Error("saga compensation failed, continuing",
				zap.String("saga_id", s.ID),
				zap.String("step", st.name),
				zap.Error(err),
			)
			continue
		}

		st.status = StepCompensated
		s.markStep(ctx, i+1, StepCompensated, nil)
	}

	// the saga always ends COMPENSATED; individual compensation
	// failures stay recorded on their step rows
	s.status = StatusCompensated
	s.markExecution(ctx, StatusCompensated, cause)
}

func (s *Saga) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Saga) markStep(ctx context.Context, ordinal int, status string, cause error) {
	if err := s.store.UpdateStepStatus(ctx, s.ID, ordinal, status, errMsg(cause)); err != nil {
		s.logger.Error("saga step update failed", zap.Int("ordinal", ordinal), zap.Error(err))
	}
}

func (s *Saga) markExecution(ctx context.Context, status string, cause error) {
	if err := s.store.UpdateExecutionStatus(ctx, s.ID, status, errMsg(cause)); err != nil {
		s.logger.Error("saga execution update failed", zap.Error(err))
	}
}

func errMsg(err error) *string {
	if err == nil {
		return nil
	}
	msg := err.Error()
	return &msg
}

// StatusReport is the in-memory view of the saga after Execute.
type StatusReport struct {
	ID       string       `json:"id"`
	Type     string       `json:"tipo"`
	TenantID int64        `json:"tenant_id"`
	Status   string       `json:"status"`
	Steps    []StepStatus `json:"passos"`
}

type StepStatus struct {
	Name   string `json:"nome"`
	Status string `json:"status"`
	Error  string `json:"erro,omitempty"`
}

func (s *Saga) Status() StatusReport {
	report := StatusReport{
		ID:       s.ID,
		Type:     s.Type,
		TenantID: s.TenantID,
		Status:   s.status,
	}
	for _, st := range s.steps {
		report.Steps = append(report.Steps, StepStatus{
			Name:   st.name,
			Status: st.status,
			Error:  st.errMsg,
		})
	}
	return report
}

// Data exposes the shared payload for callers that need results out of
// a completed saga.
func (s *Saga) Data() map[string]any {
	return s.data
}
