package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/costs"
	"sige/internal/employee"
	"sige/internal/punch"
	"sige/internal/schedule"
)

// --- fakes in the struct-of-funcs style ---

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, adminID, id int64) (*employee.Funcionario, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Funcionario) error {
	return nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, adminID, id int64) (*employee.Funcionario, error) {
	return f.findByIDFn(ctx, adminID, id)
}
func (f *fakeEmployeeRepo) ListActive(ctx context.Context, adminID int64) ([]employee.Funcionario, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) UpdateSalary(ctx context.Context, adminID, id int64, salario float64) error {
	return nil
}
func (f *fakeEmployeeRepo) CreateSalaryAudit(ctx context.Context, a *employee.AuditoriaSalario) error {
	return nil
}
func (f *fakeEmployeeRepo) DeleteSalaryAudit(ctx context.Context, adminID, auditID int64) error {
	return nil
}

type fakePunchRepo struct {
	listFn func(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) ([]punch.RegistroPonto, error)
}

func (f *fakePunchRepo) WithTx(tx *gorm.DB) punch.Repository { return f }
func (f *fakePunchRepo) Create(ctx context.Context, rec *punch.RegistroPonto) error {
	return nil
}
func (f *fakePunchRepo) Update(ctx context.Context, rec *punch.RegistroPonto) error { return nil }
func (f *fakePunchRepo) FindByID(ctx context.Context, adminID, id int64) (*punch.RegistroPonto, error) {
	return nil, nil
}
func (f *fakePunchRepo) ListByEmployeePeriod(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) ([]punch.RegistroPonto, error) {
	return f.listFn(ctx, adminID, funcionarioID, start, end)
}

type fakeScheduleRepo struct {
	windows []schedule.HorarioTrabalho
}

func (f *fakeScheduleRepo) WithTx(tx *gorm.DB) schedule.Repository { return f }
func (f *fakeScheduleRepo) Create(ctx context.Context, h *schedule.HorarioTrabalho) error {
	return nil
}
func (f *fakeScheduleRepo) ListForEmployee(ctx context.Context, adminID, funcionarioID int64) ([]schedule.HorarioTrabalho, error) {
	return f.windows, nil
}

type fakeCostsRepo struct {
	alimentacao float64
	transporte  float64
	outros      float64
}

func (f *fakeCostsRepo) WithTx(tx *gorm.DB) costs.Repository { return f }
func (f *fakeCostsRepo) SumAlimentacao(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error) {
	return f.alimentacao, nil
}
func (f *fakeCostsRepo) SumTransporte(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error) {
	return f.transporte, nil
}
func (f *fakeCostsRepo) SumOutrosCustos(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error) {
	return f.outros, nil
}

// --- helpers ---

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fullTimeWindow() []schedule.HorarioTrabalho {
	return []schedule.HorarioTrabalho{{
		Entrada: "08:00", Saida: "17:00", HorasDiarias: 8,
		ValidoDe: day(2020, 1, 1), Ativo: true,
	}}
}

func newTestEngine(emp *employee.Funcionario, recs []punch.RegistroPonto, costsRepo *fakeCostsRepo) *Engine {
	if costsRepo == nil {
		costsRepo = &fakeCostsRepo{}
	}
	return NewEngine(
		&fakeEmployeeRepo{findByIDFn: func(ctx context.Context, adminID, id int64) (*employee.Funcionario, error) {
			if emp == nil {
				return nil, employee.ErrNotFound
			}
			return emp, nil
		}},
		&fakePunchRepo{listFn: func(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) ([]punch.RegistroPonto, error) {
			return recs, nil
		}},
		&fakeScheduleRepo{windows: fullTimeWindow()},
		costsRepo,
		DefaultOptions(),
		zap.NewNop(),
	)
}

func TestCompute_InvertedPeriodYieldsFlaggedZeroBundle(t *testing.T) {
	e := newTestEngine(&employee.Funcionario{ID: 1, Salario: 2200}, nil, nil)

	b, err := e.Compute(context.Background(), 1, 1, day(2025, 7, 31), day(2025, 7, 1), nil)

	require.NoError(t, err)
	assert.Contains(t, b.Warnings, WarnInvalidPeriod)
	assert.Zero(t, b.HorasTrabalhadas)
	assert.Zero(t, b.DiasProgramados)
	assert.Zero(t, b.CustoMaoObra)
	assert.False(t, b.NotFound)
}

func TestCompute_UnknownEmployeeYieldsFlaggedZeroBundle(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	b, err := e.Compute(context.Background(), 1, 99, day(2025, 7, 1), day(2025, 7, 31), nil)

	require.NoError(t, err)
	assert.True(t, b.NotFound)
	assert.Zero(t, b.HorasTrabalhadas)
	assert.Zero(t, b.ValorHora)
	assert.Empty(t, b.Warnings)
}

func TestCompute_EmptyPeriodYieldsZeroedBundle(t *testing.T) {
	e := newTestEngine(&employee.Funcionario{ID: 1, Salario: 2200}, nil, nil)

	b, err := e.Compute(context.Background(), 1, 1, day(2025, 7, 1), day(2025, 7, 31), nil)

	require.NoError(t, err)
	assert.Zero(t, b.HorasTrabalhadas)
	assert.Zero(t, b.Faltas)
	assert.Zero(t, b.Produtividade)
	// no records means no scheduled days
	assert.Zero(t, b.DiasProgramados)
	assert.Zero(t, b.HorasEsperadas)
	assert.Zero(t, b.MediaDiaria)
	// 2200 / (8*22) = 12.50
	assert.InDelta(t, 12.5, b.ValorHora, 0.001)
	assert.InDelta(t, 2200.0, b.CustoMaoObra, 0.001)
}

// A lone unjustified absence is the whole schedule for the period, so
// absenteeism hits 100% and efficiency collapses to zero.
func TestCompute_SingleAbsenceDominatesSchedule(t *testing.T) {
	recs := []punch.RegistroPonto{
		{Data: day(2025, 7, 2), TipoRegistro: punch.TipoFalta},
	}
	e := newTestEngine(&employee.Funcionario{ID: 1, Salario: 2200}, recs, nil)

	b, err := e.Compute(context.Background(), 1, 1, day(2025, 6, 30), day(2025, 7, 4), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, b.DiasProgramados)
	assert.InDelta(t, 8.0, b.HorasEsperadas, 0.001)
	assert.InDelta(t, 100.0, b.Absenteismo, 0.001)
	assert.Zero(t, b.Produtividade)
	assert.Zero(t, b.Eficiencia)
	assert.InDelta(t, 8.0, b.HorasPerdidas, 0.001)
}

// Weekend kinds never count as scheduled days, worked or off, while a
// worked holiday does.
func TestCompute_ScheduledDaysFollowRecordKinds(t *testing.T) {
	recs := []punch.RegistroPonto{
		{Data: day(2025, 7, 3), TipoRegistro: punch.TipoFeriadoTrabalhado, HorasTrabalhadas: 6, HorasExtras: 6, PercentualExtras: 100},
		{Data: day(2025, 7, 5), TipoRegistro: punch.TipoSabadoExtras, HorasTrabalhadas: 4, HorasExtras: 4, PercentualExtras: 50},
		{Data: day(2025, 7, 6), TipoRegistro: punch.TipoDomingoFolga},
		{Data: day(2025, 7, 7), TipoRegistro: punch.TipoTrabalhoNormal, HorasTrabalhadas: 8},
	}
	e := newTestEngine(&employee.Funcionario{ID: 1, Salario: 2200}, recs, nil)

	b, err := e.Compute(context.Background(), 1, 1, day(2025, 7, 1), day(2025, 7, 31), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, b.DiasProgramados)
	assert.InDelta(t, 16.0, b.HorasEsperadas, 0.001)
	assert.InDelta(t, 18.0, b.HorasTrabalhadas, 0.001)
}

func TestCompute_AggregatesRecordsAndCosts(t *testing.T) {
	recs := []punch.RegistroPonto{
		{Data: day(2025, 7, 1), TipoRegistro: punch.TipoTrabalhoNormal, HorasTrabalhadas: 8, HorasExtras: 1, PercentualExtras: 50},
		{Data: day(2025, 7, 2), TipoRegistro: punch.TipoTrabalhoNormal, HorasTrabalhadas: 8},
		{Data: day(2025, 7, 3), TipoRegistro: punch.TipoFalta},
		{Data: day(2025, 7, 4), TipoRegistro: punch.TipoFaltaJustificada},
		{Data: day(2025, 7, 5), TipoRegistro: punch.TipoSabadoExtras, HorasTrabalhadas: 4, HorasExtras: 4, PercentualExtras: 50},
	}
	costsRepo := &fakeCostsRepo{alimentacao: 150, transporte: 80, outros: 40}
	e := newTestEngine(&employee.Funcionario{ID: 1, Salario: 2200}, recs, costsRepo)

	b, err := e.Compute(context.Background(), 1, 1, day(2025, 7, 1), day(2025, 7, 31), nil)

	require.NoError(t, err)
	assert.InDelta(t, 20.0, b.HorasTrabalhadas, 0.001)
	assert.InDelta(t, 5.0, b.HorasExtras, 0.001)
	assert.Equal(t, 1, b.Faltas)
	assert.Equal(t, 1, b.FaltasJustificadas)
	assert.InDelta(t, 150.0, b.CustoAlimentacao, 0.001)
	assert.InDelta(t, 80.0, b.CustoTransporte, 0.001)
	assert.InDelta(t, 40.0, b.OutrosCustos, 0.001)

	// salary 2200, one absence discounts 8h*12.50=100,
	// weekday extra: 1h*12.50*0.5 = 6.25,
	// saturday: 4h*12.50*(1+0.5) = 75
	assert.InDelta(t, 2181.25, b.CustoMaoObra, 0.001)

	// scheduled days come from the records: two normal days plus the
	// two absences; the saturday is not scheduled
	assert.Equal(t, 4, b.DiasProgramados)
	assert.InDelta(t, 32.0, b.HorasEsperadas, 0.001)
	assert.InDelta(t, 25.0, b.Absenteismo, 0.01)
	// 20 worked hours over 4 scheduled days
	assert.InDelta(t, 5.0, b.MediaDiaria, 0.01)
	// lost: 1*8 + 0 lateness
	assert.InDelta(t, 8.0, b.HorasPerdidas, 0.001)
	// productivity: 20/32
	assert.InDelta(t, 62.5, b.Produtividade, 0.01)
	// efficiency: 62.5 * (1 - 0.25)
	assert.InDelta(t, 46.88, b.Eficiencia, 0.01)
	// one justified absence: 8h * 12.50
	assert.InDelta(t, 100.0, b.ValorFaltaJustificada, 0.001)
}

func TestCompute_NormalWorkOnHolidayWarns(t *testing.T) {
	recs := []punch.RegistroPonto{
		{Data: day(2025, 12, 25), TipoRegistro: punch.TipoTrabalhoNormal, HorasTrabalhadas: 8},
	}
	e := newTestEngine(&employee.Funcionario{ID: 1, Salario: 2200}, recs, nil)
	holidays := FixedNationalHolidays(2025)

	b, err := e.Compute(context.Background(), 1, 1, day(2025, 12, 1), day(2025, 12, 31), holidays)

	require.NoError(t, err)
	assert.Equal(t, 1, b.DiasProgramados)
	require.NotEmpty(t, b.Warnings)
	assert.Contains(t, b.Warnings[0], "feriado")
}

func TestCompute_IsDeterministic(t *testing.T) {
	recs := []punch.RegistroPonto{
		{Data: day(2025, 7, 1), TipoRegistro: punch.TipoTrabalhoNormal, HorasTrabalhadas: 8, HorasExtras: 0.95, PercentualExtras: 50},
	}
	e := newTestEngine(&employee.Funcionario{ID: 1, Salario: 2200}, recs, nil)

	first, err := e.Compute(context.Background(), 1, 1, day(2025, 7, 1), day(2025, 7, 31), nil)
	require.NoError(t, err)
	second, err := e.Compute(context.Background(), 1, 1, day(2025, 7, 1), day(2025, 7, 31), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
