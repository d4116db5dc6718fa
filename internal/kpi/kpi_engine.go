package kpi

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"sige/internal/costs"
	"sige/internal/employee"
	"sige/internal/punch"
	"sige/internal/schedule"
)

// WarnInvalidPeriod is attached to the bundle when fim precedes inicio.
const WarnInvalidPeriod = "invalid_period"

// Bundle is the full KPI set for one employee and period. Pure output:
// computing it never writes anything.
type Bundle struct {
	FuncionarioID         int64    `json:"funcionario_id"`
	Inicio                string   `json:"inicio"`
	Fim                   string   `json:"fim"`
	HorasTrabalhadas      float64  `json:"horas_trabalhadas"`
	HorasExtras           float64  `json:"horas_extras"`
	Faltas                int      `json:"faltas"`
	FaltasJustificadas    int      `json:"faltas_justificadas"`
	AtrasosHoras          float64  `json:"atrasos_horas"`
	DiasProgramados       int      `json:"dias_programados"`
	HorasEsperadas        float64  `json:"horas_esperadas"`
	ValorHora             float64  `json:"valor_hora"`
	CustoMaoObra          float64  `json:"custo_mao_obra"`
	CustoAlimentacao      float64  `json:"custo_alimentacao"`
	CustoTransporte       float64  `json:"custo_transporte"`
	OutrosCustos          float64  `json:"outros_custos"`
	Absenteismo           float64  `json:"absenteismo"`
	MediaDiaria           float64  `json:"media_diaria"`
	HorasPerdidas         float64  `json:"horas_perdidas"`
	Produtividade         float64  `json:"produtividade"`
	Eficiencia            float64  `json:"eficiencia"`
	ValorFaltaJustificada float64  `json:"valor_falta_justificada"`
	NotFound              bool     `json:"not_found,omitempty"`
	Warnings              []string `json:"warnings,omitempty"`
}

// Options carries the tunable pay factors. Weekday overtime adds the
// uplift on top of the base hour already inside the salary; weekend and
// holiday hours are paid whole, scaled by their multiplier.
type Options struct {
	UpliftSemana           float64
	MultiplicadorEspeciais float64
}

func DefaultOptions() Options {
	return Options{
		UpliftSemana:           0.5,
		MultiplicadorEspeciais: 1.0,
	}
}

type Engine struct {
	employees employee.Repository
	punches   punch.Repository
	schedules schedule.Repository
	costs     costs.Repository
	opts      Options
	logger    *zap.Logger
}

func NewEngine(
	employees employee.Repository,
	punches punch.Repository,
	schedules schedule.Repository,
	costRepo costs.Repository,
	opts Options,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		employees: employees,
		punches:   punches,
		schedules: schedules,
		costs:     costRepo,
		opts:      opts,
		logger:    logger.Named("kpi.engine"),
	}
}

// Compute derives the bundle for [inicio, fim] (inclusive). Same inputs
// always produce the same bundle. An inverted period and an unknown
// employee both come back as zeroed bundles, flagged rather than failed.
func (e *Engine) Compute(ctx context.Context, adminID, funcionarioID int64, inicio, fim time.Time, holidays Holidays) (*Bundle, error) {
	b := &Bundle{
		FuncionarioID: funcionarioID,
		Inicio:        inicio.Format("2006-01-02"),
		Fim:           fim.Format("2006-01-02"),
	}

	if inicio.IsZero() || fim.IsZero() || fim.Before(inicio) {
		b.Warnings = append(b.Warnings, WarnInvalidPeriod)
		return b, nil
	}

	emp, err := e.employees.FindByID(ctx, adminID, funcionarioID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			b.NotFound = true
			return b, nil
		}
		return nil, err
	}

	windows, err := e.schedules.ListForEmployee(ctx, adminID, funcionarioID)
	if err != nil {
		return nil, err
	}

	recs, err := e.punches.ListByEmployeePeriod(ctx, adminID, funcionarioID, inicio, fim)
	if err != nil {
		return nil, err
	}

	refSched := schedule.ResolveFor(windows, fim)
	if refSched.Fallback {
		b.Warnings = append(b.Warnings, "sem horario cadastrado, padrao 08:00-17:00 aplicado")
	}
	b.ValorHora = hourlyRate(emp.Salario, refSched.HorasDiarias)

	custoExtras := 0.0
	for i := range recs {
		rec := &recs[i]

		if isScheduledDay(rec.TipoRegistro) {
			b.DiasProgramados++
		}

		b.HorasTrabalhadas += rec.HorasTrabalhadas
		b.HorasExtras += rec.HorasExtras
		b.AtrasosHoras += rec.TotalAtrasoHoras

		switch rec.TipoRegistro {
		case punch.TipoFalta:
			b.Faltas++
		case punch.TipoFaltaJustificada:
			b.FaltasJustificadas++
		case punch.TipoTrabalhoNormal:
			if holidays.Contains(rec.Data) {
				b.Warnings = append(b.Warnings,
					"registro trabalho_normal em feriado: "+rec.Data.Format("2006-01-02"))
			}
		}

		if rec.HorasExtras > 0 {
			factor := rec.PercentualExtras / 100
			if isWeekendOrHoliday(rec.TipoRegistro) {
				// special days: the base hour is not in the salary,
				// pay it whole plus the multiplier premium
				custoExtras += rec.HorasExtras * b.ValorHora * (1 + factor*e.opts.MultiplicadorEspeciais)
			} else {
				custoExtras += rec.HorasExtras * b.ValorHora * e.opts.UpliftSemana
			}
		}
	}

	b.HorasEsperadas = float64(b.DiasProgramados) * refSched.HorasDiarias

	descontoFaltas := float64(b.Faltas) * refSched.HorasDiarias * b.ValorHora
	b.CustoMaoObra = round2(emp.Salario - descontoFaltas + custoExtras)

	b.CustoAlimentacao, err = e.costs.SumAlimentacao(ctx, adminID, funcionarioID, inicio, fim)
	if err != nil {
		return nil, err
	}
	b.CustoTransporte, err = e.costs.SumTransporte(ctx, adminID, funcionarioID, inicio, fim)
	if err != nil {
		return nil, err
	}
	b.OutrosCustos, err = e.costs.SumOutrosCustos(ctx, adminID, funcionarioID, inicio, fim)
	if err != nil {
		return nil, err
	}

	if b.DiasProgramados > 0 {
		b.Absenteismo = round2(float64(b.Faltas) / float64(b.DiasProgramados) * 100)
		b.MediaDiaria = round2(b.HorasTrabalhadas / float64(b.DiasProgramados))
	}
	b.HorasPerdidas = round2(float64(b.Faltas)*refSched.HorasDiarias + b.AtrasosHoras)
	if b.HorasEsperadas > 0 {
		b.Produtividade = round2(b.HorasTrabalhadas / b.HorasEsperadas * 100)
	}
	b.Eficiencia = round2(b.Produtividade * (1 - b.Absenteismo/100))
	if b.Eficiencia < 0 {
		b.Eficiencia = 0
	}
	b.ValorFaltaJustificada = round2(float64(b.FaltasJustificadas) * refSched.HorasDiarias * b.ValorHora)

	b.HorasTrabalhadas = round2(b.HorasTrabalhadas)
	b.HorasExtras = round2(b.HorasExtras)
	b.AtrasosHoras = round2(b.AtrasosHoras)
	b.HorasEsperadas = round2(b.HorasEsperadas)

	e.logger.Debug("kpi bundle computed",
		zap.Int64("funcionario_id", funcionarioID),
		zap.Int("dias_programados", b.DiasProgramados),
		zap.Float64("horas_trabalhadas", b.HorasTrabalhadas),
	)
	return b, nil
}

// hourlyRate follows the 22-business-day month convention: daily hours
// times 22, with 220 as the guard when the schedule carries no hours.
func hourlyRate(salario, horasDiarias float64) float64 {
	divisor := horasDiarias * 22
	if divisor <= 0 {
		divisor = 220
	}
	return round2(salario / divisor)
}

// isScheduledDay reports whether the record counts toward
// dias_programados. Weekend kinds never do, worked or off; a worked
// holiday does.
func isScheduledDay(tipo string) bool {
	switch tipo {
	case punch.TipoTrabalhoNormal, punch.TipoMeioPeriodo, punch.TipoAtrasoEntrada,
		punch.TipoSaidaAntecipada, punch.TipoFalta, punch.TipoFaltaJustificada,
		punch.TipoFeriadoTrabalhado:
		return true
	}
	return false
}

func isWeekendOrHoliday(tipo string) bool {
	switch tipo {
	case punch.TipoSabadoExtras, punch.TipoDomingoExtras, punch.TipoFeriadoTrabalhado:
		return true
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
