package punch

import (
	"sige/internal/schedule"
)

// Overtime percentages by kind.
const (
	pctWeekday  = 50.0
	pctSaturday = 50.0
	pctSunday   = 100.0
	pctHoliday  = 100.0
)

// Derive recomputes every derived column on the record from its raw
// marks and the schedule in effect on that day. It is pure: same record
// and schedule always produce the same fields.
//
// Workday kinds compare marks against the expected window: minutes
// before expected entry and after expected exit are overtime, minutes
// after expected entry and before expected exit are lateness. On
// weekend/holiday worked kinds every worked hour is overtime and
// lateness does not apply. Day-off and absence kinds zero everything.
func Derive(rec *RegistroPonto, sched schedule.Resolved) error {
	rec.HorasTrabalhadas = 0
	rec.HorasExtras = 0
	rec.MinutosAtrasoEntrada = 0
	rec.MinutosAtrasoSaida = 0
	rec.TotalAtrasoHoras = 0
	rec.MinutosExtrasEntrada = 0
	rec.MinutosExtrasSaida = 0
	rec.PercentualExtras = 0

	worked, entrada, saida, ok, err := workedMinutes(rec)
	if err != nil {
		return err
	}

	switch {
	case isWorkday(rec.TipoRegistro):
		if !ok {
			return nil
		}
		rec.HorasTrabalhadas = round2(float64(worked) / 60)

		if entrada > sched.Entrada {
			rec.MinutosAtrasoEntrada = entrada - sched.Entrada
		} else if entrada < sched.Entrada {
			rec.MinutosExtrasEntrada = sched.Entrada - entrada
		}

		if saida < sched.Saida {
			rec.MinutosAtrasoSaida = sched.Saida - saida
		} else if saida > sched.Saida {
			rec.MinutosExtrasSaida = saida - sched.Saida
		}

		rec.TotalAtrasoHoras = round2(float64(rec.MinutosAtrasoEntrada+rec.MinutosAtrasoSaida) / 60)
		rec.HorasExtras = round2(float64(rec.MinutosExtrasEntrada+rec.MinutosExtrasSaida) / 60)
		if rec.HorasExtras > 0 {
			rec.PercentualExtras = pctWeekday
		}

	case isSpecialWorked(rec.TipoRegistro):
		if !ok {
			return nil
		}
		rec.HorasTrabalhadas = round2(float64(worked) / 60)
		rec.HorasExtras = rec.HorasTrabalhadas
		switch rec.TipoRegistro {
		case TipoSabadoExtras:
			rec.PercentualExtras = pctSaturday
		case TipoDomingoExtras:
			rec.PercentualExtras = pctSunday
		case TipoFeriadoTrabalhado:
			rec.PercentualExtras = pctHoliday
		}

	default:
		// falta, falta_justificada and the folga kinds carry no hours.
	}

	return nil
}

// workedMinutes computes gross presence minus the lunch interval when
// both lunch marks exist. ok is false when entry or exit is missing.
func workedMinutes(rec *RegistroPonto) (worked, entrada, saida int, ok bool, err error) {
	if rec.HoraEntrada == nil || rec.HoraSaida == nil {
		return 0, 0, 0, false, nil
	}

	entrada, err = schedule.MinutesOf(*rec.HoraEntrada)
	if err != nil {
		return 0, 0, 0, false, err
	}
	saida, err = schedule.MinutesOf(*rec.HoraSaida)
	if err != nil {
		return 0, 0, 0, false, err
	}

	worked = saida - entrada
	if worked < 0 {
		worked = 0
	}

	if rec.HoraAlmocoSaida != nil && rec.HoraAlmocoRetorno != nil {
		out, err := schedule.MinutesOf(*rec.HoraAlmocoSaida)
		if err != nil {
			return 0, 0, 0, false, err
		}
		back, err := schedule.MinutesOf(*rec.HoraAlmocoRetorno)
		if err != nil {
			return 0, 0, 0, false, err
		}
		if back > out {
			worked -= back - out
		}
		if worked < 0 {
			worked = 0
		}
	}

	return worked, entrada, saida, true, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
