package punch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sige/internal/schedule"
)

func strp(s string) *string { return &s }

func schedAt(entrada, saida int, horas float64) schedule.Resolved {
	return schedule.Resolved{
		Entrada:       entrada,
		Saida:         saida,
		AlmocoSaida:   -1,
		AlmocoRetorno: -1,
		HorasDiarias:  horas,
	}
}

// Schedule 07:12-17:00, punch 07:05-17:50: seven early minutes plus
// fifty late minutes of overtime, no lateness.
func TestDerive_EarlyEntryAndLateExitAreOvertime(t *testing.T) {
	rec := &RegistroPonto{
		TipoRegistro: TipoTrabalhoNormal,
		HoraEntrada:  strp("07:05"),
		HoraSaida:    strp("17:50"),
	}

	require.NoError(t, Derive(rec, schedAt(432, 1020, 8.8)))

	assert.InDelta(t, 10.75, rec.HorasTrabalhadas, 0.001)
	assert.Equal(t, 7, rec.MinutosExtrasEntrada)
	assert.Equal(t, 50, rec.MinutosExtrasSaida)
	assert.InDelta(t, 0.95, rec.HorasExtras, 0.001)
	assert.Equal(t, 0, rec.MinutosAtrasoEntrada)
	assert.Equal(t, 0, rec.MinutosAtrasoSaida)
	assert.InDelta(t, 0.0, rec.TotalAtrasoHoras, 0.001)
	assert.InDelta(t, 50.0, rec.PercentualExtras, 0.001)
}

func TestDerive_LatenessBothEnds(t *testing.T) {
	rec := &RegistroPonto{
		TipoRegistro: TipoTrabalhoNormal,
		HoraEntrada:  strp("08:20"),
		HoraSaida:    strp("16:30"),
	}

	require.NoError(t, Derive(rec, schedAt(480, 1020, 8)))

	assert.Equal(t, 20, rec.MinutosAtrasoEntrada)
	assert.Equal(t, 30, rec.MinutosAtrasoSaida)
	assert.InDelta(t, 0.83, rec.TotalAtrasoHoras, 0.001)
	assert.InDelta(t, 0.0, rec.HorasExtras, 0.001)
	assert.InDelta(t, 0.0, rec.PercentualExtras, 0.001)
}

func TestDerive_LunchIntervalIsDiscounted(t *testing.T) {
	rec := &RegistroPonto{
		TipoRegistro:      TipoTrabalhoNormal,
		HoraEntrada:       strp("08:00"),
		HoraSaida:         strp("17:00"),
		HoraAlmocoSaida:   strp("12:00"),
		HoraAlmocoRetorno: strp("13:00"),
	}

	require.NoError(t, Derive(rec, schedAt(480, 1020, 8)))

	assert.InDelta(t, 8.0, rec.HorasTrabalhadas, 0.001)
}

func TestDerive_WeekendAndHolidayKinds(t *testing.T) {
	cases := []struct {
		tipo string
		pct  float64
	}{
		{TipoSabadoExtras, 50},
		{TipoDomingoExtras, 100},
		{TipoFeriadoTrabalhado, 100},
	}

	for _, tc := range cases {
		t.Run(tc.tipo, func(t *testing.T) {
			rec := &RegistroPonto{
				TipoRegistro: tc.tipo,
				HoraEntrada:  strp("08:00"),
				HoraSaida:    strp("12:00"),
			}

			require.NoError(t, Derive(rec, schedAt(480, 1020, 8)))

			assert.InDelta(t, 4.0, rec.HorasTrabalhadas, 0.001)
			assert.InDelta(t, 4.0, rec.HorasExtras, 0.001, "all worked hours are overtime")
			assert.InDelta(t, tc.pct, rec.PercentualExtras, 0.001)
			assert.Equal(t, 0, rec.MinutosAtrasoEntrada)
			assert.Equal(t, 0, rec.MinutosAtrasoSaida)
		})
	}
}

func TestDerive_AbsenceAndDayOffZeroEverything(t *testing.T) {
	for _, tipo := range []string{TipoFalta, TipoFaltaJustificada, TipoSabadoFolga, TipoDomingoFolga, TipoFeriadoFolga} {
		t.Run(tipo, func(t *testing.T) {
			rec := &RegistroPonto{
				TipoRegistro: tipo,
				HoraEntrada:  strp("08:00"),
				HoraSaida:    strp("17:00"),
			}

			require.NoError(t, Derive(rec, schedAt(480, 1020, 8)))

			assert.Zero(t, rec.HorasTrabalhadas)
			assert.Zero(t, rec.HorasExtras)
			assert.Zero(t, rec.TotalAtrasoHoras)
		})
	}
}

func TestDerive_MissingMarksLeaveZeros(t *testing.T) {
	rec := &RegistroPonto{
		TipoRegistro: TipoTrabalhoNormal,
		HoraEntrada:  strp("08:00"),
	}

	require.NoError(t, Derive(rec, schedAt(480, 1020, 8)))

	assert.Zero(t, rec.HorasTrabalhadas)
	assert.Zero(t, rec.HorasExtras)
}

func TestDerive_IsDeterministic(t *testing.T) {
	rec := &RegistroPonto{
		TipoRegistro: TipoTrabalhoNormal,
		HoraEntrada:  strp("07:05"),
		HoraSaida:    strp("17:50"),
	}
	sched := schedAt(432, 1020, 8.8)

	require.NoError(t, Derive(rec, sched))
	first := *rec

	require.NoError(t, Derive(rec, sched))
	assert.Equal(t, first, *rec)
}

func TestDerive_InvalidMarkIsRejected(t *testing.T) {
	rec := &RegistroPonto{
		TipoRegistro: TipoTrabalhoNormal,
		HoraEntrada:  strp("99:99"),
		HoraSaida:    strp("17:00"),
	}

	assert.Error(t, Derive(rec, schedAt(480, 1020, 8)))
}
