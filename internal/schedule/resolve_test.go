package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMinutesOf(t *testing.T) {
	got, err := MinutesOf("07:12")
	require.NoError(t, err)
	assert.Equal(t, 432, got)

	got, err = MinutesOf("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = MinutesOf("25:00")
	assert.Error(t, err)

	_, err = MinutesOf("0712")
	assert.Error(t, err)
}

func TestResolve_WithAndWithoutLunch(t *testing.T) {
	lunch := "12:00"
	back := "13:00"
	h := HorarioTrabalho{
		Entrada:       "07:12",
		Saida:         "17:00",
		SaidaAlmoco:   &lunch,
		RetornoAlmoco: &back,
		HorasDiarias:  8.8,
	}

	r, err := h.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 432, r.Entrada)
	assert.Equal(t, 1020, r.Saida)
	assert.Equal(t, 720, r.AlmocoSaida)
	assert.Equal(t, 780, r.AlmocoRetorno)
	assert.False(t, r.Fallback)

	h.SaidaAlmoco = nil
	h.RetornoAlmoco = nil
	r, err = h.Resolve()
	require.NoError(t, err)
	assert.Equal(t, -1, r.AlmocoSaida)
	assert.Equal(t, -1, r.AlmocoRetorno)
}

func TestResolveFor_PicksLatestCoveringWindow(t *testing.T) {
	old := HorarioTrabalho{
		Entrada: "08:00", Saida: "17:00", HorasDiarias: 8,
		ValidoDe: date(2025, 1, 1), Ativo: true,
	}
	end := date(2025, 5, 31)
	old.ValidoAte = &end

	current := HorarioTrabalho{
		Entrada: "07:12", Saida: "17:00", HorasDiarias: 8.8,
		ValidoDe: date(2025, 6, 1), Ativo: true,
	}

	r := ResolveFor([]HorarioTrabalho{old, current}, date(2025, 7, 10))
	assert.Equal(t, 432, r.Entrada)
	assert.False(t, r.Fallback)

	r = ResolveFor([]HorarioTrabalho{old, current}, date(2025, 3, 10))
	assert.Equal(t, 480, r.Entrada)
}

func TestResolveFor_FallsBackToDefault(t *testing.T) {
	r := ResolveFor(nil, date(2025, 7, 10))
	assert.True(t, r.Fallback)
	assert.Equal(t, 480, r.Entrada)
	assert.Equal(t, 8.0, r.HorasDiarias)

	inactive := HorarioTrabalho{
		Entrada: "06:00", Saida: "15:00", HorasDiarias: 8,
		ValidoDe: date(2025, 1, 1), Ativo: false,
	}
	r = ResolveFor([]HorarioTrabalho{inactive}, date(2025, 7, 10))
	assert.True(t, r.Fallback)
}
