package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Resolved is a schedule flattened to minutes since midnight, ready for
// punch arithmetic. Lunch fields are -1 when the schedule has no break.
type Resolved struct {
	Entrada       int
	Saida         int
	AlmocoSaida   int
	AlmocoRetorno int
	HorasDiarias  float64
	Fallback      bool
}

// Default is used when an employee has no schedule covering a date.
// Callers must surface a warning whenever this is returned.
func Default() Resolved {
	return Resolved{
		Entrada:       8 * 60,
		Saida:         17 * 60,
		AlmocoSaida:   12 * 60,
		AlmocoRetorno: 13 * 60,
		HorasDiarias:  8.0,
		Fallback:      true,
	}
}

// MinutesOf parses "HH:MM" into minutes since midnight.
func MinutesOf(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", hhmm)
	}
	return h*60 + m, nil
}

// Resolve flattens the entity. Optional lunch marks resolve to -1.
func (h *HorarioTrabalho) Resolve() (Resolved, error) {
	entrada, err := MinutesOf(h.Entrada)
	if err != nil {
		return Resolved{}, err
	}
	saida, err := MinutesOf(h.Saida)
	if err != nil {
		return Resolved{}, err
	}

	r := Resolved{
		Entrada:       entrada,
		Saida:         saida,
		AlmocoSaida:   -1,
		AlmocoRetorno: -1,
		HorasDiarias:  h.HorasDiarias,
	}

	if h.SaidaAlmoco != nil && h.RetornoAlmoco != nil {
		out, err := MinutesOf(*h.SaidaAlmoco)
		if err != nil {
			return Resolved{}, err
		}
		back, err := MinutesOf(*h.RetornoAlmoco)
		if err != nil {
			return Resolved{}, err
		}
		r.AlmocoSaida = out
		r.AlmocoRetorno = back
	}

	return r, nil
}

// ResolveFor picks the schedule in effect on a date: the window with the
// latest valido_de not after the date, still open (or covering it) and
// active. Returns the default when nothing matches.
func ResolveFor(windows []HorarioTrabalho, date time.Time) Resolved {
	day := date.Truncate(24 * time.Hour)

	var best *HorarioTrabalho
	for i := range windows {
		w := &windows[i]
		if !w.Ativo {
			continue
		}
		if w.ValidoDe.After(day) {
			continue
		}
		if w.ValidoAte != nil && w.ValidoAte.Before(day) {
			continue
		}
		if best == nil || w.ValidoDe.After(best.ValidoDe) {
			best = w
		}
	}

	if best == nil {
		return Default()
	}

	resolved, err := best.Resolve()
	if err != nil {
		return Default()
	}
	return resolved
}
