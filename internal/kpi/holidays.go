package kpi

import "time"

// Holidays is the calendar the engine consumes. Callers build it; the
// engine never embeds holiday knowledge itself.
type Holidays map[string]bool

const holidayKeyLayout = "2006-01-02"

func (h Holidays) Contains(date time.Time) bool {
	if h == nil {
		return false
	}
	return h[date.Format(holidayKeyLayout)]
}

func (h Holidays) Add(date time.Time) {
	h[date.Format(holidayKeyLayout)] = true
}

// FixedNationalHolidays returns Brazil's fixed-date national holidays
// for a year. Movable feasts (Carnaval, Corpus Christi) and municipal
// holidays are the caller's responsibility.
func FixedNationalHolidays(year int) Holidays {
	days := []struct{ month, day int }{
		{1, 1},   // Confraternizacao Universal
		{4, 21},  // Tiradentes
		{5, 1},   // Dia do Trabalho
		{9, 7},   // Independencia
		{10, 12}, // Nossa Senhora Aparecida
		{11, 2},  // Finados
		{11, 15}, // Proclamacao da Republica
		{12, 25}, // Natal
	}

	h := make(Holidays, len(days))
	for _, d := range days {
		h.Add(time.Date(year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC))
	}
	return h
}

// FixedNationalHolidaysRange covers every year touched by [start, end].
func FixedNationalHolidaysRange(start, end time.Time) Holidays {
	h := make(Holidays)
	for y := start.Year(); y <= end.Year(); y++ {
		for k := range FixedNationalHolidays(y) {
			h[k] = true
		}
	}
	return h
}
