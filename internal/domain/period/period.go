// Package period resuelve fechas de calendario (YYYY-MM-DD) a instantes en la zona del negocio.
package period

import (
	"strings"
	"time"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
)

// DateLayout es el formato de fecha de calendario aceptado en filtros.
const DateLayout = "2006-01-02"

// TimestampLayout es el formato con que se exponen las fechas de movimientos.
const TimestampLayout = "2006-01-02 15:04:05"

// Range filtra por fecha; ambos extremos son inclusivos y opcionales.
type Range struct {
	From *time.Time
	To   *time.Time
}

// Contains indica si t cae dentro del rango.
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// ParseDay interpreta una fecha YYYY-MM-DD como las 00:00:00 de ese día en loc.
func ParseDay(field, s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "fecha inválida, se espera YYYY-MM-DD")
	}
	return t, nil
}

// DayRange construye un rango desde start 00:00:00 hasta end 23:59:59.
// Un extremo vacío queda sin límite.
func DayRange(start, end string, loc *time.Location) (Range, error) {
	var r Range
	if strings.TrimSpace(start) != "" {
		from, err := ParseDay("start_date", start, loc)
		if err != nil {
			return Range{}, err
		}
		r.From = &from
	}
	if strings.TrimSpace(end) != "" {
		day, err := ParseDay("end_date", end, loc)
		if err != nil {
			return Range{}, err
		}
		to := EndOfDay(day)
		r.To = &to
	}
	return r, nil
}

// EndOfDay devuelve las 23:59:59 del día de t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// Stamp fija la hora de un registro en loc a segundo completo, de modo que nada
// quede entre EndOfDay y el inicio del día siguiente.
func Stamp(t time.Time, loc *time.Location) time.Time {
	return t.In(loc).Truncate(time.Second)
}

// StartOfMonth devuelve el primer instante del mes de t.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Month es un mes calendario como intervalo semiabierto [Start, End).
type Month struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// TrailingMonths devuelve los n meses que terminan en el mes de now, del más antiguo al actual.
func TrailingMonths(now time.Time, n int) []Month {
	current := StartOfMonth(now)
	out := make([]Month, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := time.Date(current.Year(), current.Month()-time.Month(i), 1, 0, 0, 0, 0, current.Location())
		end := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, start.Location())
		out = append(out, Month{Year: start.Year(), Month: start.Month(), Start: start, End: end})
	}
	return out
}
