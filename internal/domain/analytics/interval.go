package analytics

import (
	"fmt"
	"time"

	"github.com/Piamias-Victor/new-sub003/internal/domain"
)

// Interval granularidad de bucketing de las series de evolución.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// ParseInterval valida el intervalo contra la enumeración cerrada.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return Interval(s), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownInterval, s)
	}
}

// Truncate lleva la fecha al inicio de su bucket:
// día → medianoche; semana → lunes ISO; mes → día 1.
func (i Interval) Truncate(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch i {
	case IntervalWeek:
		// Lunes de la semana ISO; en Go Sunday=0, así que se corrige a 7.
		wd := int(day.Weekday())
		if wd == 0 {
			wd = 7
		}
		return day.AddDate(0, 0, 1-wd)
	case IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

// Label etiqueta legible del bucket, dependiente del intervalo:
// día → fecha calendario, semana → año-semana ISO, mes → año-mes.
func (i Interval) Label(t time.Time) string {
	switch i {
	case IntervalWeek:
		year, week := i.Truncate(t).ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case IntervalMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
