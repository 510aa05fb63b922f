package normalizer

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Caracas is the zone the source publishes in. The fixed zone is used when the
// tz database cannot be loaded.
var Caracas = loadCaracas()

func loadCaracas() *time.Location {
	loc, err := time.LoadLocation("America/Caracas")
	if err != nil {
		return time.FixedZone("VET", -4*60*60)
	}
	return loc
}

var (
	weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsES   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// LongDate formats t as "lunes, 19 de octubre de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()-1], t.Year())
}

// MediumTime formats t as "14:05:09".
func MediumTime(t time.Time) string {
	return t.Format("15:04:05")
}

// LastUpdate formats t as "19/10/2026, 02:05 PM".
func LastUpdate(t time.Time) string {
	return t.Format("02/01/2006, 03:04 PM")
}
