package model

import "strings"

// Code identifies one of the five monitored currencies.
type Code string

const (
	EUR Code = "eur"
	CNY Code = "cny"
	TRY Code = "try"
	RUB Code = "rub"
	USD Code = "usd"
)

// Codes is the fixed identity order used everywhere a record is walked.
var Codes = []Code{EUR, CNY, TRY, RUB, USD}

// Upper returns the display form of the code ("USD").
func (c Code) Upper() string { return strings.ToUpper(string(c)) }

// Currency holds the static presentation data of a monitored currency.
type Currency struct {
	Code  Code
	Title string
	Image string
}

const imageBase = "https://res.cloudinary.com/dcpyfqx87/image/upload/"

// Currencies maps every code to its title and flag image.
var Currencies = map[Code]Currency{
	EUR: {Code: EUR, Title: "Euro", Image: imageBase + "v1729921474/monitors/public_id:european-union.webp"},
	CNY: {Code: CNY, Title: "Yuan chino", Image: imageBase + "v1729921473/monitors/public_id:china.webp"},
	TRY: {Code: TRY, Title: "Lira turca", Image: imageBase + "v1729921474/monitors/public_id:turkey.webp"},
	RUB: {Code: RUB, Title: "Rublo ruso", Image: imageBase + "v1729921474/monitors/public_id:russia.webp"},
	USD: {Code: USD, Title: "Dólar estadounidense", Image: imageBase + "v1729921474/monitors/public_id:united-states.webp"},
}

// Rates is the partial result of a scrape: code -> local units per foreign unit.
// A zero (or missing) value means no real data was obtained for that code.
type Rates map[Code]float64

// HasData reports whether at least one code carries a positive rate.
func (r Rates) HasData() bool {
	for _, c := range Codes {
		if r[c] > 0 {
			return true
		}
	}
	return false
}
