// Package extractor pulls the five exchange rates out of the BCV home page markup.
package extractor

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"BCVMonitor/internal/model"
)

// Locators maps every code to the structural position of its rate on the page.
var Locators = map[model.Code]string{
	model.EUR: `div[id="euro"] strong`,
	model.CNY: `div[id="yuan"] strong`,
	model.TRY: `div[id="lira"] strong`,
	model.RUB: `div[id="rublo"] strong`,
	model.USD: `div[id="dolar"] strong`,
}

// Extract returns the rates found in body. Missing, non-positive or unparseable
// fields are left at zero; a non-200 status or empty body yields all zeros.
func Extract(body []byte, status int) model.Rates {
	rates := make(model.Rates, len(model.Codes))
	for _, c := range model.Codes {
		rates[c] = 0
	}
	if status != http.StatusOK || len(bytes.TrimSpace(body)) == 0 {
		return rates
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return rates
	}

	for _, c := range model.Codes {
		sel := doc.Find(Locators[c]).First()
		if sel.Length() == 0 {
			continue
		}
		if v := ParseRate(sel.Text()); v > 0 {
			rates[c] = v
		}
	}
	return rates
}

// ParseRate converts a page value such as " 141,88 " to 141.88. It reads the
// longest numeric prefix and returns 0 when there is none.
func ParseRate(text string) float64 {
	s := numericPrefix(strings.ReplaceAll(strings.TrimSpace(text), ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func numericPrefix(s string) string {
	end, digits := 0, 0
	seenDot := false
loop:
	for end < len(s) {
		switch ch := s[end]; {
		case ch >= '0' && ch <= '9':
			digits++
		case ch == '.' && !seenDot:
			seenDot = true
		case (ch == '-' || ch == '+') && end == 0:
		default:
			break loop
		}
		end++
	}
	if digits == 0 {
		return ""
	}
	return strings.TrimSuffix(s[:end], ".")
}
