package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers for one locale and currency.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	scale   int
	printer *message.Printer
}

// New returns a Formatter for locale (BCP 47) and an ISO 4217 currency code.
// Unknown values fall back to en-US and USD.
func New(locale, code string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		tag:     tag,
		unit:    unit,
		scale:   scale,
		printer: message.NewPrinter(tag),
	}
}

// ForCountry picks the locale and currency of a two letter country code.
func ForCountry(country string) *Formatter {
	region, err := language.ParseRegion(strings.ToUpper(country))
	if err != nil {
		return New("en-US", "USD")
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		unit = currency.USD
	}
	tag, _ := language.Compose(language.Und, region)
	base, _ := tag.Base()
	locale, _ := language.Compose(base, region)
	return New(locale.String(), unit.String())
}

func (f *Formatter) Tag() language.Tag {
	return f.tag
}

func (f *Formatter) Symbol() string {
	return f.printer.Sprint(currency.Symbol(f.unit))
}

// Currency formats value with the currency symbol, e.g. $1,234.50. English
// locales put the symbol first, others after the amount.
func (f *Formatter) Currency(value float64) string {
	amount := f.printer.Sprint(number.Decimal(value, number.Scale(f.scale)))
	base, _ := f.tag.Base()
	if english, _ := language.English.Base(); base == english {
		return f.Symbol() + amount
	}
	return amount + " " + f.Symbol()
}

// Number formats value with a fixed number of decimals and the locale's
// separators.
func (f *Formatter) Number(value float64, decimals int) string {
	return f.printer.Sprint(number.Decimal(value, number.Scale(decimals)))
}

// Fixed formats value with exactly decimals digits, without grouping.
func Fixed(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// ParseCurrency strips everything except digits, dot and minus and parses
// the rest. It returns 0 and false when nothing numeric remains.
func ParseCurrency(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
