// Package format renders numeric dashboard values as en-US display strings.
package format

import (
	"math"
	"strings"

	"crypto_dashboard/internal/domain/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// SentinelNA is shown when a value is missing or not a number.
	SentinelNA = "N/A"
	// SentinelLoading is the alternative sentinel used while data is being fetched.
	SentinelLoading = "Loading..."

	compactThreshold = 1_000_000
)

var printer = message.NewPrinter(language.AmericanEnglish)

type compactUnit struct {
	scale  float64
	suffix string
}

// Largest first.
var compactUnits = []compactUnit{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

type options struct {
	sentinel string
}

// Option tunes Currency.
type Option func(*options)

// WithSentinel replaces the string returned for NaN or infinite input.
func WithSentinel(s string) Option {
	return func(o *options) { o.sentinel = s }
}

func invalid(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Currency renders value as USD. Values above one million in magnitude use compact
// notation ("$1.5M"), everything else uses two fraction digits ("$42.50").
func Currency(value float64, opts ...Option) string {
	o := options{sentinel: SentinelNA}
	for _, opt := range opts {
		opt(&o)
	}
	if invalid(value) {
		return o.sentinel
	}

	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := math.Abs(value)
	if abs > compactThreshold {
		return sign + "$" + compact(abs, 2)
	}
	body := groupFixed(decimal.NewFromFloat(abs).StringFixed(2))
	if body == "0.00" {
		sign = ""
	}
	return sign + "$" + body
}

// CompactNumber follows the Currency threshold without the currency symbol and with at
// most one fraction digit.
func CompactNumber(value float64) string {
	if invalid(value) {
		return SentinelNA
	}
	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := math.Abs(value)
	var body string
	if abs > compactThreshold {
		body = compact(abs, 1)
	} else {
		body = groupFixed(decimal.NewFromFloat(abs).Round(1).String())
	}
	if body == "0" {
		sign = ""
	}
	return sign + body
}

// Percentage renders value with two decimals and a trailing "%". With withSign set,
// non-negative values get a leading "+".
func Percentage(value float64, withSign bool) string {
	if invalid(value) {
		return SentinelNA
	}
	s := decimal.NewFromFloat(value).StringFixed(2)
	if withSign && value >= 0 {
		s = "+" + s
	}
	return s + "%"
}

// GasPrice renders a gas price with three decimals below 1 and none otherwise.
func GasPrice(value float64, unit string) string {
	if invalid(value) {
		return SentinelNA
	}
	places := int32(0)
	if value < 1 {
		places = 3
	}
	return decimal.NewFromFloat(value).StringFixed(places) + " " + unit
}

// ShortenAddress keeps the first six and last four characters of addr.
func ShortenAddress(addr string) (string, error) {
	if len(addr) < 10 {
		return "", &entity.InvalidInputError{Field: "address", Reason: "must be at least 10 characters"}
	}
	return addr[:6] + "..." + addr[len(addr)-4:], nil
}

// compact scales abs into the largest fitting unit, rounds to maxFrac digits and
// moves up a unit when rounding reaches 1000 (999.999M -> 1B).
func compact(abs float64, maxFrac int32) string {
	idx := len(compactUnits)
	for i, u := range compactUnits {
		if abs >= u.scale {
			idx = i
			break
		}
	}
	if idx == len(compactUnits) {
		return decimal.NewFromFloat(abs).Round(maxFrac).String()
	}

	thousand := decimal.NewFromInt(1000)
	scaled := decimal.NewFromFloat(abs).Div(decimal.NewFromFloat(compactUnits[idx].scale)).Round(maxFrac)
	for idx > 0 && scaled.GreaterThanOrEqual(thousand) {
		idx--
		scaled = scaled.Div(thousand).Round(maxFrac)
	}
	// Compact output is not grouped: 1000T, not 1,000T.
	return scaled.String() + compactUnits[idx].suffix
}

var maxGroupable = decimal.NewFromInt(math.MaxInt64)

// groupFixed inserts en-US thousands separators into a plain decimal string.
func groupFixed(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, err := decimal.NewFromString(intPart)
	if err != nil {
		return s
	}
	var grouped string
	if n.LessThanOrEqual(maxGroupable) {
		grouped = printer.Sprintf("%d", n.IntPart())
	} else {
		grouped = groupDigits(intPart)
	}
	if hasFrac {
		return grouped + "." + frac
	}
	return grouped
}

// groupDigits groups an unsigned digit string of any length.
func groupDigits(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
