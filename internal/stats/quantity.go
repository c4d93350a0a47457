package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// Quantity is a parsed free-text amount such as "1 1/2 cups".
type Quantity struct {
	Amount float64
	Unit   string
}

var quantityRe = regexp.MustCompile(`^\s*(?:(\d+)\s+(\d+)\s*/\s*(\d+)|(\d+)\s*/\s*(\d+)|(\d*\.?\d+))\s*(.*?)\s*$`)

// ParseQuantity understands a number, a fraction "a/b" or a mixed number
// "n a/b", followed by an optional unit. The amount must be positive.
func ParseQuantity(s string) (Quantity, bool) {
	m := quantityRe.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, false
	}

	var amount float64
	switch {
	case m[1] != "":
		whole, _ := strconv.ParseFloat(m[1], 64)
		frac, ok := fraction(m[2], m[3])
		if !ok {
			return Quantity{}, false
		}
		amount = whole + frac
	case m[4] != "":
		frac, ok := fraction(m[4], m[5])
		if !ok {
			return Quantity{}, false
		}
		amount = frac
	default:
		v, err := strconv.ParseFloat(m[6], 64)
		if err != nil {
			return Quantity{}, false
		}
		amount = v
	}
	if amount <= 0 {
		return Quantity{}, false
	}
	return Quantity{Amount: amount, Unit: NormalizeUnit(m[7])}, true
}

func fraction(num, den string) (float64, bool) {
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// NormalizeUnit lower-cases a unit and drops a plural "s", so "Cups" and
// "cup" compare equal.
func NormalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	u = strings.TrimSuffix(u, ".")
	if len(u) > 2 && strings.HasSuffix(u, "s") && !strings.HasSuffix(u, "ss") {
		u = u[:len(u)-1]
	}
	return u
}
