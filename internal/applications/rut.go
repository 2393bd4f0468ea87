package applications

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeRUT validates a Chilean RUT and returns it as "12345678-5".
// Dots, spaces and a lowercase k are accepted on input.
func NormalizeRUT(raw string) (string, error) {
	cleaned := strings.NewReplacer(".", "", " ", "", "-", "").Replace(strings.TrimSpace(raw))
	cleaned = strings.ToUpper(cleaned)
	if len(cleaned) < 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidRUT, raw)
	}

	body, dv := cleaned[:len(cleaned)-1], cleaned[len(cleaned)-1:]
	body = strings.TrimLeft(body, "0")
	if body == "" || len(body) > 8 || !allDigits(body) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRUT, raw)
	}
	n, err := strconv.Atoi(body)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidRUT, raw)
	}
	if checkDigit(n) != dv {
		return "", fmt.Errorf("%w: %q", ErrInvalidRUT, raw)
	}
	return body + "-" + dv, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// checkDigit computes the modulo 11 verifier of a RUT body.
func checkDigit(n int) string {
	sum, factor := 0, 2
	for ; n > 0; n /= 10 {
		sum += (n % 10) * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(r)
	}
}
