package service

import (
	"errors"
	"strconv"
	"strings"
)

// ParseIntPrefix reads the integer at the start of s, ignoring whatever
// follows it: "12.7" gives 12 and "3kg" gives 3. ok is false when s does not
// start with a digit after optional spaces and sign. Values beyond the int
// range saturate.
func ParseIntPrefix(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	end := signLen(s)
	start := end
	end = skipDigits(s, end)
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// ParseFloatPrefix reads the decimal number at the start of s, with an
// optional fraction and exponent: "3.5abc" gives 3.5. Out of range values come
// back as ±Inf for the caller to reject.
func ParseFloatPrefix(s string) (f float64, ok bool) {
	s = strings.TrimSpace(s)
	end := signLen(s)
	intEnd := skipDigits(s, end)
	digits := intEnd - end
	end = intEnd
	if end < len(s) && s[end] == '.' {
		fracEnd := skipDigits(s, end+1)
		digits += fracEnd - end - 1
		end = fracEnd
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expStart := end + 1 + signLen(s[end+1:])
		if expEnd := skipDigits(s, expStart); expEnd > expStart {
			end = expEnd
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func signLen(s string) int {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return 1
	}
	return 0
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
