package validation

import "github.com/jmehdipour/lead-gateway/internal/util"

const cpfLen = 11

// ValidDocument checks a CPF number. Formatting characters are ignored.
func ValidDocument(raw string) bool {
	cpf := util.StripNonDigits(raw)
	if len(cpf) != cpfLen || allSame(cpf) {
		return false
	}

	d := make([]int, cpfLen)
	for i := 0; i < cpfLen; i++ {
		d[i] = int(cpf[i] - '0')
	}

	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

// checkDigit weights digits from top down to 2 and reduces (sum*10) mod 11, folding 10 to 0.
func checkDigit(digits []int, top int) int {
	sum := 0
	for i, v := range digits {
		sum += v * (top - i)
	}

	r := (sum * 10) % 11
	if r >= 10 {
		r = 0
	}
	return r
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
