package validation

import (
	"regexp"
	"strconv"
	"time"
)

const (
	MinAge = 18
	MaxAge = 120
)

var birthDatePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ParseBirthDate parses DD/MM/YYYY and rejects dates that do not exist on the calendar.
func ParseBirthDate(s string) (time.Time, bool) {
	m := birthDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}

	return t, true
}

// Age returns completed years between birth and now. A birthday falling on now counts.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// ValidBirthDate reports whether s is a real DD/MM/YYYY date of someone aged MinAge..MaxAge.
func (v *Validator) ValidBirthDate(s string) bool {
	birth, ok := ParseBirthDate(s)
	if !ok {
		return false
	}

	age := Age(birth, v.now())
	return age >= MinAge && age <= MaxAge
}
