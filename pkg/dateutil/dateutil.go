package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// ServicePeriod returns the completed years and the remaining completed
// months between joining and leaving. Partial months are dropped.
func ServicePeriod(joinDate, leaveDate time.Time) (years, months int) {
	if !leaveDate.After(joinDate) {
		return 0, 0
	}
	total := (leaveDate.Year()-joinDate.Year())*12 + int(leaveDate.Month()-joinDate.Month())
	if leaveDate.Day() < joinDate.Day() {
		total--
	}
	if total < 0 {
		total = 0
	}
	return total / 12, total % 12
}

// ParseDate parses an ISO (2006-01-02) date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
