package plan

import "fmt"

var quarterNames = [...]string{"fall", "winter", "spring", "summer"}

var yearNames = [...]string{
	"first year", "second year", "third year", "fourth year", "fifth year",
	"sixth year", "seventh year", "eighth year", "ninth year", "tenth year",
}

// QuarterName returns the lowercase display name of a quarter index.
func QuarterName(q int) string {
	if q < 0 || q >= len(quarterNames) {
		return fmt.Sprintf("quarter %d", q)
	}
	return quarterNames[q]
}

// YearName returns the lowercase display name of a year index.
func YearName(y int) string {
	if y < 0 || y >= len(yearNames) {
		return fmt.Sprintf("year %d", y+1)
	}
	return yearNames[y]
}
