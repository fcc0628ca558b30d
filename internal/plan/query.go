package plan

import (
	"math"
	"strconv"

	"github.com/planboard/planboard/internal/catalog"
)

// DistroAreas names the distribution areas, indexed by distro digit - 1.
var DistroAreas = [...]string{
	"Natural Sciences",
	"Formal Studies",
	"Social and Behavioral Sciences",
	"Historical Studies",
	"Ethics and Values",
	"Literature and Fine Arts",
	"Interdisciplinary Studies",
}

// DistroGroup lists the course IDs in a plan that satisfy one distribution area.
type DistroGroup struct {
	Digit     int      `json:"digit"`
	Area      string   `json:"area"`
	CourseIDs []string `json:"courseIds"`
}

// round2 rounds half-up at the hundredths digit.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// courseUnits parses a course's units string. Unparsable values count as zero.
func courseUnits(c catalog.Course) float64 {
	units, err := strconv.ParseFloat(c.Units, 64)
	if err != nil {
		return 0
	}
	return units
}

func sumUnits(courses []catalog.Course) float64 {
	var total float64
	for _, c := range courses {
		total += courseUnits(c)
	}
	return total
}

// QuarterCredits returns the unit total of one quarter's course list,
// rounded to two decimal places.
func QuarterCredits(courses []catalog.Course) float64 {
	return round2(sumUnits(courses))
}

// TotalCredits returns the unit total of every course in the grid plus the
// for-credit bookmarks, rounded to two decimal places.
func TotalCredits(p *Plan) float64 {
	var total float64
	for _, year := range p.Courses {
		for _, quarter := range year {
			total += sumUnits(quarter)
		}
	}
	total += sumUnits(p.Bookmarks.ForCredit.Courses())
	return round2(total)
}

// ExtraCredits returns the unit total of the for-credit bookmarks alone,
// rounded to two decimal places.
func ExtraCredits(p *Plan) float64 {
	return round2(sumUnits(p.Bookmarks.ForCredit.Courses()))
}

// FindDuplicate scans the grid for a course sharing the candidate's ID and
// returns the first location found, or nil.
func FindDuplicate(course catalog.Course, p *Plan) *Location {
	for y, year := range p.Courses {
		for q, quarter := range year {
			for _, existing := range quarter {
				if existing.ID == course.ID {
					return &Location{Year: y, Quarter: q}
				}
			}
		}
	}
	return nil
}

// DistributionFulfillment groups the grid's course IDs by the distribution
// areas they satisfy. One linear pass: a course with distros "25" lands in
// both the Formal Studies and Ethics and Values groups.
func DistributionFulfillment(p *Plan) []DistroGroup {
	groups := make([]DistroGroup, len(DistroAreas))
	for i, area := range DistroAreas {
		groups[i] = DistroGroup{Digit: i + 1, Area: area}
	}

	for _, year := range p.Courses {
		for _, quarter := range year {
			for _, course := range quarter {
				if course.Distros == nil {
					continue
				}
				for _, digit := range *course.Distros {
					i := int(digit-'0') - 1
					if i < 0 || i >= len(groups) {
						continue
					}
					groups[i].CourseIDs = append(groups[i].CourseIDs, course.ID)
				}
			}
		}
	}

	return groups
}
