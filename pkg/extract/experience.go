package extract

import (
	"regexp"
	"strconv"
	"time"
)

// maxPlausibleYears caps totals derived from date ranges.
const maxPlausibleYears = 50

// Explicit "years of experience" phrasings, tried in order.
var explicitYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(?i)experience\s*:\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\d+)\s*\+\s*years`),
	regexp.MustCompile(`(?i)over\s*(\d+(?:\.\d+)?)\s*years`),
	regexp.MustCompile(`(?i)more\s*than\s*(\d+(?:\.\d+)?)\s*years`),
}

// year–year ranges found in resume-like text: "2020 – 2023", "2020-2023",
// "2020 to 2023", "Jan 2020 - Dec 2023".
var dateRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})\s*–\s*(\d{4})`),
	regexp.MustCompile(`(\d{4})\s*-\s*(\d{4})`),
	regexp.MustCompile(`(?i)(\d{4})\s*to\s*(\d{4})`),
	regexp.MustCompile(`(?i)([A-Za-z]{3}\s*\d{4})\s*–\s*([A-Za-z]{3}\s*\d{4})`),
	regexp.MustCompile(`(?i)([A-Za-z]{3}\s*\d{4})\s*-\s*([A-Za-z]{3}\s*\d{4})`),
}

var yearDigits = regexp.MustCompile(`\d{4}`)

// YearsOfExperience scans free text for an explicit years-of-experience
// statement, falling back to summing positive-length year ranges from work
// history. The boolean is false when nothing matched; callers must check
// it rather than compare the value against zero, since a derived total of
// zero also means "not found".
func YearsOfExperience(text string) (float64, bool) {
	for _, pat := range explicitYearPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return v, true
			}
		}
	}

	total := 0
	currentYear := time.Now().Year()
	for _, pat := range dateRangePatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			start := yearDigits.FindString(m[1])
			end := yearDigits.FindString(m[2])
			if start == "" || end == "" {
				continue
			}
			startYear, err1 := strconv.Atoi(start)
			endYear, err2 := strconv.Atoi(end)
			if err1 != nil || err2 != nil {
				continue
			}
			if endYear > currentYear {
				endYear = currentYear
			}
			if years := endYear - startYear; years > 0 {
				total += years
			}
		}
	}

	if total > 0 {
		if total > maxPlausibleYears {
			total = maxPlausibleYears
		}
		return float64(total), true
	}
	return 0, false
}
