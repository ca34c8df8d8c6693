package extract

import (
	"regexp"
	"strings"
)

// Common technologies recognized by the deterministic scanner, keyed by
// tech stack category.
var knownTechnologies = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "typescript", "c", "c++", "c#", "ruby", "php", "swift", "kotlin",
		"go", "rust", "scala", "r", "matlab", "sql", "html", "css", "bash", "powershell",
	},
	"frameworks": {
		"react", "angular", "vue", "django", "flask", "spring", "express", "node.js", "asp.net",
		"ruby on rails", "laravel", "symfony", "tensorflow", "pytorch", "keras", "scikit-learn",
		"pandas", "numpy", "matplotlib", "seaborn", "spark", "hadoop", "flink",
	},
	"databases": {
		"mysql", "postgresql", "mongodb", "sqlite", "oracle", "redis", "cassandra", "dynamodb",
		"firebase", "elasticsearch", "neo4j", "influxdb", "couchdb",
	},
	"tools": {
		"git", "docker", "kubernetes", "jenkins", "aws", "azure", "gcp", "terraform", "ansible",
		"jira", "confluence", "slack", "ci/cd", "agile", "scrum", "jupyter", "tableau", "power bi",
	},
}

var techRegexes = buildTechRegexes()

func buildTechRegexes() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(knownTechnologies))
	for cat, techs := range knownTechnologies {
		res := make([]*regexp.Regexp, len(techs))
		for i, tech := range techs {
			res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(tech) + `\b`)
		}
		out[cat] = res
	}
	return out
}

// TechStack scans free text for known technologies and groups matches into
// the four fixed categories. Every category key is always present.
func TechStack(text string) map[string][]string {
	lower := strings.ToLower(text)
	result := map[string][]string{
		"programming_languages": {},
		"frameworks":            {},
		"databases":             {},
		"tools":                 {},
	}
	for cat, techs := range knownTechnologies {
		for i, tech := range techs {
			if techRegexes[cat][i].MatchString(lower) {
				result[cat] = append(result[cat], tech)
			}
		}
	}
	return result
}
