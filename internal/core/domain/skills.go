package domain

import "regexp"

// skillPatterns are the tech keywords detected in posting text.
// Word-boundary matching keeps "Java" from firing inside "JavaScript".
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bPython\b`),
	regexp.MustCompile(`(?i)\bJava\b`),
	regexp.MustCompile(`(?i)\bJavaScript\b`),
	regexp.MustCompile(`(?i)\bTypeScript\b`),
	regexp.MustCompile(`(?i)\bGo(?:lang)?\b`),
	regexp.MustCompile(`(?i)\bReact\b`),
	regexp.MustCompile(`(?i)\bAngular\b`),
	regexp.MustCompile(`(?i)\bVue\.js\b`),
	regexp.MustCompile(`(?i)\bNode\.js\b`),
	regexp.MustCompile(`(?i)\bSQL\b`),
	regexp.MustCompile(`(?i)\bMongoDB\b`),
	regexp.MustCompile(`(?i)\bPostgreSQL\b`),
	regexp.MustCompile(`(?i)\bMySQL\b`),
	regexp.MustCompile(`(?i)\bAWS\b`),
	regexp.MustCompile(`(?i)\bAzure\b`),
	regexp.MustCompile(`(?i)\bGCP\b`),
	regexp.MustCompile(`(?i)\bDocker\b`),
	regexp.MustCompile(`(?i)\bKubernetes\b`),
	regexp.MustCompile(`(?i)\bGit\b`),
	regexp.MustCompile(`(?i)\bCI/CD\b`),
	regexp.MustCompile(`(?i)\bAgile\b`),
	regexp.MustCompile(`(?i)\bScrum\b`),
	regexp.MustCompile(`(?i)\bMachine Learning\b`),
	regexp.MustCompile(`(?i)\bData Science\b`),
	regexp.MustCompile(`(?i)\bFastAPI\b`),
	regexp.MustCompile(`(?i)\bDjango\b`),
	regexp.MustCompile(`(?i)\bFlask\b`),
	regexp.MustCompile(`(?i)\bSpring\b`),
}

// ExtractSkills returns the distinct tech keywords found in text, in
// pattern-table order.
func ExtractSkills(text string) []string {
	var skills []string
	for _, p := range skillPatterns {
		if match := p.FindString(text); match != "" {
			skills = append(skills, match)
		}
	}
	return skills
}
