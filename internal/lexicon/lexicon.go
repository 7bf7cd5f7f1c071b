// Package lexicon holds the static reference data used to analyze job
// descriptions and résumés: skill terms, action verbs and display names.
// Every table is read-only after package initialization.
package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// category is a named group of technical skill terms
type category struct {
	name  string
	terms []string
}

// technicalSkills lists technical terms by category. Iteration order is the
// discovery order of extracted technical keywords.
var technicalSkills = []category{
	{name: "programming", terms: []string{
		"javascript", "python", "java", "c++", "c#", "ruby", "php", "swift", "kotlin", "go", "rust",
		"typescript", "scala", "r", "matlab", "perl", "html", "css", "sql", "nosql", "graphql",
	}},
	{name: "frameworks", terms: []string{
		"react", "angular", "vue", "node.js", "express", "django", "flask", "spring", "rails", "laravel",
		".net", "asp.net", "next.js", "nuxt", "gatsby", "svelte", "bootstrap", "tailwind", "jquery",
		"redux", "fastapi",
	}},
	{name: "databases", terms: []string{
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "oracle", "sql server", "sqlite",
		"dynamodb", "cassandra", "firebase", "supabase", "mariadb",
	}},
	{name: "cloud", terms: []string{
		"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean", "cloudflare", "vercel",
		"netlify", "kubernetes", "docker", "terraform", "ansible", "jenkins", "circleci", "github actions",
	}},
	{name: "tools", terms: []string{
		"git", "github", "gitlab", "bitbucket", "jira", "confluence", "slack", "figma", "sketch", "adobe",
		"photoshop", "illustrator", "vscode", "intellij", "postman", "swagger", "webpack", "babel", "npm",
		"yarn",
	}},
	{name: "data", terms: []string{
		"machine learning", "deep learning", "artificial intelligence", "ai", "ml", "data science",
		"data analysis", "data engineering", "big data", "hadoop", "spark", "tableau", "power bi",
		"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "nlp", "computer vision",
	}},
	{name: "methodologies", terms: []string{
		"agile", "scrum", "kanban", "waterfall", "devops", "ci/cd", "tdd", "bdd", "microservices",
		"rest", "api", "soap", "graphql", "oauth", "jwt",
	}},
}

// softSkills lists soft-skill terms
var softSkills = []string{
	"leadership", "communication", "teamwork", "collaboration", "problem-solving", "problem solving",
	"critical thinking", "analytical", "creative", "creativity", "adaptable", "adaptability",
	"time management", "organized", "organization", "detail-oriented", "attention to detail",
	"self-motivated", "motivated", "proactive", "initiative", "interpersonal", "presentation",
	"negotiation", "conflict resolution", "decision-making", "strategic thinking", "mentoring",
	"coaching", "customer service", "client-facing", "stakeholder management", "cross-functional",
}

// actionVerbs lists verbs that make a strong opening for a bullet point
var actionVerbs = []string{
	"achieved", "accelerated", "accomplished", "administered", "advanced", "analyzed", "architected",
	"automated", "built", "collaborated", "conceptualized", "configured", "consolidated", "coordinated",
	"created", "decreased", "delivered", "deployed", "designed", "developed", "directed", "drove",
	"enabled", "engineered", "enhanced", "established", "executed", "expanded", "facilitated",
	"generated", "grew", "guided", "identified", "implemented", "improved", "increased", "initiated",
	"innovated", "integrated", "launched", "led", "leveraged", "managed", "mentored", "migrated",
	"modernized", "monitored", "negotiated", "optimized", "orchestrated", "organized", "oversaw",
	"partnered", "pioneered", "planned", "presented", "prioritized", "produced", "programmed",
	"reduced", "refactored", "redesigned", "reengineered", "resolved", "restructured", "revamped",
	"scaled", "simplified", "spearheaded", "standardized", "streamlined", "strengthened", "supervised",
	"tested", "trained", "transformed", "troubleshot", "unified", "upgraded",
}

// verbRule maps a keyword found in a bullet to the action verb that should open it
type verbRule struct {
	keyword string
	verb    string
}

// actionVerbRules is scanned in order; the first keyword contained in the
// lowercase bullet wins.
var actionVerbRules = []verbRule{
	{keyword: "team", verb: "Collaborated"},
	{keyword: "develop", verb: "Developed"},
	{keyword: "manage", verb: "Managed"},
	{keyword: "create", verb: "Created"},
	{keyword: "design", verb: "Designed"},
	{keyword: "improve", verb: "Improved"},
	{keyword: "analyze", verb: "Analyzed"},
	{keyword: "implement", verb: "Implemented"},
	{keyword: "lead", verb: "Led"},
	{keyword: "test", verb: "Tested"},
}

// DefaultActionVerb is used when no rule matches
const DefaultActionVerb = "Executed"

// TechnicalTerms returns every technical term in discovery order. The slice
// is freshly allocated on each call.
func TechnicalTerms() []string {
	n := 0
	for _, c := range technicalSkills {
		n += len(c.terms)
	}
	terms := make([]string, 0, n)
	for _, c := range technicalSkills {
		terms = append(terms, c.terms...)
	}
	return terms
}

// SoftSkillTerms returns a copy of the soft-skill terms in discovery order
func SoftSkillTerms() []string {
	return append([]string(nil), softSkills...)
}

// ActionVerbFor returns the verb of the first rule whose keyword appears in
// text, or DefaultActionVerb
func ActionVerbFor(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range actionVerbRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.verb
		}
	}
	return DefaultActionVerb
}

// skillNormalizations maps raw lowercase terms to their display form
var skillNormalizations = map[string]string{
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"node.js":    "Node.js",
	"react":      "React",
	"angular":    "Angular",
	"vue":        "Vue.js",
	"next.js":    "Next.js",
	"mongodb":    "MongoDB",
	"postgresql": "PostgreSQL",
	"mysql":      "MySQL",
	"nosql":      "NoSQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"azure":      "Azure",
	"docker":     "Docker",
	"kubernetes": "Kubernetes",
	"ci/cd":      "CI/CD",
	"rest":       "REST",
	"api":        "API",
	"sql":        "SQL",
	"html":       "HTML",
	"css":        "CSS",
	"git":        "Git",
	"ai":         "AI",
	"ml":         "ML",
	"devops":     "DevOps",
	"graphql":    "GraphQL",
	"python":     "Python",
	"java":       "Java",
	"flask":      "Flask",
	"django":     "Django",
	"fastapi":    "FastAPI",
}

// NormalizeSkill returns the display form of a skill term. Terms without a
// table entry are title-cased word by word ("time management" -> "Time Management").
func NormalizeSkill(term string) string {
	lower := strings.ToLower(term)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	words := strings.Fields(term)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// HasActionVerb reports whether the first word of text starts with a known
// action verb, case-insensitively. Matching is by prefix, so "Built," and
// "Implemented:" both count.
func HasActionVerb(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}

	first := words[0]
	for _, verb := range actionVerbs {
		if strings.HasPrefix(first, verb) {
			return true
		}
	}
	return false
}
