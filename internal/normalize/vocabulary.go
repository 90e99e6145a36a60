package normalize

import "strings"

// skillVocabulary is the curated list of technology terms recognized by the
// token extractor. Matching against it is case-insensitive. The list favors
// precision over recall: generic English words would corrupt the coverage
// percentage downstream, missing niche tools only lowers it slightly.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "golang",
	"php", "ruby", "rust", "kotlin", "swift", "scala", "perl", "haskell",
	"react", "angular", "vue", "svelte", "node.js", "next.js", "express",
	"django", "flask", "fastapi", "spring", "rails", "laravel", "symfony",
	"html", "css", "sass", "tailwind", "bootstrap",
	"sql", "postgresql", "postgres", "mysql", "mariadb", "sqlite",
	"mongodb", "redis", "cassandra", "elasticsearch", "neo4j", "dynamodb",
	"docker", "kubernetes", "terraform", "ansible", "helm", "vagrant",
	"jenkins", "gitlab", "github actions", "circleci", "argocd",
	"aws", "azure", "gcp", "heroku", "cloudflare",
	"kafka", "rabbitmq", "celery", "grpc", "graphql", "protobuf",
	"linux", "bash", "git", "nginx", "apache",
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"matplotlib", "jupyter", "spark", "hadoop", "airflow", "dbt",
	"machine learning", "deep learning", "data science", "computer vision",
	"natural language processing", "data engineering",
	"prometheus", "grafana", "datadog", "opentelemetry",
	"selenium", "cypress", "playwright", "junit", "pytest",
	"microservices", "rest api", "ci/cd", "devops", "agile", "scrum",
	"tableau", "power bi", "excel", "matlab",
	"oauth", "jwt", "websocket", "webrtc",
}

// caseSensitiveSkills are names that collide with common English words and
// are only recognized when written with their canonical casing.
var caseSensitiveSkills = []string{"Go", "R", "C"}

var vocabularyIndex = buildVocabularyIndex()

type vocabulary struct {
	single map[string]bool // single-word entries, lower-cased
	multi  []string        // multi-word entries, lower-cased
}

func buildVocabularyIndex() *vocabulary {
	v := &vocabulary{single: make(map[string]bool, len(skillVocabulary))}
	for _, entry := range skillVocabulary {
		lower := strings.ToLower(entry)
		if strings.Contains(lower, " ") {
			v.multi = append(v.multi, lower)
			continue
		}
		v.single[lower] = true
	}
	return v
}

func inVocabulary(token string) bool {
	return vocabularyIndex.single[strings.ToLower(token)]
}

func isCaseSensitiveSkill(token string) bool {
	for _, s := range caseSensitiveSkills {
		if token == s {
			return true
		}
	}
	return false
}
