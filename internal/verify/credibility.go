package verify

import (
	"net/url"
	"strings"

	"detector-backend/internal/search"
)

// DefaultCredibleDomains is the maintained allow-list of reference,
// education, government, and major-outlet domains. ".edu" and ".gov" match
// any host under those TLDs.
var DefaultCredibleDomains = []string{
	"wikipedia.org",
	"britannica.com",
	"nature.com",
	"sciencedirect.com",
	"ncbi.nlm.nih.gov",
	"jstor.org",
	"scholar.google.com",
	"reuters.com",
	"apnews.com",
	"bbc.com",
	"bbc.co.uk",
	"nytimes.com",
	"theguardian.com",
	"washingtonpost.com",
	"economist.com",
	".edu",
	".gov",
}

// AnalyzeCredibility partitions hit domains into credible vs questionable
// against the allow-list; score is the credible share on a 0..100 scale.
// A nil allowList means DefaultCredibleDomains.
func AnalyzeCredibility(hits []search.Hit, allowList []string) CredibilityAnalysis {
	if allowList == nil {
		allowList = DefaultCredibleDomains
	}
	analysis := CredibilityAnalysis{Credible: []string{}, Questionable: []string{}}
	if len(hits) == 0 {
		return analysis
	}

	for _, hit := range hits {
		domain := hitDomain(hit)
		if domain == "" {
			continue
		}
		if domainCredible(domain, allowList) {
			analysis.Credible = append(analysis.Credible, domain)
		} else {
			analysis.Questionable = append(analysis.Questionable, domain)
		}
	}

	total := len(analysis.Credible) + len(analysis.Questionable)
	if total == 0 {
		return analysis
	}
	analysis.Score = float64(len(analysis.Credible)) / float64(total) * 100
	return analysis
}

func hitDomain(hit search.Hit) string {
	if hit.DisplayLink != "" {
		return strings.ToLower(hit.DisplayLink)
	}
	parsed, err := url.Parse(hit.Link)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

func domainCredible(domain string, allowList []string) bool {
	domain = strings.TrimPrefix(domain, "www.")
	for _, allowed := range allowList {
		if strings.HasPrefix(allowed, ".") {
			if strings.HasSuffix(domain, allowed) {
				return true
			}
			continue
		}
		if domain == allowed || strings.HasSuffix(domain, "."+allowed) {
			return true
		}
	}
	return false
}
