package model

import "time"

// SourceType classifies the kind of publication behind a source
type SourceType string

const (
	SourceAcademic     SourceType = "academic"     // Journals, preprint servers, university publishers
	SourceNews         SourceType = "news"         // Wire services and major outlets
	SourceGovernment   SourceType = "government"   // Agencies, statistics offices, official records
	SourceEncyclopedia SourceType = "encyclopedia" // General reference works
)

// ValidSourceType reports whether t is a member of the source type enumeration.
func ValidSourceType(t SourceType) bool {
	switch t {
	case SourceAcademic, SourceNews, SourceGovernment, SourceEncyclopedia:
		return true
	}
	return false
}

// AccessMethod records how a source is reached. Informational only, it
// never participates in scoring.
type AccessMethod string

const (
	AccessAPI    AccessMethod = "api"
	AccessScrape AccessMethod = "scrape"
	AccessManual AccessMethod = "manual"
)

// Source is a catalogued trusted origin. Sources are immutable once created;
// the URL acts as the stable key.
type Source struct {
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Type        SourceType   `json:"type"`
	Credibility float64      `json:"credibility"`       // Static trust score, 0-100
	Domains     []string     `json:"domains"`           // Domains this source is authoritative for
	Access      AccessMethod `json:"access,omitempty"`
}

// Evidence is one piece of supporting or contradicting material retrieved
// for a specific claim. It has no identity beyond the claim that owns it.
type Evidence struct {
	SourceName  string     `json:"source_name"`
	SourceType  SourceType `json:"source_type"`
	Credibility float64    `json:"credibility"` // Base credibility of the source, 0-100
	Relevance   float64    `json:"relevance"`   // Topical match to the claim, 0-100, recomputed per claim
	Excerpt     string     `json:"excerpt"`
	URL         string     `json:"url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
