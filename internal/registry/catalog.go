package registry

import "github.com/ppiankov/veracity/internal/model"

// builtinCatalogue returns the curated source list the registry starts
// from. Scores are static editorial judgments: top-tier academic and
// government sources sit at 95-98, general-purpose reference and fact
// sites at 75-88.
func builtinCatalogue() []model.Source {
	return []model.Source{
		// Physics
		{Name: "arXiv", URL: "https://arxiv.org", Type: model.SourceAcademic, Credibility: 95, Domains: []string{"physics", "statistics"}, Access: model.AccessAPI},
		{Name: "Physical Review Letters", URL: "https://journals.aps.org/prl", Type: model.SourceAcademic, Credibility: 98, Domains: []string{"physics"}, Access: model.AccessScrape},
		{Name: "NIST", URL: "https://www.nist.gov", Type: model.SourceGovernment, Credibility: 97, Domains: []string{"physics", "statistics"}, Access: model.AccessAPI},
		{Name: "CERN Document Server", URL: "https://cds.cern.ch", Type: model.SourceAcademic, Credibility: 96, Domains: []string{"physics"}, Access: model.AccessAPI},

		// Biology
		{Name: "PubMed", URL: "https://pubmed.ncbi.nlm.nih.gov", Type: model.SourceAcademic, Credibility: 97, Domains: []string{"biology"}, Access: model.AccessAPI},
		{Name: "Nature", URL: "https://www.nature.com", Type: model.SourceAcademic, Credibility: 96, Domains: []string{"biology", "physics"}, Access: model.AccessScrape},
		{Name: "CDC", URL: "https://www.cdc.gov", Type: model.SourceGovernment, Credibility: 95, Domains: []string{"biology"}, Access: model.AccessScrape},
		{Name: "WHO", URL: "https://www.who.int", Type: model.SourceGovernment, Credibility: 95, Domains: []string{"biology", "statistics"}, Access: model.AccessAPI},

		// History
		{Name: "Library of Congress", URL: "https://www.loc.gov", Type: model.SourceGovernment, Credibility: 96, Domains: []string{"history"}, Access: model.AccessAPI},
		{Name: "British Library", URL: "https://www.bl.uk", Type: model.SourceGovernment, Credibility: 95, Domains: []string{"history"}, Access: model.AccessScrape},
		{Name: "JSTOR", URL: "https://www.jstor.org", Type: model.SourceAcademic, Credibility: 94, Domains: []string{"history", "statistics"}, Access: model.AccessAPI},
		{Name: "Encyclopaedia Britannica", URL: "https://www.britannica.com", Type: model.SourceEncyclopedia, Credibility: 88, Domains: []string{"history", "general"}, Access: model.AccessScrape},

		// Statistics
		{Name: "World Bank Open Data", URL: "https://data.worldbank.org", Type: model.SourceGovernment, Credibility: 95, Domains: []string{"statistics"}, Access: model.AccessAPI},
		{Name: "US Census Bureau", URL: "https://www.census.gov", Type: model.SourceGovernment, Credibility: 96, Domains: []string{"statistics"}, Access: model.AccessAPI},
		{Name: "Our World in Data", URL: "https://ourworldindata.org", Type: model.SourceAcademic, Credibility: 90, Domains: []string{"statistics", "general"}, Access: model.AccessScrape},

		// General
		{Name: "Wikipedia", URL: "https://en.wikipedia.org", Type: model.SourceEncyclopedia, Credibility: 78, Domains: []string{"general"}, Access: model.AccessAPI},
		{Name: "Reuters", URL: "https://www.reuters.com", Type: model.SourceNews, Credibility: 85, Domains: []string{"general"}, Access: model.AccessScrape},
		{Name: "Associated Press", URL: "https://apnews.com", Type: model.SourceNews, Credibility: 85, Domains: []string{"general"}, Access: model.AccessScrape},
		{Name: "Snopes", URL: "https://www.snopes.com", Type: model.SourceNews, Credibility: 80, Domains: []string{"general"}, Access: model.AccessScrape},
		{Name: "FactCheck.org", URL: "https://www.factcheck.org", Type: model.SourceNews, Credibility: 82, Domains: []string{"general"}, Access: model.AccessScrape},
	}
}
