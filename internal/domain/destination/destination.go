// Package destination defines structured destination profiles and comparisons.
package destination

import "encoding/json"

// Record is a structured destination profile keyed by a stable slug.
// Section fields carry the store's JSON values verbatim; only records flagged
// enabled are visible to search and listing operations.
type Record struct {
	Slug         string `json:"slug"`
	CountryName  string `json:"country_name"`
	Flag         string `json:"flag,omitempty"`
	Region       string `json:"region,omitempty"`
	Language     string `json:"language,omitempty"`
	HeroTitle    string `json:"hero_title,omitempty"`
	HeroSubtitle string `json:"hero_subtitle,omitempty"`
	HeroImageURL string `json:"hero_image_url,omitempty"`
	Featured     bool   `json:"featured"`
	Priority     int    `json:"priority"`

	QuickFacts   json.RawMessage `json:"quick_facts,omitempty"`
	Highlights   json.RawMessage `json:"highlights,omitempty"`
	Visas        json.RawMessage `json:"visas,omitempty"`
	CostOfLiving json.RawMessage `json:"cost_of_living,omitempty"`
	JobMarket    json.RawMessage `json:"job_market,omitempty"`
	FAQs         json.RawMessage `json:"faqs,omitempty"`
}

// Summary is the compact form used in listings.
type Summary struct {
	Slug         string `json:"slug"`
	CountryName  string `json:"country_name"`
	Flag         string `json:"flag,omitempty"`
	Region       string `json:"region,omitempty"`
	HeroSubtitle string `json:"hero_subtitle,omitempty"`
	Featured     bool   `json:"featured"`
	Priority     int    `json:"priority"`
}

// Summary returns the listing form of the record.
func (r *Record) Summary() Summary {
	return Summary{
		Slug:         r.Slug,
		CountryName:  r.CountryName,
		Flag:         r.Flag,
		Region:       r.Region,
		HeroSubtitle: r.HeroSubtitle,
		Featured:     r.Featured,
		Priority:     r.Priority,
	}
}

// Side identifies one destination within a comparison.
type Side struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Flag   string `json:"flag,omitempty"`
	Region string `json:"region,omitempty"`
}

// Comparison is a side-by-side view of two destinations. Section maps are
// keyed by country name, so Compare(a, b) and Compare(b, a) carry the same
// facts under the same keys.
type Comparison struct {
	Destinations [2]Side                    `json:"destinations"`
	Visas        map[string]json.RawMessage `json:"visas"`
	CostOfLiving map[string]json.RawMessage `json:"cost_of_living"`
	JobMarket    map[string]json.RawMessage `json:"job_market"`
}

// NewComparison assembles a comparison from two full records.
func NewComparison(a, b *Record) Comparison {
	return Comparison{
		Destinations: [2]Side{
			{Slug: a.Slug, Name: a.CountryName, Flag: a.Flag, Region: a.Region},
			{Slug: b.Slug, Name: b.CountryName, Flag: b.Flag, Region: b.Region},
		},
		Visas: map[string]json.RawMessage{
			a.CountryName: a.Visas,
			b.CountryName: b.Visas,
		},
		CostOfLiving: map[string]json.RawMessage{
			a.CountryName: a.CostOfLiving,
			b.CountryName: b.CostOfLiving,
		},
		JobMarket: map[string]json.RawMessage{
			a.CountryName: a.JobMarket,
			b.CountryName: b.JobMarket,
		},
	}
}

// VisaInfo is the convenience view returned for "visas for X" lookups.
type VisaInfo struct {
	Country      string          `json:"country"`
	Flag         string          `json:"flag,omitempty"`
	Visas        json.RawMessage `json:"visas"`
	HeroImageURL string          `json:"hero_image_url,omitempty"`
}

// CostOfLivingInfo is the convenience view for cost-of-living lookups.
// Cities carries the per-city cost breakdown section.
type CostOfLivingInfo struct {
	Country   string          `json:"country"`
	Flag      string          `json:"flag,omitempty"`
	Cities    json.RawMessage `json:"cities"`
	JobMarket json.RawMessage `json:"job_market,omitempty"`
}
