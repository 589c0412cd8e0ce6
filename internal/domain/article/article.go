// Package article defines the display-ready article record assembled per request.
package article

// Record is an enriched, display-ready article. It is constructed per request
// from search output plus store lookups and never persisted by this service.
type Record struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content,omitempty"`
	Excerpt      string  `json:"excerpt,omitempty"`
	Slug         string  `json:"slug,omitempty"`
	HeroImageURL string  `json:"hero_image_url,omitempty"`
	Country      string  `json:"country,omitempty"`
	Mode         string  `json:"mode,omitempty"`
	Category     string  `json:"category,omitempty"`
	Score        float64 `json:"score"`
}

// Preview returns content truncated to at most n runes, with an ellipsis when
// truncation occurred.
func (r *Record) Preview(n int) string {
	runes := []rune(r.Content)
	if len(runes) <= n {
		return r.Content
	}
	return string(runes[:n]) + "..."
}
