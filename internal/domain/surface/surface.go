// Package surface defines the typed research payloads handed to the
// conversational layer. Each payload kind carries its own structure instead of
// an open-ended bag of optional fields.
package surface

// Kind discriminates research payloads.
type Kind string

// Payload kinds.
const (
	KindGuideGrid       Kind = "guide-grid"
	KindMap             Kind = "map"
	KindTimeline        Kind = "timeline"
	KindDestinationGrid Kind = "destination-grid"
	KindImage           Kind = "image"
	KindContext         Kind = "context"
)

// GuideCard is one article shaped for grid display.
type GuideCard struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt,omitempty"`
	HeroImageURL string    `json:"hero_image_url,omitempty"`
	Score        float64   `json:"score"`
	Location     *Location `json:"location,omitempty"`
	VisaType     string    `json:"visa_type,omitempty"`
}

// GuideGrid holds search hits shaped for grid display.
type GuideGrid struct {
	Query  string      `json:"query"`
	Guides []GuideCard `json:"guides"`
}

// Location is a destination point for map rendering.
type Location struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description,omitempty"`
}

// TimelineStep is one stage of a visa application process.
type TimelineStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Timeline is a visa application timeline for one destination.
type Timeline struct {
	Destination string         `json:"destination"`
	Steps       []TimelineStep `json:"steps"`
}

// FeaturedDestination is one entry of the featured-destination grid.
type FeaturedDestination struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Highlight   string `json:"highlight"`
	Description string `json:"description"`
}

// DestinationGrid holds the featured destinations.
type DestinationGrid struct {
	Destinations []FeaturedDestination `json:"destinations"`
}

// Image is a single topic image.
type Image struct {
	Topic string `json:"topic"`
	URL   string `json:"url"`
}

// Context is the combined research view for one destination: guides plus
// whatever location, visa type, and hero image could be derived from them.
type Context struct {
	Topic        string      `json:"topic"`
	Guides       []GuideCard `json:"guides"`
	Location     *Location   `json:"location,omitempty"`
	VisaType     string      `json:"visa_type,omitempty"`
	HeroImageURL string      `json:"hero_image_url,omitempty"`
}
