package domain

// AdFormat values understood by the display endpoint.
const (
	FormatVideo = "video"
	FormatImage = "image"
	FormatAudio = "audio"
)

// Ad is one creative served to a placement. An ad is immutable once
// fetched; a placement replaces it wholesale on reload and never shares
// it with other placements.
type Ad struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	MediaURL        string      `json:"media_url,omitempty"`
	Link            string      `json:"link,omitempty"`
	FindOutMoreLink string      `json:"findOutMoreLink,omitempty"`
	Format          string      `json:"format"`
	Advertiser      *Advertiser `json:"advertiser,omitempty"`
}

// Advertiser carries the sponsor details shown behind the info
// affordance. Field tags follow the upstream API response as-is.
type Advertiser struct {
	BusinessName string `json:"Business_Name,omitempty"`
	Email        string `json:"email,omitempty"`
	Country      string `json:"country,omitempty"`
	State        string `json:"state,omitempty"`
	City         string `json:"city,omitempty"`
}

// Filters narrow which ads the display endpoint may return for a
// placement.
type Filters struct {
	Format      string `json:"format"`
	MediaFormat string `json:"mediaFormat"`
}

// MediaKind selects the renderer strategy for a placement. One widget
// parameterized by kind replaces per-format widget variants.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
	MediaNone  MediaKind = "none"
)

// NoAdID is the sentinel for "no specific ad requested"; the placement
// asks for any ad matching its filters instead.
const NoAdID int64 = -1
