package domain

// SessionAssets holds the design images saved for a customization session.
// Either field may be a raw data URL or a hosted image URL; both are opaque.
type SessionAssets struct {
	FrontDataURL string `json:"frontDataUrl,omitempty"`
	BackDataURL  string `json:"backDataUrl,omitempty"`
}
