package types

import "net/http"

type ViewEvent struct {
	Category   string `json:"category"`
	Sort       string `json:"sort,omitempty"`
	Dir        string `json:"dir,omitempty"`
	Page       int    `json:"page"`
	TotalItems int    `json:"noi"`
	Referer    string `json:"referer,omitempty"`
}

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackView(sessionId string, event ViewEvent)
	Close() error
}
