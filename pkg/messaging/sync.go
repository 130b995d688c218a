package messaging

type ChangeTopic string

const (
	// Tracking carries view and session events.
	Tracking ChangeTopic = "tracking"
	// CatalogChanged tells servers to reload their record set.
	CatalogChanged ChangeTopic = "catalog_changed"
)

const GlobalPrefix = "global"

type CatalogChange struct {
	Country string `json:"country,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
