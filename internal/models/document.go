package models

type DocumentStatus string

const (
	DocumentValid    DocumentStatus = "valid"
	DocumentExpiring DocumentStatus = "expiring"
	DocumentExpired  DocumentStatus = "expired"
	DocumentUnknown  DocumentStatus = "unknown"
)

// Document is a bureaucratic document (permit, contract, certificate)
// whose expiry feeds the global status light.
type Document struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Status     DocumentStatus `json:"status"`
	Expiry     string         `json:"expiry,omitempty"` // YYYY-MM-DD format
	IsCritical bool           `json:"is_critical"`
}
