package blacklist

// Entry is a persisted blacklist record. (TenantID, Email) is unique,
// enforced by the storage backend. Reason holds the full serialized
// notification payload, not a short code. Entries are created by ingestion
// and never updated or deleted by this service.
type Entry struct {
	ID       int64  `json:"id"`
	TenantID int64  `json:"tenant_id"`
	Email    string `json:"email"`
	Reason   string `json:"reason"`
}
