package models

// CascadeDeletePayload is the queued form of a user-deleted event.
type CascadeDeletePayload struct {
	EventID string `json:"eventId"`
	UID     string `json:"uid"`
}

// CleanupResult summarises one cascade run.
type CleanupResult struct {
	UID                  string   `json:"uid"`
	EventID              string   `json:"eventId,omitempty"`
	Duplicate            bool     `json:"duplicate,omitempty"`
	MatchedUsers         int      `json:"matchedUsers"`
	DeletedNotifications []string `json:"deletedNotifications"`
}
