package models

// AuthUserRecord is the user snapshot carried by a Firebase Auth lifecycle
// event. Only the uid is decoded; timestamps and metadata vary by sender.
type AuthUserRecord struct {
	UID string `json:"uid"`
}

// AuthEvent is the envelope pushed to the user-deleted endpoint. Bare user
// records ({"uid": ...}) are accepted as well. Unknown fields are ignored.
type AuthEvent struct {
	EventID string         `json:"eventId,omitempty"`
	Data    AuthUserRecord `json:"data"`
	UID     string         `json:"uid,omitempty"`
}

// DeletedUID returns the uid of the removed account from either payload form.
func (e AuthEvent) DeletedUID() string {
	if e.Data.UID != "" {
		return e.Data.UID
	}
	return e.UID
}
