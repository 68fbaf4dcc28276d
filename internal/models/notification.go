package models

// Notification is the fire-and-forget payload handed to the dispatch
// collaborator. Delivery transport is owned elsewhere; failures never
// affect the write that triggered them.
type Notification struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}
