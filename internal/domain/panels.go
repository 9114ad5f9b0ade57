package domain

import "time"

// Skill is a reusable prompt fragment managed from the skills panel.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// LinkEntry is an external link shown on the console's links panel.
type LinkEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ChannelAccount binds a messaging-channel identity to the platform.
type ChannelAccount struct {
	Provider  string `json:"provider"`
	AccountID string `json:"account_id"`
	Label     string `json:"label,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// LogEntry is one structured server log line for the log viewer.
type LogEntry struct {
	Time    time.Time         `json:"time"`
	Level   string            `json:"level"`
	Logger  string            `json:"logger,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
