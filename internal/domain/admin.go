package domain

import "context"

// SearchResult holds superadmin search matches over users and events.
type SearchResult struct {
	Users  []*UserRef  `json:"users"`
	Events []*EventRef `json:"events"`
}

// Overview holds the top-level counters for the superadmin dashboard.
type Overview struct {
	TotalUsers  int `json:"total_users"`
	TotalEvents int `json:"total_events"`
	TotalRsvps  int `json:"total_rsvps"`
}

// LogsPage bundles the most recent entries of both append-only logs.
type LogsPage struct {
	Errors []*ErrorLog `json:"errors"`
	Emails []*EmailLog `json:"emails"`
}

// AdminService defines the superadmin oversight surface. Every method
// asserts the superadmin role of actor before touching storage.
type AdminService interface {
	Overview(ctx context.Context, actor *User) (*Overview, error)
	Search(ctx context.Context, actor *User, query string) (*SearchResult, error)
	ListUsers(ctx context.Context, actor *User, p PaginationParams) ([]*User, int, error)
	ListEvents(ctx context.Context, actor *User, p PaginationParams) ([]*Event, int, error)
	ListRsvps(ctx context.Context, actor *User, p PaginationParams) ([]*RSVP, int, error)
	Logs(ctx context.Context, actor *User, limit int) (*LogsPage, error)
}
