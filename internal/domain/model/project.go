//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Project represents a portfolio project as served by the backend.
// The admin listing includes unpublished entries; the public listing
// only published ones.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	RepoURL     string    `json:"repoUrl"`
	DemoURL     string    `json:"demoUrl"`
	Featured    bool      `json:"featured"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DashboardSummary aggregates the counters shown on the admin dashboard,
// plus the newest messages for the inbox preview.
type DashboardSummary struct {
	Projects       int
	Experience     int
	Messages       int
	NewMessages    int
	RecentMessages []Message
}
