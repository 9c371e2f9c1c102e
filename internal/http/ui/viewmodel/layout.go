// Package viewmodel defines view data structures shared between UI handlers
// and templates. These types decouple templates from domain entities.
package viewmodel

// User is the authenticated admin as rendered in the layout chrome.
type User struct {
	Name  string
	Email string
}

// Layout carries the fields every full-page render needs.
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
}

// LayoutProvider is implemented by page data structs that embed layout info.
type LayoutProvider interface {
	LayoutData() Layout
}
