//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	maxExperienceRoleLen    = 255
	maxExperienceCompanyLen = 255
)

// ExperienceEntry represents a single timeline entry on the portfolio.
// StartDate and EndDate are ISO dates ("2024-01" or "2024-01-15"); the
// backend stores them as strings so ordering is lexicographic.
type ExperienceEntry struct {
	ID          string   `json:"id"`
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	StartDate   string   `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	IsCurrent   bool     `json:"isCurrent"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Order       int      `json:"order"`
}

// SortExperience orders entries by Order ascending, breaking ties by
// StartDate descending (most recent first). The sort is stable so the
// backend's ordering is preserved for full ties.
func SortExperience(entries []ExperienceEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Order != entries[j].Order {
			return entries[i].Order < entries[j].Order
		}
		return entries[i].StartDate > entries[j].StartDate
	})
}

// ParseTags normalizes a comma-separated tag string: split, trim
// whitespace, drop empties, and dedupe preserving first occurrence.
// Applying it to its own joined output yields the same list.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// ExperienceRequest represents parameters to create or update an
// experience entry. The same shape is sent for both operations; the
// backend treats a missing ID as a create.
type ExperienceRequest struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	StartDate   string   `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	IsCurrent   bool     `json:"isCurrent"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Order       int      `json:"order"`
}

// Validate validates ExperienceRequest and normalizes its fields. A
// current position always submits a null end date, regardless of what
// the form carried.
func (r *ExperienceRequest) Validate() error {
	r.Role = strings.TrimSpace(r.Role)
	r.Company = strings.TrimSpace(r.Company)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.Description = strings.TrimSpace(r.Description)

	if r.Role == "" {
		return errors.New("role is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Role) > maxExperienceRoleLen {
		return errors.New("role cannot exceed 255 characters")
	}
	if r.Company == "" {
		return errors.New("company is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Company) > maxExperienceCompanyLen {
		return errors.New("company cannot exceed 255 characters")
	}

	if r.IsCurrent {
		r.EndDate = nil
	} else if r.EndDate != nil {
		end := strings.TrimSpace(*r.EndDate)
		if end == "" {
			r.EndDate = nil
		} else {
			*r.EndDate = end
			if r.StartDate != "" && end < r.StartDate {
				return errors.New("end date cannot be before start date")
			}
		}
	}

	if r.Tags == nil {
		r.Tags = []string{}
	}
	return nil
}
