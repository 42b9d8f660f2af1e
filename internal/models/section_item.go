package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FeatureList is an ordered list of display strings. It accepts either a
// JSON array or a single comma-delimited string on input; entries are
// trimmed either way.
type FeatureList []string

// UnmarshalJSON implements the dual array/string input shape
func (f *FeatureList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(FeatureList, 0, len(list))
		for _, entry := range list {
			out = append(out, strings.TrimSpace(entry))
		}
		*f = out
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*f = FeatureList{}
			return nil
		}
		parts := strings.Split(single, ",")
		out := make(FeatureList, 0, len(parts))
		for _, entry := range parts {
			out = append(out, strings.TrimSpace(entry))
		}
		*f = out
		return nil
	}

	return fmt.Errorf("features must be an array of strings or a comma-delimited string")
}

// SectionItem is an admin-managed display entity (course/feature card)
// surfaced on the public site. Public listings exclude inactive items;
// admin listings include everything. Listing order is order ascending with
// createdAt descending as tiebreak.
type SectionItem struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Order       int         `json:"order"`
	IsActive    bool        `json:"isActive"`
	Category    string      `json:"category"`
	Price       string      `json:"price,omitempty"`
	Badge       string      `json:"badge,omitempty"`
	Tag         string      `json:"tag,omitempty"`
	Popular     bool        `json:"popular"`
	Features    FeatureList `json:"features"`
	Subtitle    string      `json:"subtitle,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CreateSectionItemRequest creates a new section item. Absent optional
// fields fall back to defaults: order 0, isActive true, category "general".
type CreateSectionItemRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Icon        string       `json:"icon"`
	Order       int          `json:"order"`
	IsActive    *bool        `json:"isActive"`
	Category    string       `json:"category"`
	Price       string       `json:"price"`
	Badge       string       `json:"badge"`
	Tag         string       `json:"tag"`
	Popular     bool         `json:"popular"`
	Features    *FeatureList `json:"features"`
	Subtitle    string       `json:"subtitle"`
}

// UpdateSectionItemRequest is a partial-field merge: only non-nil fields
// overwrite the stored item. Presence wins over truthiness, so a present
// empty string still overwrites.
type UpdateSectionItemRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Image       *string      `json:"image"`
	Icon        *string      `json:"icon"`
	Order       *int         `json:"order"`
	IsActive    *bool        `json:"isActive"`
	Category    *string      `json:"category"`
	Price       *string      `json:"price"`
	Badge       *string      `json:"badge"`
	Tag         *string      `json:"tag"`
	Popular     *bool        `json:"popular"`
	Features    *FeatureList `json:"features"`
	Subtitle    *string      `json:"subtitle"`
}

// Empty reports whether the update carries no fields at all
func (r *UpdateSectionItemRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Image == nil &&
		r.Icon == nil && r.Order == nil && r.IsActive == nil &&
		r.Category == nil && r.Price == nil && r.Badge == nil &&
		r.Tag == nil && r.Popular == nil && r.Features == nil &&
		r.Subtitle == nil
}

// UploadSectionImageRequest carries a base64-encoded image for an item
type UploadSectionImageRequest struct {
	ImageData   string `json:"imageData" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}
