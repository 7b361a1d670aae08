package model

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// ItemCollection is the document collection holding items.
const ItemCollection = "item"

// Item represents a tracked task or ticket.
type Item struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description *string    `json:"description" bson:"description"`
	Status      string     `json:"status" bson:"status"`
	DueDate     *time.Time `json:"due_date" bson:"due_date"`
	Tags        []string   `json:"tags" bson:"tags"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// Item statuses.
const (
	ItemStatusOpen       = "Open"
	ItemStatusInProgress = "In Progress"
	ItemStatusDone       = "Done"
)

// Field limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// ValidStatus reports whether status is one of the item status literals.
func ValidStatus(status string) bool {
	switch status {
	case ItemStatusOpen, ItemStatusInProgress, ItemStatusDone:
		return true
	}
	return false
}

// ValidationError describes a field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateTitle checks the title length bounds.
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n == 0 {
		return &ValidationError{Field: "title", Message: "required"}
	}
	if n > MaxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", MaxTitleLength)}
	}
	return nil
}

// ValidateDescription checks the description length bound. A nil description is valid.
func ValidateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength)}
	}
	return nil
}

// ValidateStatus checks that status is one of the item status literals.
func ValidateStatus(status string) error {
	if !ValidStatus(status) {
		return &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("must be one of %q, %q, %q", ItemStatusOpen, ItemStatusInProgress, ItemStatusDone),
		}
	}
	return nil
}

// NewItem is the candidate item accepted on creation.
type NewItem struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	DueDate     *Timestamp `json:"due_date"`
	Tags        []string   `json:"tags"`
}

// Item validates the candidate, applies defaults and returns the item to insert.
// The returned item has no ID and no timestamps.
func (n NewItem) Item() (*Item, error) {
	if err := ValidateTitle(n.Title); err != nil {
		return nil, err
	}
	if err := ValidateDescription(n.Description); err != nil {
		return nil, err
	}

	status := n.Status
	if status == "" {
		status = ItemStatusOpen
	}
	if err := ValidateStatus(status); err != nil {
		return nil, err
	}

	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Item{
		Title:       n.Title,
		Description: n.Description,
		Status:      status,
		DueDate:     n.DueDate.TimePtr(),
		Tags:        tags,
	}, nil
}
