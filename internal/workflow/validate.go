package workflow

import (
	"net/mail"
	"strings"
	"time"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// ItemInput carries the caller-editable fields of an item.  The same
// struct feeds both the create and update paths so validation cannot
// drift between them.  Status is consulted only at creation time;
// later changes go through TransitionStatus.
type ItemInput struct {
	Title         string
	Category      model.ItemCategory
	Description   *string
	Location      string
	DateLostFound time.Time
	Status        model.ItemStatus
	ImageURL      *string
	ContactEmail  *string
	ContactPhone  *string
}

// Field length limits, matching the original listing form.
const (
	titleMinLen       = 3
	titleMaxLen       = 100
	locationMinLen    = 2
	locationMaxLen    = 200
	descriptionMaxLen = 1000
	phoneMaxLen       = 20
)

// validCategory reports whether c is one of the accepted categories.
func validCategory(c model.ItemCategory) bool {
	for _, known := range model.Categories {
		if c == known {
			return true
		}
	}
	return false
}

// validateItem checks an ItemInput and collects every violated field.
// When checkStatus is true the input's status must be one of the two
// legal initial states (lost or found).  It returns nil when the
// input is clean.
func validateItem(in ItemInput, checkStatus bool) *ValidationError {
	fields := map[string]string{}

	title := strings.TrimSpace(in.Title)
	if len(title) < titleMinLen || len(title) > titleMaxLen {
		fields["title"] = "must be between 3 and 100 characters"
	}
	location := strings.TrimSpace(in.Location)
	if len(location) < locationMinLen || len(location) > locationMaxLen {
		fields["location"] = "must be between 2 and 200 characters"
	}
	if in.Description != nil && len(*in.Description) > descriptionMaxLen {
		fields["description"] = "must be at most 1000 characters"
	}
	if !validCategory(in.Category) {
		fields["category"] = "unknown category"
	}
	if in.DateLostFound.IsZero() {
		fields["date_lost_found"] = "date is required"
	}
	if in.ContactEmail != nil && *in.ContactEmail != "" {
		if _, err := mail.ParseAddress(*in.ContactEmail); err != nil {
			fields["contact_email"] = "malformed email address"
		}
	}
	if in.ContactPhone != nil && len(*in.ContactPhone) > phoneMaxLen {
		fields["contact_phone"] = "must be at most 20 characters"
	}
	if checkStatus && in.Status != model.StatusLost && in.Status != model.StatusFound {
		fields["status"] = "initial status must be lost or found"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// emptyToNil normalizes optional string fields: a nil pointer or a
// blank value both persist as NULL.
func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
