// Package enquiry covers sales leads: intake, categorization, assignment and
// conversion into bookings.
package enquiry

import (
	"time"
)

// Source is the channel an enquiry arrived through.
type Source string

const (
	SourceWalkIn   Source = "WALK_IN"
	SourcePhone    Source = "PHONE"
	SourceWebsite  Source = "WEBSITE"
	SourceReferral Source = "REFERRAL"
	SourceCampaign Source = "CAMPAIGN"
	SourceOther    Source = "OTHER"
)

// IsValid checks if the source is a known channel.
func (s Source) IsValid() bool {
	switch s {
	case SourceWalkIn, SourcePhone, SourceWebsite, SourceReferral, SourceCampaign, SourceOther:
		return true
	default:
		return false
	}
}

// Status is the workflow position of an enquiry.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusContacted Status = "CONTACTED"
	StatusQualified Status = "QUALIFIED"
	StatusConverted Status = "CONVERTED"
	StatusClosed    Status = "CLOSED"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusContacted, StatusQualified, StatusConverted, StatusClosed:
		return true
	default:
		return false
	}
}

// Category is the funnel bucket, orthogonal to Status. It drives the primary
// grouping in the app and the conversion lock.
type Category string

const (
	CategoryHot    Category = "HOT"
	CategoryLost   Category = "LOST"
	CategoryBooked Category = "BOOKED"
)

// IsValid checks if the category is valid.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHot, CategoryLost, CategoryBooked:
		return true
	default:
		return false
	}
}

// CanConvert checks if an enquiry in this category may still be converted.
// BOOKED is terminal: the enquiry is locked for further HOT-category actions.
func (c Category) CanConvert() bool {
	return c == CategoryHot
}

// Enquiry is a prospective-customer lead.
type Enquiry struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	Model         string    `json:"model"`
	Variant       string    `json:"variant,omitempty"`
	Color         string    `json:"color,omitempty"`
	Source        Source    `json:"source"`
	Status        Status    `json:"status"`
	Category      Category  `json:"category"`
	CreatedBy     string    `json:"createdBy"`
	AssignedTo    string    `json:"assignedTo,omitempty"`
	Remarks       string    `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RecordID implements access.Record.
func (e Enquiry) RecordID() string { return e.ID }

// CreatorID implements access.Record.
func (e Enquiry) CreatorID() string { return e.CreatedBy }

// OwnerID implements access.Record.
func (e Enquiry) OwnerID() string { return e.AssignedTo }

// Convertible implements access.Lead.
func (e Enquiry) Convertible() bool { return e.Category.CanConvert() }

// StockValidation is informational stock detail the backend attaches to a
// successful conversion. Its absence never means failure.
type StockValidation struct {
	InStock   bool            `json:"inStock"`
	Locations []LocationStock `json:"locations,omitempty"`
}

// LocationStock is the available count at one stockyard/outlet.
type LocationStock struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// ConversionResult is the outcome of converting an enquiry into a booking.
type ConversionResult struct {
	Enquiry Enquiry          `json:"enquiry"`
	Stock   *StockValidation `json:"stockValidation,omitempty"`
}
