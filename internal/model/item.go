package model

import "time"

// ItemStatus enumerates the lifecycle states of a reported item.
// An item starts as either StatusLost or StatusFound and can only
// move along the edges defined by the workflow package.
type ItemStatus string

// Lifecycle states for an item.  Recovered and Closed are terminal:
// no operation offers a transition out of them.
const (
	StatusLost      ItemStatus = "lost"
	StatusFound     ItemStatus = "found"
	StatusClaimed   ItemStatus = "claimed"
	StatusRecovered ItemStatus = "recovered"
	StatusClosed    ItemStatus = "closed"
)

// ItemCategory is the closed set of categories a reporter can file an
// item under.  The values mirror the `items.category` enum column.
type ItemCategory string

// All accepted item categories.
const (
	CategoryElectronics ItemCategory = "electronics"
	CategoryDocuments   ItemCategory = "documents"
	CategoryBags        ItemCategory = "bags"
	CategoryClothing    ItemCategory = "clothing"
	CategoryAccessories ItemCategory = "accessories"
	CategoryKeys        ItemCategory = "keys"
	CategoryJewelry     ItemCategory = "jewelry"
	CategorySports      ItemCategory = "sports"
	CategoryBooks       ItemCategory = "books"
	CategoryOther       ItemCategory = "other"
)

// Valid reports whether s is one of the defined lifecycle states.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusClaimed, StatusRecovered, StatusClosed:
		return true
	}
	return false
}

// Valid reports whether c is one of the defined categories.
func (c ItemCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Categories lists every valid category.  Used by validation and by
// the analytics breakdown so both stay in sync with the enum column.
var Categories = []ItemCategory{
	CategoryElectronics, CategoryDocuments, CategoryBags, CategoryClothing,
	CategoryAccessories, CategoryKeys, CategoryJewelry, CategorySports,
	CategoryBooks, CategoryOther,
}

// Item represents a reported lost or found object as stored in the
// `items` table.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who reported the item (the owner, immutable).
//  Title         – short headline, 3–100 characters.
//  Category      – one of the Category* constants.
//  Description   – optional free text, up to 1000 characters.
//  Location      – where the item was lost or found, 2–200 characters.
//  DateLostFound – the date the item went missing or was picked up.
//  ImageURL      – optional public URL of an attached photo.
//  Status        – current lifecycle state.
//  ContactEmail  – optional contact email shown on the listing.
//  ContactPhone  – optional contact phone, up to 20 characters.
//  IsVerified    – admin-settable trust flag, independent of status.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Item struct {
	ID            uint64       `json:"id"`
	UserID        uint64       `json:"user_id"`
	Title         string       `json:"title"`
	Category      ItemCategory `json:"category"`
	Description   *string      `json:"description,omitempty"`
	Location      string       `json:"location"`
	DateLostFound time.Time    `json:"date_lost_found"`
	ImageURL      *string      `json:"image_url,omitempty"`
	Status        ItemStatus   `json:"status"`
	ContactEmail  *string      `json:"contact_email,omitempty"`
	ContactPhone  *string      `json:"contact_phone,omitempty"`
	IsVerified    bool         `json:"is_verified"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
