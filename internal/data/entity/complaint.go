package entity

import "github.com/google/uuid"

type Complaint struct {
	BaseNoDelete
	UserID        uuid.UUID `db:"user_id"`
	OutletID      uuid.UUID `db:"outlet_id"`
	ComplaintText string    `db:"complaint_text"`
	IsAnonymous   bool      `db:"is_anonymous"`
	IsResolved    bool      `db:"is_resolved"`

	// filled by read queries
	AuthorName  string `db:"-"`
	AuthorEmail string `db:"-"`
	OutletName  string `db:"-"`
}
