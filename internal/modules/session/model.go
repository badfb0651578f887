// README: Conversation session record, slot merge, and completeness predicates.
package session

import "time"

// Intent is the coarse category of the user's request.
type Intent string

const (
	IntentUnset   Intent = ""
	IntentFlight  Intent = "flight"
	IntentHotel   Intent = "hotel"
	IntentUnknown Intent = "unknown"
)

// Recognized reports whether the intent maps to a bookable category.
func (i Intent) Recognized() bool {
	return i == IntentFlight || i == IntentHotel
}

// Session holds the trip slots collected so far for one conversation.
// Pointer fields distinguish "unset" from a confirmed empty value.
type Session struct {
	Intent       Intent    `json:"intent"`
	Origin       *string   `json:"origin,omitempty"`
	Destination  *string   `json:"destination,omitempty"`
	TravelDate   *string   `json:"travel_date,omitempty"`
	Adults       *int      `json:"adults,omitempty"`
	Children     *int      `json:"children,omitempty"`
	Infants      *int      `json:"infants,omitempty"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	Reserved     bool      `json:"reserved"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SlotPatch is a partial extraction result. Nil fields mean "not mentioned"
// and never clear an existing value on merge.
type SlotPatch struct {
	Origin       *string
	Destination  *string
	TravelDate   *string
	Adults       *int
	Children     *int
	Infants      *int
	ContactName  *string
	ContactPhone *string
}

// Empty reports whether the patch carries no fields at all.
func (p SlotPatch) Empty() bool {
	return p.Origin == nil && p.Destination == nil && p.TravelDate == nil &&
		p.Adults == nil && p.Children == nil && p.Infants == nil &&
		p.ContactName == nil && p.ContactPhone == nil
}

// Merge applies a patch field-wise: last non-nil wins, nil leaves the
// session untouched. Pure; the input session is not modified.
func Merge(s Session, p SlotPatch) Session {
	if p.Origin != nil {
		s.Origin = p.Origin
	}
	if p.Destination != nil {
		s.Destination = p.Destination
	}
	if p.TravelDate != nil {
		s.TravelDate = p.TravelDate
	}
	if p.Adults != nil {
		s.Adults = p.Adults
	}
	if p.Children != nil {
		s.Children = p.Children
	}
	if p.Infants != nil {
		s.Infants = p.Infants
	}
	if p.ContactName != nil {
		s.ContactName = p.ContactName
	}
	if p.ContactPhone != nil {
		s.ContactPhone = p.ContactPhone
	}
	return s
}

// ReadyToSearch reports whether enough slots are known to query the catalog:
// origin, destination, travel date, and adult count.
func (s Session) ReadyToSearch() bool {
	return hasString(s.Origin) && hasString(s.Destination) && hasString(s.TravelDate) && s.Adults != nil
}

// ReadyToReserve additionally requires the contact fields.
func (s Session) ReadyToReserve() bool {
	return s.ReadyToSearch() && hasString(s.ContactName) && hasString(s.ContactPhone)
}

func hasString(v *string) bool {
	return v != nil && *v != ""
}
