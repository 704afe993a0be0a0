package access

// Record is the minimal shape the permission rules need from a CRM record.
// Bookings report their advisor as owner and have no creator; enquiries carry
// both.
type Record interface {
	RecordID() string
	CreatorID() string
	OwnerID() string
}

// Lead is a record that can be converted into a booking.
type Lead interface {
	Record
	Convertible() bool
}

// owns reports whether the user created or is assigned the record. An empty
// user id never owns anything.
func owns(rec Record, userID string) bool {
	if userID == "" {
		return false
	}
	return rec.CreatorID() == userID || rec.OwnerID() == userID
}

// CanCreate reports whether the role may originate enquiries and bookings.
// Supervisory roles view and manage but do not create leads; that is policy,
// not an oversight.
func CanCreate(r Role) bool {
	return r == RoleCustomerAdvisor
}

// CanEdit reports whether the user may mutate the record. Advisors edit their
// own records only; every other role is view-only.
func CanEdit(r Role, rec Record, userID string) bool {
	return r == RoleCustomerAdvisor && owns(rec, userID)
}

// CanDelete reports whether the role may delete records at all. Ownership is
// the caller's responsibility to verify on top of this.
func CanDelete(r Role) bool {
	return r == RoleCustomerAdvisor
}

// CanAssign reports whether the role may reassign records.
func CanAssign(r Role) bool {
	return r == RoleCustomerAdvisor
}

// CanConvertToBooking reports whether the user may convert the lead. Requires
// the advisor role, ownership, and a lead that is still convertible (HOT and
// not already locked by a previous conversion).
func CanConvertToBooking(r Role, lead Lead, userID string) bool {
	return r == RoleCustomerAdvisor && owns(lead, userID) && lead.Convertible()
}

// CanSee reports whether the record is visible to the user under the given
// scope. Unknown roles see nothing.
func CanSee(r Role, rec Record, userID string, sc Scope) bool {
	if !r.IsValid() {
		return false
	}
	if owns(rec, userID) {
		return true
	}
	if sc.SeeAll {
		return true
	}
	if sc.SeeTeam {
		return sameTeam(rec, userID)
	}
	return false
}

// sameTeam is a placeholder: the upstream backend does not yet expose
// manager→subordinate edges, so team scope degrades to "everything".
// TODO: evaluate real team membership once the backend ships hierarchy data.
func sameTeam(rec Record, userID string) bool {
	return true
}
