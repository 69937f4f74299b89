package models

// Capability is a named boolean permission granted by a group.
type Capability string

const (
	CapView        Capability = "view"
	CapDownload    Capability = "download"
	CapCreate      Capability = "create"
	CapEdit        Capability = "edit"
	CapDelete      Capability = "delete"
	CapExport      Capability = "export"
	CapManageUsers Capability = "manage_users"
)

// AllCapabilities lists every capability the system knows about, in a stable
// order. Used for the admin short-circuit and for schema validation.
var AllCapabilities = []Capability{
	CapView, CapDownload, CapCreate, CapEdit, CapDelete, CapExport, CapManageUsers,
}

// CapabilitySet is a set of granted capabilities.
type CapabilitySet map[Capability]bool

// Has reports whether the capability is granted.
func (s CapabilitySet) Has(c Capability) bool { return s[c] }

// Clone returns an independent copy of the set.
func (s CapabilitySet) Clone() CapabilitySet {
	out := make(CapabilitySet, len(s))
	for c, v := range s {
		out[c] = v
	}
	return out
}

// Restriction is a per-category allow-list of entity IDs. An empty allow-list
// means unrestricted (all allowed). DenyAll inverts that: nothing is allowed
// regardless of the list. It exists so a data-access failure can fail closed
// without overloading the empty set's "unrestricted" meaning.
type Restriction struct {
	IDs     map[int64]struct{}
	DenyAll bool
}

// Unrestricted returns a restriction that allows every ID.
func Unrestricted() Restriction { return Restriction{} }

// DenyEverything returns a restriction that allows no ID.
func DenyEverything() Restriction { return Restriction{DenyAll: true} }

// RestrictTo returns a restriction allowing exactly the given IDs.
// An empty id list yields an unrestricted restriction.
func RestrictTo(ids ...int64) Restriction {
	if len(ids) == 0 {
		return Restriction{}
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Restriction{IDs: set}
}

// Allows reports whether the given ID passes the restriction.
func (r Restriction) Allows(id int64) bool {
	if r.DenyAll {
		return false
	}
	if len(r.IDs) == 0 {
		return true
	}
	_, ok := r.IDs[id]
	return ok
}

// Unrestricted reports whether every ID is allowed.
func (r Restriction) Unrestricted() bool {
	return !r.DenyAll && len(r.IDs) == 0
}

// AllowedIDs returns the allow-list as a slice, or nil when unrestricted.
// Repositories use nil to mean "no ID filter".
func (r Restriction) AllowedIDs() []int64 {
	if r.Unrestricted() {
		return nil
	}
	ids := make([]int64, 0, len(r.IDs))
	for id := range r.IDs {
		ids = append(ids, id)
	}
	return ids
}

// Quota is a per-action daily ceiling. Limited=false means unlimited.
type Quota struct {
	Limited bool
	Max     int
}

// UnlimitedQuota allows any number of actions per day.
var UnlimitedQuota = Quota{}

// QuotaOf returns a limited quota with the given daily ceiling.
func QuotaOf(max int) Quota { return Quota{Limited: true, Max: max} }

// PermissionContext is the merged, immutable authorization state for one
// request. It is computed once per request by the resolver and passed
// explicitly into every component; nothing re-derives permissions from group
// data downstream.
type PermissionContext struct {
	Capabilities  CapabilitySet
	Companies     Restriction
	Departments   Restriction
	DocumentTypes Restriction
	DownloadLimit Quota
	UploadLimit   Quota
	HasGroups     bool
	Admin         bool
}

// Can reports whether the context grants the capability.
func (p *PermissionContext) Can(c Capability) bool {
	return p.Capabilities.Has(c)
}

// QuotaFor returns the resolved quota for an action type.
func (p *PermissionContext) QuotaFor(action ActionType) Quota {
	switch action {
	case ActionDownload:
		return p.DownloadLimit
	case ActionUpload:
		return p.UploadLimit
	default:
		return UnlimitedQuota
	}
}
