package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PermissionSchemaVersion is the current on-disk version of the capability
// and restriction documents stored on groups. Version 0 payloads (bare
// arrays, written before the schema carried a version field) are migrated on
// read; anything newer than the current version is rejected.
const PermissionSchemaVersion = 1

type Group struct {
	ID            int64             `json:"id" db:"id"`
	Name          string            `json:"name" db:"name"`
	Status        string            `json:"status" db:"status"`
	Capabilities  CapabilitySet     `json:"capabilities"`
	Restrictions  GroupRestrictions `json:"restrictions"`
	DownloadLimit *int              `json:"download_limit,omitempty" db:"download_limit"`
	UploadLimit   *int              `json:"upload_limit,omitempty" db:"upload_limit"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// Active reports whether the group participates in permission resolution.
func (g *Group) Active() bool { return g.Status == StatusActive }

// GroupRestrictions are a group's per-category allow-lists. An empty slice
// means unrestricted for that category.
type GroupRestrictions struct {
	Companies     []int64 `json:"companies"`
	Departments   []int64 `json:"departments"`
	DocumentTypes []int64 `json:"document_types"`
}

// capabilityDoc is the versioned JSON document persisted in the groups table.
type capabilityDoc struct {
	Version      int          `json:"version"`
	Capabilities []Capability `json:"capabilities"`
}

// restrictionDoc is the versioned JSON document persisted in the groups table.
type restrictionDoc struct {
	Version int `json:"version"`
	GroupRestrictions
}

// DecodeCapabilityDoc parses a stored capability document. A bare JSON array
// is a version-0 payload and is upgraded in place.
func DecodeCapabilityDoc(raw []byte) (CapabilitySet, error) {
	if len(raw) == 0 {
		return CapabilitySet{}, nil
	}

	// v0: ["view","download",...]
	if raw[0] == '[' {
		var caps []Capability
		if err := json.Unmarshal(raw, &caps); err != nil {
			return nil, fmt.Errorf("decode v0 capability document: %w", err)
		}
		return capabilitySetOf(caps), nil
	}

	var doc capabilityDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode capability document: %w", err)
	}
	if doc.Version > PermissionSchemaVersion {
		return nil, fmt.Errorf("capability document version %d is newer than supported version %d", doc.Version, PermissionSchemaVersion)
	}
	return capabilitySetOf(doc.Capabilities), nil
}

// DecodeRestrictionDoc parses a stored restriction document. A version-0
// payload is the bare restriction object without a version field, which
// decodes identically.
func DecodeRestrictionDoc(raw []byte) (GroupRestrictions, error) {
	if len(raw) == 0 {
		return GroupRestrictions{}, nil
	}

	var doc restrictionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return GroupRestrictions{}, fmt.Errorf("decode restriction document: %w", err)
	}
	if doc.Version > PermissionSchemaVersion {
		return GroupRestrictions{}, fmt.Errorf("restriction document version %d is newer than supported version %d", doc.Version, PermissionSchemaVersion)
	}
	return doc.GroupRestrictions, nil
}

// EncodeCapabilityDoc serializes a capability set at the current schema
// version, in stable capability order.
func EncodeCapabilityDoc(set CapabilitySet) ([]byte, error) {
	doc := capabilityDoc{Version: PermissionSchemaVersion}
	for _, c := range AllCapabilities {
		if set.Has(c) {
			doc.Capabilities = append(doc.Capabilities, c)
		}
	}
	return json.Marshal(doc)
}

// EncodeRestrictionDoc serializes restrictions at the current schema version.
func EncodeRestrictionDoc(r GroupRestrictions) ([]byte, error) {
	return json.Marshal(restrictionDoc{Version: PermissionSchemaVersion, GroupRestrictions: r})
}

func capabilitySetOf(caps []Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set
}
