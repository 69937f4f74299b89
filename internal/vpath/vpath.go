// Package vpath encodes and decodes the virtual hierarchical path grammar
// that maps the flat Company/Department/Folder/Document entities onto
// browsable filesystem-like paths:
//
//	{companyID}/{departmentID}/folder_{folderID}/doc_{documentID}
//
// Every segment is optional but segments only ever appear in this order.
// Decoding is greedy-left and fails soft: a segment that matches no
// remaining position truncates the path there, so malformed input never
// produces an error, only the deepest valid prefix. Downstream code works
// with the decoded Location exclusively and never re-parses path strings.
package vpath

import (
	"strconv"
	"strings"
)

const (
	folderPrefix   = "folder_"
	documentPrefix = "doc_"
)

// Location is a decoded position in the hierarchy. Nil fields are absent
// segments.
type Location struct {
	CompanyID    *int64
	DepartmentID *int64
	FolderID     *int64
	DocumentID   *int64
}

// Depth returns how many segments are set.
func (l Location) Depth() int {
	n := 0
	for _, id := range []*int64{l.CompanyID, l.DepartmentID, l.FolderID, l.DocumentID} {
		if id != nil {
			n++
		}
	}
	return n
}

// IsRoot reports whether no segment is set.
func (l Location) IsRoot() bool { return l.CompanyID == nil }

// Equal compares two locations field by field.
func (l Location) Equal(other Location) bool {
	return eqID(l.CompanyID, other.CompanyID) &&
		eqID(l.DepartmentID, other.DepartmentID) &&
		eqID(l.FolderID, other.FolderID) &&
		eqID(l.DocumentID, other.DocumentID)
}

func eqID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// segment positions, in grammar order
const (
	posCompany = iota
	posDepartment
	posFolder
	posDocument
)

// Decode parses a raw path into a Location. It never fails; unmatched or
// malformed segments truncate the result at the deepest valid prefix.
func Decode(raw string) Location {
	var loc Location

	raw = strings.Trim(raw, "/")
	if raw == "" {
		return loc
	}

	next := posCompany
	for _, seg := range strings.Split(raw, "/") {
		matched := false
		for pos := next; pos <= posDocument && !matched; pos++ {
			switch pos {
			case posCompany, posDepartment:
				if id, ok := parseID(seg); ok {
					if pos == posCompany {
						loc.CompanyID = &id
					} else {
						loc.DepartmentID = &id
					}
					next = pos + 1
					matched = true
				}
			case posFolder:
				if rest, ok := strings.CutPrefix(seg, folderPrefix); ok {
					if id, ok := parseID(rest); ok {
						loc.FolderID = &id
						next = pos + 1
						matched = true
					}
				}
			case posDocument:
				if rest, ok := strings.CutPrefix(seg, documentPrefix); ok {
					if id, ok := parseID(rest); ok {
						loc.DocumentID = &id
						next = pos + 1
						matched = true
					}
				}
			}
		}
		if !matched {
			break
		}
	}

	return loc
}

// Encode produces the canonical path string for a location, omitting unset
// segments. A location without a company encodes as the root path.
// Encode is the strict inverse of Decode: Decode(Encode(loc)) == loc for
// any location Encode accepts.
func Encode(loc Location) string {
	if loc.CompanyID == nil {
		return ""
	}

	segs := []string{strconv.FormatInt(*loc.CompanyID, 10)}
	if loc.DepartmentID != nil {
		segs = append(segs, strconv.FormatInt(*loc.DepartmentID, 10))
	}
	if loc.FolderID != nil {
		segs = append(segs, folderPrefix+strconv.FormatInt(*loc.FolderID, 10))
	}
	if loc.DocumentID != nil {
		segs = append(segs, documentPrefix+strconv.FormatInt(*loc.DocumentID, 10))
	}
	return strings.Join(segs, "/")
}

// parseID accepts positive decimal integers only. Leading zeros are fine;
// signs, spaces and empty strings are not.
func parseID(s string) (int64, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ID is a convenience for building locations in place.
func ID(v int64) *int64 { return &v }
