// Package access implements the permission decision for file operations.
// The decision is a pure function over the caller, the file record and
// the requested action; it touches no storage and holds no state.
package access

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
)

// Principal is the resolved identity of a caller, derived from a decoded
// token on every request. Never persisted.
type Principal struct {
	UserID  string
	IsAdmin bool

	// Set when the token was issued bound to a single file
	ScopedFileID string
}

// Anonymous is the principal of an unauthenticated caller. It can still
// read public files.
var Anonymous = Principal{}

type Action int

const (
	Read Action = iota
	Write
)

// Resolve decides whether p may perform a on f. Rules are evaluated in
// strict order, first match wins:
//
//  1. public files are readable by anyone
//  2. admins may do anything
//  3. owners may do anything to their own files
//  4. everything else is denied
//
// Visibility only ever widens reads. A public file never becomes
// publicly writable.
func Resolve(p Principal, f *model.File, a Action) error {
	if a == Read && f.Public {
		return nil
	}

	if p.IsAdmin {
		return nil
	}

	if p.UserID != "" && p.UserID == f.OwnerID {
		return nil
	}

	if a == Write {
		return apperr.New(apperr.Forbidden)
	}

	return apperr.New(apperr.FileIsPrivate)
}
