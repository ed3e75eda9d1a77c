// Package ident issues structural identifiers for the reference-preserving
// document format emitted by the terrain editor.
//
// Every referenceable object in a project file carries a document-local
// integer identity. The first occurrence of an object defines it under that
// identity; every later occurrence is a back-reference to the defining one.
// The allocator hands out those identities for a single build session.
//
// Allocators are intentionally cheap and session-scoped: one allocator per
// document, never shared across documents. Duplicate identities caused by
// caller-supplied ids are a structural defect detected downstream, not
// something the allocator can prevent on its own.
package ident

import (
	"fmt"
	"strconv"
)

// ID is a document-local structural identifier.
// It is distinct from caller-facing node ids, which identify nodes in the
// terrain graph rather than objects in the serialized document.
type ID int

// String returns the identifier in its serialized form.
// The target format writes identities as decimal strings.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Ref is a back-reference to a previously defined object.
type Ref struct {
	Target ID
}

// MarshalJSON writes the reference in its serialized form, a single-key
// object pointing at the defining identity.
func (r Ref) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("{\"$ref\":%q}", r.Target.String())), nil
}

// Allocator issues monotonically increasing structural identifiers.
//
// The zero value is not usable - use New. An Allocator is scoped to one
// build session and is not safe for concurrent use; concurrent builds must
// each use their own instance.
type Allocator struct {
	next ID
}

// New creates an allocator whose first issued identifier is 1.
func New() *Allocator {
	return &Allocator{next: 1}
}

// Next issues the next identifier. Identifiers are never reused within a
// session.
func (a *Allocator) Next() ID {
	id := a.next
	a.next++
	return id
}

// Reference creates a back-reference to an already-issued identifier.
func (a *Allocator) Reference(existing ID) Ref {
	return Ref{Target: existing}
}

// Advance moves the counter past min if it is not already beyond it.
// Repair passes use this to guarantee fresh identities that cannot collide
// with any identifier observed in a defective document.
func (a *Allocator) Advance(min ID) {
	if a.next <= min {
		a.next = min + 1
	}
}

// Issued reports how many identifiers have been handed out so far.
func (a *Allocator) Issued() int {
	return int(a.next) - 1
}
