// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates

import (
	"fmt"
	"strings"

	"github.com/irrcore/registryd/rpsl"
	"github.com/irrcore/registryd/storage"
)

// ReferenceChecker - resolves the outbound references of candidates
//
// the cache is rebuilt from scratch by Preload at the start of every
// resolution round, so invalidations found mid-round never influence
// lookups within the same round; read-only towards the store
type ReferenceChecker struct {
	store *storage.Store
	cache map[string]bool
}

// NewReferenceChecker - checker bound to one store
func NewReferenceChecker(store *storage.Store) *ReferenceChecker {
	return &ReferenceChecker{
		store: store,
	}
}

func cacheKey(source string, class rpsl.Class, primaryKey string) string {
	return source + "\x00" + class.String() + "\x00" + primaryKey
}

// Preload - build the existence cache for one resolution round
//
// co-submitted candidates that are still in play count as existing;
// everything else is answered by the store, one lookup per distinct
// (class, key) pair
func (r *ReferenceChecker) Preload(candidates []*Candidate) {

	r.cache = map[string]bool{}

	for _, candidate := range candidates {
		if !candidate.checkable() {
			continue
		}
		obj := candidate.Object
		r.cache[cacheKey(obj.Source, obj.Class, obj.PrimaryKey())] = true
	}

	for _, candidate := range candidates {
		if !candidate.checkable() {
			continue
		}
		obj := candidate.Object
		for _, rule := range rpsl.References(obj.Class) {
			for _, value := range obj.All(rule.Field) {
				key := referenceTarget(value)
				for _, target := range rule.Targets {
					ck := cacheKey(obj.Source, target, key)
					if _, ok := r.cache[ck]; ok {
						continue
					}
					r.cache[ck] = r.store.ExistsAny(obj.Source, []string{target.String()}, key)
				}
			}
		}
	}
}

// CheckReferences - resolve every reference-bearing attribute
//
// unresolved references invalidate the candidate in place; already
// invalid candidates are never re-checked
func (r *ReferenceChecker) CheckReferences(candidate *Candidate) {

	if !candidate.checkable() {
		return
	}
	obj := candidate.Object

	for _, rule := range rpsl.References(obj.Class) {
	values:
		for _, value := range obj.All(rule.Field) {
			key := referenceTarget(value)

			for _, target := range rule.Targets {
				if r.cache[cacheKey(obj.Source, target, key)] {
					continue values
				}
			}

			candidate.Invalidate(fmt.Sprintf(
				"Object %s referenced in field %s not found in database %s - must reference one of %s.",
				key, rule.Field, obj.Source, classList(rule.Targets)))
		}
	}
}

// canonical form of a referenced key
func referenceTarget(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func classList(classes []rpsl.Class) string {
	names := make([]string, len(classes))
	for i, class := range classes {
		names[i] = class.String()
	}
	return strings.Join(names, ", ")
}
