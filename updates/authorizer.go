// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates

import (
	"fmt"

	"github.com/irrcore/registryd/rpsl"
	"github.com/irrcore/registryd/storage"
)

// Authorizer - decides whether a candidate may change the registry
//
// the whole submission is passed along so implementations can accept
// objects that depend on other candidates of the same submission;
// credential verification lives outside this engine
type Authorizer interface {
	Authorize(candidate *Candidate, submission []*Candidate) (bool, string)
}

// AllowAll - authorizer admitting every candidate
type AllowAll struct{}

// Authorize - always allowed
func (AllowAll) Authorize(*Candidate, []*Candidate) (bool, string) {
	return true, ""
}

// MaintainerAuthorizer - requires every mnt-by maintainer to exist
//
// a maintainer may exist in the store or be a surviving candidate of
// the same submission; since the reference checker already resolved
// mnt-by for checkable candidates this mainly guards delete requests,
// which skip reference resolution
type MaintainerAuthorizer struct {
	Store *storage.Store
}

// Authorize - reject candidates with an unknown maintainer
func (a MaintainerAuthorizer) Authorize(candidate *Candidate, submission []*Candidate) (bool, string) {

	obj := candidate.Object
	if nil == obj {
		return false, "object could not be parsed"
	}

loop:
	for _, value := range obj.All("mnt-by") {
		key := referenceTarget(value)

		if a.Store.ExistsAny(obj.Source, []string{rpsl.Mntner.String()}, key) {
			continue loop
		}
		for _, other := range submission {
			if other.checkable() &&
				rpsl.Mntner == other.Object.Class &&
				obj.Source == other.Object.Source &&
				key == other.Object.PrimaryKey() {
				continue loop
			}
		}

		return false, fmt.Sprintf(
			"Authorisation failed for [%s] %s: maintainer %s does not exist in database %s",
			obj.Class, obj.PrimaryKey(), key, obj.Source)
	}
	return true, ""
}
