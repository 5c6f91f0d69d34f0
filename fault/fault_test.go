// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/irrcore/registryd/fault"
)

var (
	errExistsOne   = fault.ExistsError("exists one")
	errExistsTwo   = fault.ExistsError("exists two")
	errInvalidOne  = fault.InvalidError("invalid one")
	errNotFoundOne = fault.NotFoundError("not found one")
	errProcessOne  = fault.ProcessError("process one")
)

// check that errors with the same message but different classes
// still compare as different
func TestErrorClasses(t *testing.T) {

	if errExistsOne == errExistsTwo {
		t.Errorf("error: %q matches: %q", errExistsOne, errExistsTwo)
	}

	ee := fault.ExistsError("exists one")
	if errExistsOne != ee {
		t.Errorf("error: %q does not match: %q", errExistsOne, ee)
	}

	var e1 error = errInvalidOne
	var e2 error = errNotFoundOne
	var e3 error = errProcessOne

	if e1 == e2 || e2 == e3 || e1 == e3 {
		t.Error("different error classes compare as equal")
	}

	if "invalid one" != e1.Error() {
		t.Errorf("unexpected message: %q", e1.Error())
	}
}

// the predefined instances must be distinct
func TestPredefinedErrors(t *testing.T) {

	if fault.ErrAlreadyInitialised == fault.ErrNotInitialised {
		t.Error("initialise errors compare as equal")
	}

	var err error = fault.ErrStoreCorrupted
	if "pending batch invariant violated" != err.Error() {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
