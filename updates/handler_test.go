// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irrcore/registryd/updates"
)

// a co-submitted reference cycle must survive resolution
func TestBootstrapCycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	store, _ := bootstrap(t)

	_, found := store.Lookup("TEST", "mntner", "TEST-MNT")
	assert.True(t, found, "mntner not stored")
	_, found = store.Lookup("TEST", "person", "PERSON-TEST")
	assert.True(t, found, "person not stored")
}

// an invalidation must cascade through the chain of referrers
func TestCascadingInvalidation(t *testing.T) {
	setup(t)
	defer teardown(t)

	store := newTestStore(t)
	handler := updates.NewHandler(store, updates.AllowAll{})

	// PERSON-2 references a missing maintainer; CHAIN-MNT needs
	// PERSON-2; PERSON-1 needs CHAIN-MNT
	text := `
person:         Person One
address:        somewhere
phone:          +00 0 000
nic-hdl:        PERSON-1
mnt-by:         CHAIN-MNT
e-mail:         one@example.com
changed:        2020-01-01T00:00:00Z
source:         TEST

mntner:         CHAIN-MNT
admin-c:        PERSON-2
upd-to:         upd@example.net
auth:           PGPKey-80F238C6
mnt-by:         CHAIN-MNT
changed:        2020-01-01T00:00:00Z
source:         TEST

person:         Person Two
address:        somewhere
phone:          +00 0 000
nic-hdl:        PERSON-2
mnt-by:         MISSING-MNT
e-mail:         two@example.com
changed:        2020-01-01T00:00:00Z
source:         TEST
`
	err := store.Begin()
	assert.Nil(t, err, "begin error")
	result, err := handler.ProcessText(text)
	assert.Nil(t, err, "process error")
	store.Rollback()

	assert.Equal(t, 3, len(result.Candidates), "wrong candidate count")
	for _, candidate := range result.Candidates {
		assert.Equal(t, updates.Invalid, candidate.Status(), "candidate survived broken chain")
	}

	assert.Equal(t, []string{
		"Object MISSING-MNT referenced in field mnt-by not found in database TEST - must reference one of mntner.",
	}, result.Candidates[2].Errors(), "wrong error")
	assert.Equal(t, []string{
		"Object PERSON-2 referenced in field admin-c not found in database TEST - must reference one of role, person.",
	}, result.Candidates[1].Errors(), "wrong error")
	assert.Equal(t, []string{
		"Object CHAIN-MNT referenced in field mnt-by not found in database TEST - must reference one of mntner.",
	}, result.Candidates[0].Errors(), "wrong error")
}

func TestModifyDetection(t *testing.T) {
	setup(t)
	defer teardown(t)

	store, handler := bootstrap(t)

	modified := strings.Replace(personText, "The Netherlands", "Germany", 1)
	result := commitSubmission(t, store, handler, modified)

	assert.Equal(t, 1, len(result.Candidates), "wrong candidate count")
	candidate := result.Candidates[0]
	assert.Equal(t, updates.Modify, candidate.Request, "modify not detected")
	assert.Equal(t, updates.Valid, candidate.Status(), "modify failed")

	record, found := store.Lookup("TEST", "person", "PERSON-TEST")
	assert.True(t, found, "person missing")
	assert.Contains(t, record.Text, "Germany", "modification lost")
}

func TestDeleteDanglingReference(t *testing.T) {
	setup(t)
	defer teardown(t)

	store, handler := bootstrap(t)

	// the person still maintains the mntner
	deleteText := strings.TrimRight(personText, "\n") + "\ndelete:         obsolete\n"
	result := commitSubmission(t, store, handler, deleteText)

	candidate := result.Candidates[0]
	assert.Equal(t, updates.Invalid, candidate.Status(), "referenced object deleted")
	assert.Equal(t, []string{
		"Object [person] PERSON-TEST can not be deleted - still referenced by [mntner] TEST-MNT",
	}, candidate.Errors(), "wrong error")

	_, found := store.Lookup("TEST", "person", "PERSON-TEST")
	assert.True(t, found, "person vanished")

	// deleting both sides of the cycle together is allowed
	deleteBoth := strings.TrimRight(personText, "\n") + "\ndelete:         obsolete\n" +
		strings.TrimRight(mntnerText, "\n") + "\ndelete:         obsolete\n"
	result = commitSubmission(t, store, handler, deleteBoth)

	for _, candidate := range result.Candidates {
		assert.Equal(t, updates.Valid, candidate.Status(), "co-deletion blocked")
	}
	_, found = store.Lookup("TEST", "person", "PERSON-TEST")
	assert.False(t, found, "person not deleted")
	_, found = store.Lookup("TEST", "mntner", "TEST-MNT")
	assert.False(t, found, "mntner not deleted")
}

func TestDeleteMissingObject(t *testing.T) {
	setup(t)
	defer teardown(t)

	store, handler := bootstrap(t)

	text := `
as-set:         AS-NOTHERE
descr:          never existed
mnt-by:         TEST-MNT
changed:        2020-01-01T00:00:00Z
source:         TEST
delete:         never existed
`
	result := commitSubmission(t, store, handler, text)
	candidate := result.Candidates[0]
	assert.Equal(t, updates.Invalid, candidate.Status(), "missing object deleted")
	assert.Equal(t, []string{
		"Object [as-set] AS-NOTHERE does not exist in database TEST - can not delete",
	}, candidate.Errors(), "wrong error")
}

// a rolled back submission must leave the registry untouched
func TestDryRun(t *testing.T) {
	setup(t)
	defer teardown(t)

	store, handler := bootstrap(t)

	text := `
as-set:         AS-TESTSET
descr:          test set
mnt-by:         TEST-MNT
changed:        2020-01-01T00:00:00Z
source:         TEST
`
	err := store.Begin()
	assert.Nil(t, err, "begin error")
	result, err := handler.ProcessText(text)
	assert.Nil(t, err, "process error")
	assert.Equal(t, updates.Valid, result.Candidates[0].Status(), "create failed")
	store.Rollback()

	_, found := store.Lookup("TEST", "as-set", "AS-TESTSET")
	assert.False(t, found, "dry run persisted")
}

func TestReportFormat(t *testing.T) {
	setup(t)
	defer teardown(t)

	store, handler := bootstrap(t)

	text := `
as-set:         AS-TESTSET
descr:          test set
mnt-by:         TEST-MNT
changed:        2020-01-01T00:00:00Z
source:         TEST

as-set:         AS-BROKEN
descr:          broken set
mnt-by:         NO-SUCH-MNT
changed:        2020-01-01T00:00:00Z
source:         TEST
`
	result := commitSubmission(t, store, handler, text)

	expectedSummary := `SUMMARY OF UPDATE:

Number of objects found:                   2
Number of objects processed successfully:  1
  Create:        1
  Modify:        0
  Delete:        0
Number of objects processed with errors:   1
  Create:        1
  Modify:        0
  Delete:        0

DETAILED EXPLANATION:

`
	assert.True(t, strings.HasPrefix(result.Report, expectedSummary), "wrong summary block:\n%s", result.Report)
	assert.Contains(t, result.Report, "Create succeeded: [as-set] AS-TESTSET\n", "missing success section")
	assert.Contains(t, result.Report, "Create FAILED: [as-set] AS-BROKEN\n", "missing failure section")
	assert.Contains(t, result.Report,
		"ERROR: Object NO-SUCH-MNT referenced in field mnt-by not found in database TEST - must reference one of mntner.\n",
		"missing error line")
	// the failed object is echoed back
	assert.Contains(t, result.Report, "as-set:         AS-BROKEN\n", "failed object not echoed")
}

func TestNotifications(t *testing.T) {
	setup(t)
	defer teardown(t)

	store, handler := bootstrap(t)

	// successful modify notifies the object and its maintainers
	modified := strings.Replace(personText, "The Netherlands", "Belgium", 1)
	result := commitSubmission(t, store, handler, modified)

	recipients := []string(nil)
	for _, n := range result.Notifications {
		assert.True(t, n.Succeeded, "failure notification for success")
		assert.Equal(t, "PERSON-TEST", n.PrimaryKey, "wrong primary key")
		assert.Contains(t, n.OldText, "The Netherlands", "old text missing")
		assert.Contains(t, n.NewText, "Belgium", "new text missing")
		recipients = append(recipients, n.Recipient)
	}
	assert.Equal(t, []string{"notify@example.com", "notify-mnt@example.net"}, recipients, "wrong recipients")

	// a failed update goes to the maintainers' upd-to addresses
	broken := strings.Replace(personText, "PERSON-TEST", "PERSON-NEW", 1)
	broken = strings.Replace(broken, "TEST-MNT", "NO-SUCH-MNT", 1)
	result = commitSubmission(t, store, handler, broken)
	assert.Equal(t, updates.Invalid, result.Candidates[0].Status(), "broken object accepted")
	assert.Empty(t, result.Notifications, "notification for unknown maintainer")
}
