// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irrcore/registryd/fault"
)

func TestReadSubmission(t *testing.T) {
	input := "person: A\nsource: TEST\n.\nignored trailing text\n"

	dryRun, text, err := readSubmission(strings.NewReader(input))
	assert.Nil(t, err, "read error")
	assert.False(t, dryRun, "unexpected dry-run")
	assert.Equal(t, "person: A\nsource: TEST\n", text, "wrong text")
}

func TestReadSubmissionDryRun(t *testing.T) {
	input := "dry-run\nperson: A\n.\n"

	dryRun, text, err := readSubmission(strings.NewReader(input))
	assert.Nil(t, err, "read error")
	assert.True(t, dryRun, "dry-run not detected")
	assert.Equal(t, "person: A\n", text, "wrong text")
}

// "dry-run" is only special on the first line
func TestReadSubmissionDryRunNotFirst(t *testing.T) {
	input := "person: A\ndry-run\n.\n"

	dryRun, text, err := readSubmission(strings.NewReader(input))
	assert.Nil(t, err, "read error")
	assert.False(t, dryRun, "dry-run detected mid-submission")
	assert.Equal(t, "person: A\ndry-run\n", text, "wrong text")
}

// EOF without the terminator still yields the collected text
func TestReadSubmissionEOF(t *testing.T) {
	input := "person: A\nsource: TEST\n"

	dryRun, text, err := readSubmission(strings.NewReader(input))
	assert.Nil(t, err, "read error")
	assert.False(t, dryRun, "unexpected dry-run")
	assert.Equal(t, input, text, "wrong text")
}

func TestReadSubmissionTooLarge(t *testing.T) {
	line := strings.Repeat("x", 4000) + "\n"
	input := strings.Repeat(line, 300) + ".\n"

	_, _, err := readSubmission(strings.NewReader(input))
	assert.Equal(t, fault.ErrSubmissionTooLarge, err, "oversize submission accepted")
}
