// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates

import (
	"github.com/irrcore/registryd/rpsl"
)

// RequestType - what a candidate asks the store to do
type RequestType int

// request types
const (
	Create RequestType = iota
	Modify
	Delete
)

func (r RequestType) String() string {
	switch r {
	case Create:
		return "Create"
	case Modify:
		return "Modify"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Status - validation state of a candidate
type Status int

// candidate states
//
// Invalid is terminal: a candidate never becomes valid again after
// any check failed
const (
	Pending Status = iota
	Valid
	Invalid
)

// Candidate - one submitted object working its way through validation
//
// mutated only by the handler; errors and infos are append-only
type Candidate struct {
	Object  *rpsl.Object // nil when the paragraph failed to parse
	Text    string       // original submitted text
	Request RequestType

	status       Status
	errors       []string
	infos        []string
	existingText string // previously stored version, for notifications
}

// NewCandidates - convert parsed segments into candidates
//
// segments that failed parsing or validation arrive already invalid,
// carrying their diagnostics; request types start as Create or Delete
// and the handler upgrades Create to Modify after a key lookup
func NewCandidates(submission *rpsl.Submission) []*Candidate {

	candidates := make([]*Candidate, 0, len(submission.Segments))

	for _, segment := range submission.Segments {
		candidate := &Candidate{
			Object:  segment.Object,
			Text:    segment.Text,
			Request: Create,
			infos:   segment.Infos,
		}
		if segment.Delete {
			candidate.Request = Delete
		}
		if len(segment.Errors) > 0 {
			candidate.status = Invalid
			candidate.errors = segment.Errors
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// Status - current validation state
func (c *Candidate) Status() Status {
	return c.status
}

// Invalidate - record an error and make the candidate terminal
func (c *Candidate) Invalidate(message string) {
	c.errors = append(c.errors, message)
	c.status = Invalid
}

// AddInfo - record an informational message
func (c *Candidate) AddInfo(message string) {
	c.infos = append(c.infos, message)
}

// markValid - only a candidate that never failed becomes valid
func (c *Candidate) markValid() {
	if Invalid != c.status {
		c.status = Valid
	}
}

// Errors - diagnostics in append order
func (c *Candidate) Errors() []string {
	return c.errors
}

// Infos - informational messages in append order
func (c *Candidate) Infos() []string {
	return c.infos
}

// checkable - candidates taking part in reference resolution
func (c *Candidate) checkable() bool {
	return Invalid != c.status && Delete != c.Request && nil != c.Object
}
