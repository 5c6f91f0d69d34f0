// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates

import (
	"fmt"
	"strings"
)

const sectionRule = "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~\n"

// BuildReport - the submitter-facing report for one submission
//
// a summary block with per-request-type counts, then one section per
// candidate in submission order
func BuildReport(candidates []*Candidate) string {

	succeeded := map[RequestType]int{}
	failed := map[RequestType]int{}
	totalOK := 0
	totalFailed := 0

	for _, candidate := range candidates {
		if Valid == candidate.Status() {
			succeeded[candidate.Request] += 1
			totalOK += 1
		} else {
			failed[candidate.Request] += 1
			totalFailed += 1
		}
	}

	var s strings.Builder

	s.WriteString("SUMMARY OF UPDATE:\n\n")
	fmt.Fprintf(&s, "Number of objects found:                   %d\n", len(candidates))
	fmt.Fprintf(&s, "Number of objects processed successfully:  %d\n", totalOK)
	fmt.Fprintf(&s, "  Create:        %d\n", succeeded[Create])
	fmt.Fprintf(&s, "  Modify:        %d\n", succeeded[Modify])
	fmt.Fprintf(&s, "  Delete:        %d\n", succeeded[Delete])
	fmt.Fprintf(&s, "Number of objects processed with errors:   %d\n", totalFailed)
	fmt.Fprintf(&s, "  Create:        %d\n", failed[Create])
	fmt.Fprintf(&s, "  Modify:        %d\n", failed[Modify])
	fmt.Fprintf(&s, "  Delete:        %d\n", failed[Delete])

	s.WriteString("\nDETAILED EXPLANATION:\n\n")
	s.WriteString(sectionRule)

	for i, candidate := range candidates {
		if i > 0 {
			s.WriteString("---\n")
		}
		writeSection(&s, candidate)
	}

	s.WriteString(sectionRule)
	return s.String()
}

func writeSection(s *strings.Builder, candidate *Candidate) {

	ok := Valid == candidate.Status()

	if nil == candidate.Object {
		s.WriteString("FAILED: unrecognised object\n")
	} else {
		verdict := "succeeded"
		if !ok {
			verdict = "FAILED"
		}
		fmt.Fprintf(s, "%s %s: [%s] %s\n",
			candidate.Request, verdict,
			candidate.Object.Class, candidate.Object.PrimaryKey())
	}

	if len(candidate.Errors()) > 0 || len(candidate.Infos()) > 0 {
		s.WriteString("\n")
	}
	for _, message := range candidate.Errors() {
		fmt.Fprintf(s, "ERROR: %s\n", message)
	}
	for _, message := range candidate.Infos() {
		fmt.Fprintf(s, "INFO: %s\n", message)
	}

	// failed objects are echoed back for correction
	if !ok && "" != candidate.Text {
		s.WriteString("\n")
		s.WriteString(candidate.Text)
	}
	s.WriteString("\n")
}
