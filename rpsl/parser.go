// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpsl

import (
	"fmt"
	"regexp"
	"strings"
)

// Segment - one paragraph of a submission
//
// the object may be nil when the paragraph failed validation; the
// original text is kept for reporting
type Segment struct {
	Text   string
	Object *Object
	Delete bool
	Errors []string
	Infos  []string
}

// Submission - a parsed multi-object submission
type Submission struct {
	Segments  []*Segment
	Passwords []string // password pseudo-attributes, in submission order
}

// attribute lines: name, colon, optional value
var attributeLine = regexp.MustCompile(`^([a-zA-Z0-9_-]+):(.*)$`)

// pseudo-attributes are submission metadata, not object content
const (
	pseudoDelete   = "delete"
	pseudoPassword = "password"
	pseudoOverride = "override"
)

// ParseSubmission - split submitted text into validated objects
//
// paragraphs are separated by blank lines; submission order is
// preserved so that reports can mirror the input
func ParseSubmission(text string) *Submission {

	submission := &Submission{}

	for _, paragraph := range splitParagraphs(text) {
		segment := parseSegment(paragraph, submission)
		if nil != segment {
			submission.Segments = append(submission.Segments, segment)
		}
	}
	return submission
}

// split on runs of blank lines, dropping comment-only lines
func splitParagraphs(text string) []string {

	paragraphs := []string(nil)
	current := []string(nil)

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		switch {
		case "" == strings.TrimSpace(trimmed):
			flush()
		case strings.HasPrefix(trimmed, "%") || strings.HasPrefix(trimmed, "#"):
			// comment line
		default:
			current = append(current, trimmed)
		}
	}
	flush()
	return paragraphs
}

// parse one paragraph into a segment
//
// returns nil for paragraphs containing only pseudo-attributes
// (a bare password line between objects)
func parseSegment(paragraph string, submission *Submission) *Segment {

	attributes := []Attribute(nil)
	deleteRequested := false
	parseErrors := []string(nil)

	for _, line := range strings.Split(paragraph, "\n") {

		// continuation of the previous value
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "+") {
			if 0 == len(attributes) {
				parseErrors = append(parseErrors, fmt.Sprintf("Continuation line without an attribute: %q", line))
				continue
			}
			last := &attributes[len(attributes)-1]
			last.Value = last.Value + " " + strings.TrimSpace(strings.TrimPrefix(line, "+"))
			continue
		}

		m := attributeLine.FindStringSubmatch(line)
		if nil == m {
			parseErrors = append(parseErrors, fmt.Sprintf("Line is neither attribute nor continuation: %q", line))
			continue
		}
		name := strings.ToLower(m[1])
		value := strings.TrimSpace(m[2])

		switch name {
		case pseudoDelete:
			deleteRequested = true
		case pseudoPassword:
			submission.Passwords = append(submission.Passwords, value)
		case pseudoOverride:
			// accepted and ignored: override handling is an
			// authorisation concern
		default:
			attributes = append(attributes, Attribute{Name: name, Value: value})
		}
	}

	if 0 == len(attributes) && 0 == len(parseErrors) {
		return nil
	}

	segment := &Segment{
		Text:   paragraph + "\n",
		Delete: deleteRequested,
		Errors: parseErrors,
	}

	if len(parseErrors) > 0 {
		return segment
	}

	object, infos, errs := NewObject(attributes)
	segment.Object = object
	segment.Infos = infos
	segment.Errors = errs
	return segment
}
