// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// TLS submission front end
//
// accepts line oriented connections carrying one RPSL submission each:
// an optional "dry-run" first line, the object paragraphs, then a
// single "." line to finish; the full update report is written back
// before the connection closes
//
// submissions are applied one at a time; each connection owns the
// store transaction for the duration of its update
package server
