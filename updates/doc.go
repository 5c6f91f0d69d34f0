// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// process one update submission end to end
//
// a submission is parsed into candidates, references are resolved to a
// fixed point, surviving candidates are authorised and persisted into
// one store transaction, and a submitter report is produced
//
// the caller owns the transaction: it calls Store.Begin before
// Process and decides afterwards whether to Commit or Rollback
package updates
