// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ProcessError("already initialised")
	ErrCertificateFileExists   = ExistsError("certificate file already exists")
	ErrForcedSerialOutOfOrder  = InvalidError("forced serial is not greater than newest serial")
	ErrInvalidFlushThreshold   = InvalidError("flush threshold must be at least one record")
	ErrInvalidObjectClass      = InvalidError("object class is invalid")
	ErrKeyFileExists           = ExistsError("key file already exists")
	ErrMissingListenAddress    = InvalidError("missing listen address")
	ErrNotInitialised          = ProcessError("not initialised")
	ErrRateLimiting            = ProcessError("rate limiting")
	ErrResolutionNotConverging = ProcessError("reference resolution did not converge")
	ErrSerialNotFound          = NotFoundError("journal serial not found")
	ErrStoreCorrupted          = ProcessError("pending batch invariant violated")
	ErrSubmissionTooLarge      = InvalidError("submission exceeds maximum size")
	ErrTransactionAlreadyInUse = ProcessError("transaction already in use")
	ErrUnknownSource           = NotFoundError("source is not configured")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
