// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/irrcore/registryd/fault"
	"github.com/irrcore/registryd/rpsl"
	"github.com/irrcore/registryd/storage"
)

// Handler - orchestrates one submission
type Handler struct {
	log     *logger.L
	store   *storage.Store
	checker *ReferenceChecker
	auth    Authorizer
}

// Result - outcome of one submission
type Result struct {
	Candidates    []*Candidate
	Report        string
	Notifications []Notification
}

// NewHandler - handler writing through one store
func NewHandler(store *storage.Store, auth Authorizer) *Handler {
	return &Handler{
		log:     logger.New("updates"),
		store:   store,
		checker: NewReferenceChecker(store),
		auth:    auth,
	}
}

// ProcessText - parse and process raw submission text
func (h *Handler) ProcessText(text string) (*Result, error) {
	return h.Process(rpsl.ParseSubmission(text))
}

// Process - run one submission through resolution, authorisation and
// persistence
//
// per-candidate failures are recorded on the candidates and never
// abort the submission; only store failures are fatal, in which case
// the caller must Rollback; otherwise the caller chooses Commit or
// Rollback (dry run)
func (h *Handler) Process(submission *rpsl.Submission) (*Result, error) {

	candidates := NewCandidates(submission)

	h.classify(candidates)

	err := h.resolve(candidates)
	if nil != err {
		return nil, err
	}

	h.authorize(candidates)

	err = h.persist(candidates)
	if nil != err {
		return nil, err
	}

	return &Result{
		Candidates:    candidates,
		Report:        BuildReport(candidates),
		Notifications: buildNotifications(h.store, candidates),
	}, nil
}

// determine Create vs Modify and reject deletes of missing objects
func (h *Handler) classify(candidates []*Candidate) {

	for _, candidate := range candidates {
		obj := candidate.Object
		if nil == obj || "" == obj.PrimaryKey() {
			continue
		}

		existing, found := h.store.Lookup(obj.Source, obj.Class.String(), obj.PrimaryKey())
		if found {
			candidate.existingText = existing.Text
		}

		switch candidate.Request {
		case Delete:
			if !found {
				candidate.Invalidate(fmt.Sprintf(
					"Object [%s] %s does not exist in database %s - can not delete",
					obj.Class, obj.PrimaryKey(), obj.Source))
			}
		default:
			if found {
				candidate.Request = Modify
			}
		}
	}
}

// fixed-point reference resolution
//
// the valid set can only shrink, so the loop reaches a fixed point in
// at most len(candidates)+1 rounds; an overrun means a check marked a
// candidate valid again and is a fault, not a retry
func (h *Handler) resolve(candidates []*Candidate) error {

	previous := validKeys(candidates)

	for round := 0; ; round += 1 {
		if round > len(candidates) {
			h.log.Criticalf("resolution still changing after %d rounds", round)
			return fault.ErrResolutionNotConverging
		}

		h.checker.Preload(candidates)
		for _, candidate := range candidates {
			h.checker.CheckReferences(candidate)
		}

		current := validKeys(candidates)
		if keySetsEqual(previous, current) {
			return nil
		}
		previous = current
	}
}

// membership snapshot of the still-checkable candidates
func validKeys(candidates []*Candidate) map[string]struct{} {
	keys := map[string]struct{}{}
	for _, candidate := range candidates {
		if candidate.checkable() {
			obj := candidate.Object
			keys[cacheKey(obj.Source, obj.Class, obj.PrimaryKey())] = struct{}{}
		}
	}
	return keys
}

func keySetsEqual(a map[string]struct{}, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for key := range a {
		if _, ok := b[key]; !ok {
			return false
		}
	}
	return true
}

func (h *Handler) authorize(candidates []*Candidate) {
	for _, candidate := range candidates {
		if Invalid == candidate.Status() {
			continue
		}
		allowed, reason := h.auth.Authorize(candidate, candidates)
		if !allowed {
			candidate.Invalidate(reason)
		}
	}
}

// write all surviving candidates into the open transaction
func (h *Handler) persist(candidates []*Candidate) error {

	// keys deleted by this submission are no obstacle to each other
	deleting := map[string]struct{}{}
	for _, candidate := range candidates {
		if Invalid != candidate.Status() && Delete == candidate.Request && nil != candidate.Object {
			obj := candidate.Object
			deleting[cacheKey(obj.Source, obj.Class, obj.PrimaryKey())] = struct{}{}
		}
	}

	for _, candidate := range candidates {
		if Invalid == candidate.Status() || nil == candidate.Object {
			continue
		}
		obj := candidate.Object

		switch candidate.Request {

		case Delete:
			referrers, err := h.store.ReferencedBy(obj.Source, obj.PrimaryKey())
			if nil != err {
				return err
			}

			blocked := ""
			for _, referrer := range referrers {
				ck := cacheKey(obj.Source, rpsl.Class(referrer.Class), referrer.PrimaryKey)
				if _, ok := deleting[ck]; ok {
					continue
				}
				blocked = fmt.Sprintf("[%s] %s", referrer.Class, referrer.PrimaryKey)
				break
			}
			if "" != blocked {
				candidate.Invalidate(fmt.Sprintf(
					"Object [%s] %s can not be deleted - still referenced by %s",
					obj.Class, obj.PrimaryKey(), blocked))
				continue
			}

			err = h.store.Delete(storage.Record{
				Class:      obj.Class.String(),
				PrimaryKey: obj.PrimaryKey(),
				Source:     obj.Source,
				Text:       candidate.existingText,
			})
			if nil != err {
				return err
			}

		default:
			err := h.store.Upsert(storage.Record{
				Class:      obj.Class.String(),
				PrimaryKey: obj.PrimaryKey(),
				Source:     obj.Source,
				Text:       obj.Render(),
				RefersTo:   outboundReferences(obj),
			})
			if nil != err {
				return err
			}
		}

		candidate.markValid()
	}
	return nil
}

func outboundReferences(obj *rpsl.Object) []storage.Reference {
	references := []storage.Reference(nil)
	for _, rule := range rpsl.References(obj.Class) {
		for _, value := range obj.All(rule.Field) {
			references = append(references, storage.Reference{
				Field:      rule.Field,
				PrimaryKey: referenceTarget(value),
			})
		}
	}
	return references
}
