// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates

import (
	"strings"

	"github.com/irrcore/registryd/rpsl"
	"github.com/irrcore/registryd/storage"
)

// Notification - one message for the external mail component
//
// successful changes go to the object's notify addresses and the
// maintainers' mnt-nfy addresses; failed changes go to the
// maintainers' upd-to addresses; delivery is out of scope here
type Notification struct {
	Recipient  string
	Request    RequestType
	Succeeded  bool
	Class      string
	PrimaryKey string
	OldText    string
	NewText    string
}

func buildNotifications(store *storage.Store, candidates []*Candidate) []Notification {

	notifications := []Notification(nil)

	for _, candidate := range candidates {
		obj := candidate.Object
		if nil == obj || "" == obj.PrimaryKey() {
			continue
		}

		succeeded := Valid == candidate.Status()

		newText := ""
		if Delete != candidate.Request {
			newText = obj.Render()
		}

		recipients := []string(nil)
		if succeeded {
			recipients = append(recipients, obj.All("notify")...)
			recipients = append(recipients, maintainerAddresses(store, obj, "mnt-nfy")...)
		} else {
			recipients = maintainerAddresses(store, obj, "upd-to")
		}

		seen := map[string]struct{}{}
		for _, recipient := range recipients {
			recipient = strings.TrimSpace(recipient)
			if "" == recipient {
				continue
			}
			if _, ok := seen[recipient]; ok {
				continue
			}
			seen[recipient] = struct{}{}

			notifications = append(notifications, Notification{
				Recipient:  recipient,
				Request:    candidate.Request,
				Succeeded:  succeeded,
				Class:      obj.Class.String(),
				PrimaryKey: obj.PrimaryKey(),
				OldText:    candidate.existingText,
				NewText:    newText,
			})
		}
	}
	return notifications
}

// collect one named attribute from all stored maintainers of an object
func maintainerAddresses(store *storage.Store, obj *rpsl.Object, name string) []string {

	addresses := []string(nil)

	for _, value := range obj.All("mnt-by") {
		record, found := store.Lookup(obj.Source, rpsl.Mntner.String(), referenceTarget(value))
		if !found {
			continue
		}
		addresses = append(addresses, attributeValues(record.Text, name)...)
	}
	return addresses
}

// pull attribute values out of stored object text
func attributeValues(text string, name string) []string {

	values := []string(nil)

	for _, line := range strings.Split(text, "\n") {
		parts := strings.SplitN(line, ":", 2)
		if 2 != len(parts) {
			continue
		}
		if name == strings.ToLower(strings.TrimSpace(parts[0])) {
			values = append(values, strings.TrimSpace(parts[1]))
		}
	}
	return values
}
