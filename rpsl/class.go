// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpsl

import (
	"github.com/irrcore/registryd/fault"
)

// Class - RPSL object class
type Class string

// all supported object classes
const (
	Person   Class = "person"
	Role     Class = "role"
	Mntner   Class = "mntner"
	KeyCert  Class = "key-cert"
	Route    Class = "route"
	Route6   Class = "route6"
	Inetnum  Class = "inetnum"
	Inet6num Class = "inet6num"
	AutNum   Class = "aut-num"
	ASSet    Class = "as-set"
	RouteSet Class = "route-set"
	Domain   Class = "domain"
)

// ReferenceRule - an attribute whose value must name another object
type ReferenceRule struct {
	Field   string  // referring attribute name
	Targets []Class // acceptable classes for the referred object
}

// per-class parsing and validation rules
type classSpec struct {
	primaryKey []string // attributes concatenated to form the primary key
	mandatory  []string
	references []ReferenceRule
}

// shared reference rules
var (
	refAdminC = ReferenceRule{Field: "admin-c", Targets: []Class{Role, Person}}
	refTechC  = ReferenceRule{Field: "tech-c", Targets: []Class{Role, Person}}
	refZoneC  = ReferenceRule{Field: "zone-c", Targets: []Class{Role, Person}}
	refMntBy  = ReferenceRule{Field: "mnt-by", Targets: []Class{Mntner}}
)

var classes = map[Class]classSpec{
	Person: {
		primaryKey: []string{"nic-hdl"},
		mandatory:  []string{"person", "nic-hdl", "address", "phone", "e-mail", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refMntBy},
	},
	Role: {
		primaryKey: []string{"nic-hdl"},
		mandatory:  []string{"role", "nic-hdl", "address", "e-mail", "admin-c", "tech-c", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refAdminC, refTechC, refMntBy},
	},
	Mntner: {
		primaryKey: []string{"mntner"},
		mandatory:  []string{"mntner", "admin-c", "upd-to", "auth", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refAdminC, refMntBy},
	},
	KeyCert: {
		primaryKey: []string{"key-cert"},
		mandatory:  []string{"key-cert", "certif", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refMntBy},
	},
	Route: {
		primaryKey: []string{"route", "origin"},
		mandatory:  []string{"route", "origin", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refMntBy},
	},
	Route6: {
		primaryKey: []string{"route6", "origin"},
		mandatory:  []string{"route6", "origin", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refMntBy},
	},
	Inetnum: {
		primaryKey: []string{"inetnum"},
		mandatory:  []string{"inetnum", "netname", "country", "admin-c", "tech-c", "status", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refAdminC, refTechC, refMntBy},
	},
	Inet6num: {
		primaryKey: []string{"inet6num"},
		mandatory:  []string{"inet6num", "netname", "country", "admin-c", "tech-c", "status", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refAdminC, refTechC, refMntBy},
	},
	AutNum: {
		primaryKey: []string{"aut-num"},
		mandatory:  []string{"aut-num", "as-name", "admin-c", "tech-c", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refAdminC, refTechC, refMntBy},
	},
	ASSet: {
		primaryKey: []string{"as-set"},
		mandatory:  []string{"as-set", "descr", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refMntBy},
	},
	RouteSet: {
		primaryKey: []string{"route-set"},
		mandatory:  []string{"route-set", "descr", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refMntBy},
	},
	Domain: {
		primaryKey: []string{"domain"},
		mandatory:  []string{"domain", "admin-c", "tech-c", "zone-c", "mnt-by", "changed", "source"},
		references: []ReferenceRule{refAdminC, refTechC, refZoneC, refMntBy},
	},
}

// ParseClass - convert an attribute name to an object class
func ParseClass(name string) (Class, error) {
	c := Class(name)
	if _, ok := classes[c]; !ok {
		return "", fault.ErrInvalidObjectClass
	}
	return c, nil
}

// References - the reference rules for a class
func References(class Class) []ReferenceRule {
	return classes[class].references
}

// String - the class name
func (c Class) String() string {
	return string(c)
}
