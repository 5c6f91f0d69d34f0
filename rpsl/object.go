// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpsl

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Attribute - one attribute line of an object
type Attribute struct {
	Name  string
	Value string
}

// Object - a validated RPSL object
//
// construct only via NewObject so that the primary key and the
// address/ASN ranges are consistent with the attribute list
type Object struct {
	Class      Class
	Source     string
	Attributes []Attribute

	primaryKey string
	ipFirst    net.IP
	ipLast     net.IP
	asnFirst   uint32
	asnLast    uint32
	hasIP      bool
	hasASN     bool
}

// NewObject - validate an attribute list and build the object
//
// diagnostics are returned as human readable strings: info messages
// for accepted rewrites, error messages for fatal problems; the
// object is non-nil whenever the class was recognised, so callers can
// still report class and key, but it must not be persisted when any
// error was produced
func NewObject(attributes []Attribute) (*Object, []string, []string) {

	infos := []string{}
	errs := []string{}

	if 0 == len(attributes) {
		return nil, nil, []string{"Object contains no attributes"}
	}

	class, err := ParseClass(attributes[0].Name)
	if nil != err {
		return nil, nil, []string{fmt.Sprintf("Unknown object class: %s", attributes[0].Name)}
	}
	spec := classes[class]

	obj := &Object{
		Class:      class,
		Attributes: attributes,
	}

	for _, name := range spec.mandatory {
		if _, ok := obj.First(name); !ok {
			errs = append(errs, fmt.Sprintf("Mandatory attribute '%s' on object %s is missing", name, class))
		}
	}

	if source, ok := obj.First("source"); ok {
		obj.Source = strings.ToUpper(strings.TrimSpace(source))
	}

	keyErrs, keyInfos := obj.deriveKey(spec)
	errs = append(errs, keyErrs...)
	infos = append(infos, keyInfos...)

	if len(errs) > 0 {
		return obj, infos, errs
	}
	return obj, infos, nil
}

// derive the primary key and the address/ASN ranges
func (obj *Object) deriveKey(spec classSpec) ([]string, []string) {

	errs := []string{}
	infos := []string{}

	parts := make([]string, 0, len(spec.primaryKey))
	for _, name := range spec.primaryKey {
		value, ok := obj.First(name)
		if !ok {
			// mandatory check already reported the missing attribute
			return errs, infos
		}
		parts = append(parts, strings.TrimSpace(value))
	}

	switch obj.Class {

	case Route, Route6:
		first, last, err := cidrRange(parts[0])
		if nil != err {
			errs = append(errs, fmt.Sprintf("Invalid address prefix: %s", parts[0]))
		} else {
			obj.ipFirst = first
			obj.ipLast = last
			obj.hasIP = true
		}
		asn, err := parseASN(parts[1])
		if nil != err {
			errs = append(errs, fmt.Sprintf("Invalid origin: %s", parts[1]))
		} else {
			obj.asnFirst = asn
			obj.asnLast = asn
			obj.hasASN = true
		}
		obj.primaryKey = strings.ToUpper(parts[0] + "," + parts[1])

	case Inetnum, Inet6num:
		first, last, canonical, err := addressRange(parts[0])
		if nil != err {
			errs = append(errs, fmt.Sprintf("Invalid address range: %s", parts[0]))
			break
		}
		obj.ipFirst = first
		obj.ipLast = last
		obj.hasIP = true
		if canonical != parts[0] {
			infos = append(infos, fmt.Sprintf("Address range %s was reformatted as %s", parts[0], canonical))
		}
		obj.primaryKey = strings.ToUpper(canonical)

	case AutNum:
		asn, err := parseASN(parts[0])
		if nil != err {
			errs = append(errs, fmt.Sprintf("Invalid AS number: %s", parts[0]))
		} else {
			obj.asnFirst = asn
			obj.asnLast = asn
			obj.hasASN = true
		}
		obj.primaryKey = strings.ToUpper(parts[0])

	default:
		obj.primaryKey = strings.ToUpper(strings.Join(parts, ","))
	}

	return errs, infos
}

// PrimaryKey - the canonical primary key
func (obj *Object) PrimaryKey() string {
	return obj.primaryKey
}

// First - the first value of a named attribute
func (obj *Object) First(name string) (string, bool) {
	for _, a := range obj.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// All - every value of a named attribute in submission order
func (obj *Object) All(name string) []string {
	values := []string(nil)
	for _, a := range obj.Attributes {
		if a.Name == name {
			values = append(values, a.Value)
		}
	}
	return values
}

// IPRange - address range covered by the object, if any
func (obj *Object) IPRange() (net.IP, net.IP, bool) {
	return obj.ipFirst, obj.ipLast, obj.hasIP
}

// ASNRange - ASN range covered by the object, if any
func (obj *Object) ASNRange() (uint32, uint32, bool) {
	return obj.asnFirst, obj.asnLast, obj.hasASN
}

// Render - canonical text form, preserving attribute order
func (obj *Object) Render() string {
	var s strings.Builder
	for _, a := range obj.Attributes {
		s.WriteString(fmt.Sprintf("%-15s %s\n", a.Name+":", a.Value))
	}
	return s.String()
}

// first and last address of a CIDR prefix
func cidrRange(prefix string) (net.IP, net.IP, error) {
	_, network, err := net.ParseCIDR(prefix)
	if nil != err {
		return nil, nil, err
	}
	first := network.IP
	last := make(net.IP, len(first))
	for i := range first {
		last[i] = first[i] | ^network.Mask[i]
	}
	return first, last, nil
}

// parse a "first - last" address range and produce its canonical form
func addressRange(s string) (net.IP, net.IP, string, error) {
	halves := strings.SplitN(s, "-", 2)
	if 2 != len(halves) {
		return nil, nil, "", fmt.Errorf("range %q is missing a separator", s)
	}
	first := net.ParseIP(strings.TrimSpace(halves[0]))
	last := net.ParseIP(strings.TrimSpace(halves[1]))
	if nil == first || nil == last {
		return nil, nil, "", fmt.Errorf("range %q has an unparseable address", s)
	}
	canonical := first.String() + " - " + last.String()
	return first, last, canonical, nil
}

// parse an "AS<number>" origin
func parseASN(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "AS") {
		return 0, fmt.Errorf("origin %q is missing the AS prefix", s)
	}
	n, err := strconv.ParseUint(upper[2:], 10, 32)
	if nil != err {
		return 0, err
	}
	return uint32(n), nil
}
