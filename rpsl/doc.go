// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpsl - object model for Routing Policy Specification Language
//
// Defines the supported object classes, the per-class rules (primary
// key derivation, mandatory attributes, outbound references) and the
// parser that turns submitted text into validated objects.
//
// Attributes are kept as an ordered list so that duplicate attribute
// names survive a parse/render round trip unchanged.
//
// Notes:
// 1. primary keys are upper-cased for comparison and storage
// 2. route/route6 primary key = prefix ++ "," ++ origin
// 3. inetnum/inet6num ranges are reformatted to a canonical
//    "first - last" form; an info diagnostic records the rewrite
package rpsl
