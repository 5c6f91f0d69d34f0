// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// read the daemon configuration
//
// the configuration file is a Lua program whose final expression is a
// table; executing a real language keeps site configurations short
// (loops over sources, shared prefixes) without inventing a dialect
package configuration
