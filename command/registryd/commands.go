// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/irrcore/registryd/util"
	"github.com/irrcore/registryd/version"
)

const (
	submissionCertificateFilename = "submission.crt"
	submissionPrivateKeyFilename  = "submission.key"
)

// setup command handler
//
// commands that run to create certificate files; these commands
// cannot access any internal database or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-cert", "cert":
		certificateFilename := getFilenameWithDirectory(arguments, submissionCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, submissionPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("submission", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "version", "v":
		fmt.Println(version.Version)

	case "start", "run":
		return false // continue processing

	case "help", "h", "?":
		fmt.Printf("usage: %s [--help] [--quiet] [--version] --config-file=FILE [command]\n", program)
		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                   (h)       - display this message\n\n")
		fmt.Printf("  version                (v)       - display version\n\n")
		fmt.Printf("  gen-cert [DIR] [HOSTS] (cert)    - create a self-signed TLS certificate and key\n")
		fmt.Printf("                                     HOSTS are added as subject alternative names\n\n")
		fmt.Printf("  start                  (run)     - just run the daemon\n\n")

	default:
		fmt.Printf("unknown command: %q\n", command)
		fmt.Printf("run: %s help  for the command list\n", program)
		exitwithstatus.Exit(1)
	}
	return true
}

// command argument is an optional directory
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		directory = arguments[0]
	}
	return util.EnsureAbsolute(directory, name)
}
