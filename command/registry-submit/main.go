// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// registry-submit - send an RPSL update file to a running registryd
// and print the resulting report
package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/irrcore/registryd/version"
)

func main() {

	app := cli.NewApp()
	app.Name = "registry-submit"
	app.Usage = "submit RPSL updates to a registryd"
	app.Version = version.Version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:4343",
			Usage: " registryd submission host/IP and port, `HOST:PORT`",
		},
		cli.BoolFlag{
			Name:  "dry-run, n",
			Usage: " validate the update without committing it",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose progress",
		},
	}

	app.ArgsUsage = "FILE  (\"-\" reads standard input)"
	app.Action = runSubmit

	err := app.Run(os.Args)
	if nil != err {
		cli.HandleExitCoder(err)
	}
}
