// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/urfave/cli"
)

func runSubmit(c *cli.Context) error {

	if 1 != c.NArg() {
		return cli.NewExitError("exactly one update file is required", 1)
	}

	fileName := c.Args().Get(0)

	var text []byte
	var err error
	if "-" == fileName {
		text, err = ioutil.ReadAll(os.Stdin)
	} else {
		text, err = ioutil.ReadFile(fileName)
	}
	if nil != err {
		return cli.NewExitError(fmt.Sprintf("read: %q error: %s", fileName, err), 1)
	}

	connect := c.GlobalString("connect")
	if c.GlobalBool("verbose") {
		fmt.Fprintf(c.App.ErrWriter, "connecting to: %s\n", connect)
	}

	// the daemon presents a self-signed certificate
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		return cli.NewExitError(fmt.Sprintf("connect: %s error: %s", connect, err), 1)
	}
	defer conn.Close()

	if c.GlobalBool("dry-run") {
		_, err = io.WriteString(conn, "dry-run\n")
		if nil != err {
			return cli.NewExitError(fmt.Sprintf("send error: %s", err), 1)
		}
	}

	_, err = conn.Write(text)
	if nil != err {
		return cli.NewExitError(fmt.Sprintf("send error: %s", err), 1)
	}

	// terminate the submission
	terminator := "\n.\n"
	if strings.HasSuffix(string(text), "\n") {
		terminator = ".\n"
	}
	_, err = io.WriteString(conn, terminator)
	if nil != err {
		return cli.NewExitError(fmt.Sprintf("send error: %s", err), 1)
	}

	report, err := ioutil.ReadAll(conn)
	if nil != err {
		return cli.NewExitError(fmt.Sprintf("receive error: %s", err), 1)
	}

	fmt.Fprint(c.App.Writer, string(report))

	if strings.Contains(string(report), "FAILED") {
		return cli.NewExitError("", 1)
	}
	return nil
}
