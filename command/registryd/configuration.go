// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/irrcore/registryd/configuration"
	"github.com/irrcore/registryd/mirror"
	"github.com/irrcore/registryd/server"
	"github.com/irrcore/registryd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "submission.key"
	defaultCertificateFile = "submission.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "registry"

	defaultLogDirectory = "log"
	defaultLogFile      = "registryd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultFlushThreshold = 5000
)

// to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

type DatabaseType struct {
	Directory      string `gluamapper:"directory" json:"directory"`
	Name           string `gluamapper:"name" json:"name"`
	FlushThreshold int    `gluamapper:"flush_threshold" json:"flush_threshold"`
}

type Configuration struct {
	DataDirectory     string   `gluamapper:"data_directory" json:"data_directory"`
	PidFile           string   `gluamapper:"pidfile" json:"pidfile"`
	RequireMaintainer bool     `gluamapper:"require_maintainer" json:"require_maintainer"`
	NoJournal         []string `gluamapper:"no_journal" json:"no_journal"`

	Database DatabaseType `gluamapper:"database" json:"database"`

	Submission server.Configuration `gluamapper:"submission" json:"submission"`
	Mirror     mirror.Configuration `gluamapper:"mirror" json:"mirror"`
	Logging    logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:     defaultDataDirectory,
		PidFile:           "", // no PidFile by default
		RequireMaintainer: true,

		Database: DatabaseType{
			Directory:      defaultLevelDBDirectory,
			Name:           defaultDatabase,
			FlushThreshold: defaultFlushThreshold,
		},

		Submission: server.Configuration{
			Certificate: defaultCertificateFile,
			PrivateKey:  defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Submission.Certificate,
		&options.Submission.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// the database name is relative to its own directory
	options.Database.Name = util.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	if options.Database.FlushThreshold <= 0 {
		options.Database.FlushThreshold = defaultFlushThreshold
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	return options, nil
}
