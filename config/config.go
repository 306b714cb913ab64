// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/distledger/ledgernode/version"
)

const (
	defaultConfigFilename = "ledgernode.conf"
	defaultDataDirname    = "data"
	defaultLogDirname     = "logs"
	defaultLogLevel       = "info"
	defaultListen         = ":16511"
	defaultNrOfNodes      = 1
)

var (
	// DefaultHomeDir is the default home directory for the node's data
	// and logs.
	DefaultHomeDir = appDataDir("ledgernode", false)

	defaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(DefaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(DefaultHomeDir, defaultLogDirname)
)

var activeConfig *Config

// Flags defines the configuration options for a ledgernode node.
//
// See loadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion  bool     `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile   string   `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir      string   `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir       string   `long:"logdir" description:"Directory to log output"`
	DebugLevel   string   `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	NodeID       int      `short:"i" long:"nodeid" description:"This node's numeric id within the network"`
	NrOfNodes    int      `short:"n" long:"nrofnodes" description:"Total number of nodes in the network, used to bound proof closure walks"`
	Listen       string   `long:"listen" description:"Address to listen on for peer connections"`
	PeerAddrs    []string `short:"a" long:"addpeer" description:"Address of a peer to connect to at startup, may be given multiple times"`
	WorkerCount  int      `long:"workers" description:"Number of workers in the proof worker pool (default: number of CPUs)"`
}

// Config defines the fully resolved configuration of a ledgernode node.
//
// See loadConfig for details on the configuration load process.
type Config struct {
	*Flags
}

// appDataDir mirrors the teacher's per-OS application data directory
// helper, trimmed to the two platforms worth distinguishing here.
func appDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	appName = strings.TrimPrefix(appName, ".")
	appNameUpper := strings.ToUpper(appName[:1]) + appName[1:]
	appNameLower := strings.ToLower(appName)

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if roaming {
			appData = os.Getenv("APPDATA")
		}
		if appData != "" {
			return filepath.Join(appData, appNameUpper)
		}
	case "darwin":
		if homeDir := os.Getenv("HOME"); homeDir != "" {
			return filepath.Join(homeDir, "Library", "Application Support", appNameUpper)
		}
	case "plan9":
		if homeDir := os.Getenv("home"); homeDir != "" {
			return filepath.Join(homeDir, appNameLower)
		}
	default:
		if homeDir := os.Getenv("HOME"); homeDir != "" {
			return filepath.Join(homeDir, "."+appNameLower)
		}
	}

	// Fall back to the current directory if the OS or its environment
	// variables are not as expected.
	return "."
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	return filepath.Clean(os.ExpandEnv(path))
}

// newConfigParser returns a new command line flags parser.
func newConfigParser(cfgFlags *Flags, options flags.Options) *flags.Parser {
	return flags.NewParser(cfgFlags, options)
}

// LoadAndSetActiveConfig loads the config that can afterward be accessed
// through ActiveConfig.
func LoadAndSetActiveConfig() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	activeConfig = cfg
	return nil
}

// ActiveConfig is a getter to the main config.
func ActiveConfig() *Config {
	return activeConfig
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
// 	1) Start with a default config with sane settings
// 	2) Pre-parse the command line to check for an alternative config file
// 	3) Load configuration file overwriting defaults with any specified options
// 	4) Parse CLI options and overwrite/add any specified options
//
// The above results in the node functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options. Command line options always take
// precedence.
func loadConfig() (*Config, []string, error) {
	cfgFlags := Flags{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		NrOfNodes:  defaultNrOfNodes,
		Listen:     defaultListen,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified. Any errors aside from the
	// help message error can be ignored here since they will be caught
	// by the final parse below.
	preCfg := cfgFlags
	preParser := newConfigParser(&preCfg, flags.HelpFlag)
	_, err := preParser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	// Load additional config from file.
	parser := newConfigParser(&cfgFlags, flags.Default)
	if preCfg.ConfigFile != "" {
		if _, err := os.Stat(preCfg.ConfigFile); os.IsNotExist(err) {
			if err := createDefaultConfigFile(preCfg.ConfigFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating a default config file: %s\n", err)
			}
		}

		err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
		if err != nil {
			if _, ok := err.(*os.PathError); !ok {
				fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err)
				fmt.Fprintln(os.Stderr, usageMessage)
				return nil, nil, err
			}
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return nil, nil, err
	}

	cfgFlags.DataDir = cleanAndExpandPath(cfgFlags.DataDir)
	cfgFlags.LogDir = cleanAndExpandPath(cfgFlags.LogDir)

	if err := os.MkdirAll(cfgFlags.DataDir, 0700); err != nil {
		return nil, nil, errors.Wrapf(err, "loadConfig: failed to create data directory")
	}
	if err := os.MkdirAll(cfgFlags.LogDir, 0700); err != nil {
		return nil, nil, errors.Wrapf(err, "loadConfig: failed to create log directory")
	}

	if cfgFlags.NrOfNodes <= 0 {
		return nil, nil, errors.Errorf("nrofnodes must be a positive number")
	}

	if cfgFlags.WorkerCount <= 0 {
		cfgFlags.WorkerCount = runtime.NumCPU()
	}

	cfg := &Config{Flags: &cfgFlags}
	activeConfig = cfg
	return cfg, remainingArgs, nil
}

// createDefaultConfigFile creates a basic config file at destinationPath
// containing just the commented-out default settings.
func createDefaultConfigFile(destinationPath string) error {
	if err := os.MkdirAll(filepath.Dir(destinationPath), 0700); err != nil {
		return err
	}

	dest, err := os.OpenFile(destinationPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dest.Close()

	const sample = `[Application Options]

; nodeid=0
; nrofnodes=1
; listen=:16511
; datadir=~/.ledgernode/data
; logdir=~/.ledgernode/logs
; debuglevel=info
; workers=0
`
	_, err = dest.WriteString(sample)
	return err
}
