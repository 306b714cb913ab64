// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	_ "net/http/pprof"

	"github.com/distledger/ledgernode/app"
	"github.com/distledger/ledgernode/config"
	"github.com/distledger/ledgernode/infrastructure/os/signal"
	"github.com/distledger/ledgernode/util/panics"
	"github.com/distledger/ledgernode/version"
)

func main() {
	defer panics.HandlePanic(log, nil)
	interrupt := signal.InterruptListener()

	if err := config.LoadAndSetActiveConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}
	cfg := config.ActiveConfig()

	if err := config.InitLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %s\n", err)
		os.Exit(1)
	}

	log.Infof("Version %s", version.Version())

	componentManager := app.NewComponentManager(cfg)
	componentManager.Start()
	defer componentManager.Stop()

	<-interrupt
}
