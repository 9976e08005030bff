package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/elearn-app/elearn/internal/config"
	"github.com/elearn-app/elearn/internal/daemon"
	"github.com/elearn-app/elearn/internal/session"
	"go.uber.org/fx"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides $ELEARN_SESSION and config default)")
	apiFlag := flag.String("api", "", "backend base URL (overrides api_base_url in config.toml)")
	debugFlag := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	sessionName, source := session.ResolveWithSource(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fail(err)
	}

	p := daemon.Params{SessionName: sessionName, Debug: *debugFlag}
	if *apiFlag != "" {
		cfg, err := config.LoadOrDefault(session.ConfigPath())
		if err != nil {
			fail(err)
		}
		cfg.APIBaseURL = *apiFlag
		p.Config = cfg
	}
	if *debugFlag {
		fmt.Fprintf(os.Stderr, "elearnd: session %q (from %s)\n", sessionName, source)
	}

	fx.New(daemon.Module(p)).Run()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
