package session

import (
	"os"

	"github.com/elearn-app/elearn/internal/config"
)

const DefaultSessionName = "main"

// EnvSession selects the session when no --session flag is given.
const EnvSession = "ELEARN_SESSION"

// Source tells where a resolved session name came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// Resolve determines the active session name. See ResolveWithSource.
func Resolve(flagOverride string) string {
	name, _ := ResolveWithSource(flagOverride)
	return name
}

// ResolveWithSource picks the session name in order: the --session flag,
// $ELEARN_SESSION, default_session in config.toml, then "main". An
// unreadable config counts as absent.
func ResolveWithSource(flagOverride string) (string, Source) {
	if flagOverride != "" {
		return flagOverride, SourceFlag
	}
	if env := os.Getenv(EnvSession); env != "" {
		return env, SourceEnv
	}
	if cfg, err := config.Load(ConfigPath()); err == nil && cfg.DefaultSession != "" {
		return cfg.DefaultSession, SourceConfig
	}
	return DefaultSessionName, SourceDefault
}
