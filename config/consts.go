package config

const (
	// DefaultConfigPath - where the configuration is looked up when no
	// --config flag is given
	DefaultConfigPath = "config.json"

	// DefaultSessionFile - where the authenticated session is persisted
	// when the configuration does not name a file
	DefaultSessionFile = "session.json"
)
