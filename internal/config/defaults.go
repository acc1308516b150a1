// Package config provides configuration loading and defaults for daycheck.
package config

// DefaultConfigDir is the default location for daycheck configuration and
// data.
const DefaultConfigDir = "~/.config/daycheck"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "daycheck.db"

// DefaultServeAddr is the default listen address for `daycheck serve`.
const DefaultServeAddr = "127.0.0.1:8787"

// DefaultDailyLimit is the default per-caller request budget for the hosted
// checkup endpoint.
const DefaultDailyLimit = 5

// DefaultAI holds the default generation settings. Provider and key are
// empty so the checkup is inert until the user configures it.
var DefaultAI = AI{
	Provider: "",
	Model:    "",
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
