// Package config loads tailboard's TOML configuration.
//
// # Resolution
//
// Load reads the given path, or ~/.config/tailboard/config.toml when the path
// is empty. A missing file is not an error: Default() is returned. Values are
// trimmed, and empty or zero values keep their defaults.
//
// # Fields
//
//	files          = ["~/app.log", "/var/log/syslog"]
//	history_lines  = 10000    # lines kept per file
//	queue_size     = 100      # pending change signals
//	notify_policy  = "block"  # or "drop" when the queue is full
//	encoding       = "utf-8"  # any WHATWG label, e.g. "latin1"
//	strip_ansi     = false
//	max_line_bytes = 1048576
//	log_file       = ""       # empty discards diagnostics
//	log_level      = "info"
//
// Paths in files and log_file have a leading ~ expanded and are made
// absolute. Command-line flags are applied by the caller and override these.
//
// # Errors
//
// Open and parse failures are wrapped as "open config: ..." and
// "parse config: ...". Validate rejects an unknown notify policy, encoding or
// log level and a negative history size.
package config
