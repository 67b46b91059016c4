// Package config loads server, database, auth, LLM and SRS settings from
// defaults, an optional config file and FLASHLEARN_* environment variables,
// and validates the result before anything starts.
package config
