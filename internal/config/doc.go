// Package config loads the generator settings.
//
// Values are layered with viper: built-in defaults, then the config file
// (.inflater.yaml in the working directory or an explicit path), then
// INFLATER_* environment variables, then command-line flags.
package config
