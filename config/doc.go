// Package config loads service configuration with Viper.
//
// Configuration is read from a YAML file found in standard locations
// (./cmd/<service>/config.yml, ./config/config.yml, ./config.yml), then
// overridden by environment variables, optionally read from a .env file.
// Environment variables map onto nested keys by splitting on underscores:
// with prefix WEBTOON, WEBTOON_AUTH_TOKEN_SECRET sets auth.token.secret.
//
// Every config struct follows the same convention: ApplyDefaults() fills in
// zero values and Validate() reports the first invalid field.
package config
