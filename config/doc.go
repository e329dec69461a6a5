// Package config provides configuration loading and validation for webdemo.
//
// It uses Viper to load configuration from a YAML file and environment
// variables, with .env files loaded via godotenv. Environment variables
// override file values using dot-separated lowercase paths derived from
// the variable name (e.g. SERVER_PORT -> server.port).
package config
