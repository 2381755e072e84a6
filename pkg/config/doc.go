// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Struct fields are annotated with `env` tags (see github.com/caarlos0/env);
// Load parses them, MustLoad panics when required variables are missing.
package config
