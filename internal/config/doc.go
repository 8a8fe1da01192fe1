// Package config loads application settings from defaults, an optional YAML
// file and PAGAMENTOS_-prefixed environment variables, then validates them
// before any other component is constructed.
package config
