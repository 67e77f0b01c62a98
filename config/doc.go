// Package config loads reconfig.Options from a YAML document: the
// external-facing knob surface a CLI front end drives the analysis
// through.
package config
