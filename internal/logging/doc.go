// Package logging wraps Zap with context-aware methods and a validated,
// koanf-loadable configuration. All pipeline components log through this
// package so turn and request correlation fields are attached uniformly.
package logging
