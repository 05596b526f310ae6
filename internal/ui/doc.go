// Package ui provides the color themes and the startup banner printed when the
// service comes up. Colors are disabled by --no-color or the NO_COLOR
// environment variable.
package ui
