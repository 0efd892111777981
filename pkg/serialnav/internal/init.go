// Package internal contains process-wide infrastructure shared by the serialnav
// packages: the application and internal loggers.
// Types and functions in this package are not part of the public API.
package internal
