// Package logging provides the shared zap logger for pelcoctl.
//
// Logging is silent by default so that command output stays clean for
// scripting. Set PELCOCTL_LOG_LEVEL (debug, info, warn, error) or pass
// --log-level to enable console logging, which includes hex dumps of
// every frame that crosses a port at debug level.
package logging
