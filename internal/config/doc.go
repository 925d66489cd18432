// Package config manages the pelcoctl configuration file.
//
// The configuration is a YAML file storing user-defined camera entries
// (serial device, protocol address, baud rate, nickname, preset labels)
// and application preferences such as the default camera and default
// motion speeds. It lives in the platform's conventional config
// directory and is written atomically to survive crashes mid-save.
//
// Nothing in this file is required for operation: every value can also
// be given on the command line. The registry exists so that users of
// multi-camera installations do not have to repeat device paths and
// addresses on every invocation.
package config
