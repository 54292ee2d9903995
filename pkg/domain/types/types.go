package types

// ServiceName is used for health responses and error reporting
const ServiceName = "hermes"

// Version is the application version, overridden at build time via ldflags
var Version = "dev"
