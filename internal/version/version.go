package version

// Version is the release tag, overridden at build time with -ldflags.
var Version = "1.0.0"
