package reportserver

// Version is set at build time with -ldflags "-X reportserver.Version=...".
var Version = "dev"
