package version

// Version is overridden at build time with
// -ldflags "-X github.com/bnema/rumble-cli/internal/version.Version=...".
var Version = "dev"

// UserAgent identifies the client to RUMBLE servers.
func UserAgent() string {
	return "rumble-cli/" + Version
}
