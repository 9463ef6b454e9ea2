// Package version exposes build metadata stamped at link time.
package version

// Version and BuildTime are overridden via
// -ldflags "-X github.com/xandys/eccbc-mcp/internal/version.Version=...".
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
)

// String formats the banner printed by --version.
func String() string {
	return "eccbc-mcp version " + Version + " (built " + BuildTime + ")"
}
