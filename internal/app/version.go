package app

// Build metadata, set with -ldflags "-X github.com/heartmarshall/eventhub-backend/internal/app.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
)

// BuildVersion returns the version reported by startup logs and /health.
func BuildVersion() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}
	if len(Commit) > 12 {
		return Version + "+" + Commit[:12]
	}
	return Version + "+" + Commit
}
