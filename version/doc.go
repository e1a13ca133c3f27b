// Package version provides build version information embedding.
//
// Version, git commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restkit/version.Version=1.0.0"
//
// The package also derives the default User-Agent string for outbound
// requests.
package version
