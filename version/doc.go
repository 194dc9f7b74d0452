// Package version reports the build the service is running.
//
// Version, commit and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/webtoon-api/version.Version=1.2.0" ./cmd/webtoon-api
//
// Unset values fall back to the VCS settings Go embeds in the binary.
package version
