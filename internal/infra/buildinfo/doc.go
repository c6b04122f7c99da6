// Package buildinfo exposes version information injected at build time:
//
//	go build -ldflags "-X github.com/yndnr/spot-go/internal/infra/buildinfo.Version=v1.2.0 \
//	  -X github.com/yndnr/spot-go/internal/infra/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/spot-cli
//
// GoVersion falls back to the running toolchain when not set.
package buildinfo
