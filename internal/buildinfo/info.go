// Package buildinfo carries release metadata stamped in by the linker:
//
//	go build -ldflags "-X github.com/uillasnr/mobilefinance/internal/buildinfo.Version=v0.3.0"
package buildinfo

// Set with -ldflags -X at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
