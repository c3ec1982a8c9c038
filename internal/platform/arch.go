// Package platform names the CPU architecture the process runs on.
package platform

import "runtime"

// Arch returns the Go architecture identifier (arm64, amd64, ...)
func Arch() string {
	return runtime.GOARCH
}

// Machine returns the uname-style machine name for goarch
func Machine(goarch string) string {
	switch goarch {
	case "arm64":
		return "aarch64"
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm":
		return "armv7l"
	default:
		return goarch
	}
}
