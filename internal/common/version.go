package common

// Version is set at build time via ldflags:
//
//	-ldflags "-X github.com/ann0nip/IEB-Investment-Tracker/internal/common.Version=v1.2.3"
var Version = "dev"

// GetVersion returns the current build version.
func GetVersion() string {
	return Version
}
