package internal

import (
	"fmt"
	"runtime"
)

// VersionInfo is the version and build information of this binary.
type VersionInfo struct {
	Version string
	Commit  string
}

// Version describes the running build. Commit is filled in at build
// time via -ldflags.
var Version = &VersionInfo{Version: "0.1.0"}

// Print writes the version and build information to stdout.
func (v *VersionInfo) Print(name string) {
	fmt.Println(name, "version:", v.Version)
	fmt.Println()

	fmt.Println("Build information:")
	fmt.Printf("  Go version: %s (%s, %s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if v.Commit != "" {
		fmt.Println("  Git commit:", v.Commit)
	}
}
