package version

import (
	"fmt"
	"strings"
)

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// buildCharset holds the characters allowed in build metadata.
const buildCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

// appBuild may be set at link time with
// '-ldflags "-X github.com/kaspanet/sha3miner/version.appBuild=foo"'.
// Metadata outside buildCharset is ignored.
var appBuild string

// Version returns the miner's semantic version, followed by the build
// metadata when one was linked in.
func Version() string {
	return format(appMajor, appMinor, appPatch, appBuild)
}

func format(major, minor, patch uint, build string) string {
	base := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if !isValidBuild(build) {
		return base
	}
	return base + "-" + build
}

// isValidBuild reports whether build is non-empty and uses only buildCharset.
func isValidBuild(build string) bool {
	if build == "" {
		return false
	}
	return strings.Trim(build, buildCharset) == ""
}
