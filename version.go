/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

import "runtime"

// Build metadata reported by `kvstore version`. Release builds override these with
// -ldflags "-X github.com/suparena/keyvaluestore.GitCommit=... -X ...BuildDate=...".
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// VersionInfo is the build metadata of this module.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo collects the build metadata. GoVersion falls back to the running toolchain.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: goVersion(),
	}
}

func goVersion() string {
	if GoVersion != "unknown" {
		return GoVersion
	}
	return runtime.Version()
}
