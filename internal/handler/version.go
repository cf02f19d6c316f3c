package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// VersionInfo identifies the running build
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Set with -ldflags "-X github.com/osse101/RouletteHouse_Go/internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleVersion reports the build so deployments can be verified
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, currentVersion())
	}
}

func currentVersion() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	if info.Version == "" || info.Version == "dev" {
		if env := os.Getenv("VERSION"); env != "" {
			info.Version = env
		} else {
			info.Version = "dev"
		}
	}
	if info.GitCommit == "unset" {
		if revision, ok := vcsRevision(); ok {
			info.GitCommit = revision
		}
	}
	return info
}

// vcsRevision reads the commit the go toolchain stamped into the binary
func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value, true
		}
	}
	return "", false
}
