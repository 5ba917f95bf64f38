// Package deps verifies the external tools and directories lyrebird needs
// before a run starts.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"lyrebird/internal/config"
)

// Requirement defines an external dependency lyrebird relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries for the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: cfg.YtDlpBinary(), Description: "Downloads audio and subtitle tracks"},
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "Audio conversion and lyrics embedding"},
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "Channel verification after enhancement"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// DirResult reports a directory permission check.
type DirResult struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDir verifies that a directory exists (or can be created) and is
// readable and writable by the current user.
func CheckDir(name, path string) DirResult {
	if strings.TrimSpace(path) == "" {
		return DirResult{Name: name, Detail: "path not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return DirResult{Name: name, Detail: fmt.Sprintf("%s (error: create: %v)", path, err)}
			}
			return DirResult{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created)", path)}
		}
		return DirResult{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return DirResult{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return DirResult{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return DirResult{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDirs evaluates every directory the pipeline writes into.
func CheckDirs(cfg *config.Config) []DirResult {
	return []DirResult{
		CheckDir("source directory", cfg.Paths.SourceDir),
		CheckDir("output directory", cfg.Paths.OutputDir),
		CheckDir("log directory", cfg.Paths.LogDir),
	}
}
