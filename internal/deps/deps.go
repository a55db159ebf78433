// Package deps verifies the external binaries the pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency scribe relies on.
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

// Required returns the binaries the pipeline needs before it can run.
func Required(ytdlpBinary, ffmpegBinary string) []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: ytdlpBinary, Description: "media metadata and audio download"},
		{Name: "ffmpeg", Command: ffmpegBinary, Description: "audio extraction and loudness normalization"},
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

// FirstMissing returns the first required dependency that is unavailable, or
// nil when every required binary resolves.
func FirstMissing(requirements []Requirement) *Status {
	for _, status := range CheckBinaries(requirements) {
		if !status.Available && !status.Optional {
			s := status
			return &s
		}
	}
	return nil
}
