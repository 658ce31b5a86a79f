//go:build unix

package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"
)

// DefaultMaigretTimeout bounds the maigret subprocess wait.
const DefaultMaigretTimeout = 120 * time.Second

// UsernameResult is one site where a username was found "Claimed".
type UsernameResult struct {
	SiteName string
	URL      string
	Tags     []string
}

// maigretStatus mirrors one entry of Maigret's flat site -> status mapping.
type maigretStatus struct {
	Status struct {
		Status   string   `json:"status"`
		Tags     []string `json:"tags"`
		SiteName string   `json:"site_name"`
		URL      string   `json:"url"`
	} `json:"status"`
	URLUser string `json:"url_user"`
}

// ParseMaigretResults extracts "Claimed" rows from Maigret's "simple" JSON
// report, a flat mapping of site name to status object (spec §4.3).
func ParseMaigretResults(data map[string]maigretStatus) []UsernameResult {
	var out []UsernameResult
	for siteName, info := range data {
		if info.Status.Status != "Claimed" {
			continue
		}
		out = append(out, UsernameResult{
			SiteName: siteName,
			URL:      info.URLUser,
			Tags:     info.Status.Tags,
		})
	}
	return out
}

// SearchUsername spawns the maigret subprocess against a username with the
// "simple" JSON report format, waits with a bounded timeout, and reads the
// expected report_<username>_simple.json from the output folder. Missing
// binary, timeout, or parse failure all collapse to an empty result.
func SearchUsername(ctx context.Context, username string, timeout time.Duration) ([]UsernameResult, error) {
	if timeout <= 0 {
		timeout = DefaultMaigretTimeout
	}

	outDir, err := os.MkdirTemp("", "maigret_")
	if err != nil {
		return nil, nil
	}
	defer os.RemoveAll(outDir)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	seconds := int(timeout.Seconds())
	// #nosec G204 -- username is passed as an argument vector, never
	// shell-interpolated (spec §9).
	cmd := exec.Command("maigret", username,
		"-J", "simple",
		"--folderoutput", outDir,
		"--timeout", strconv.Itoa(seconds),
		"--no-color",
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, nil
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
				return nil, fmt.Errorf("kill maigret process group: %w", err)
			}
		}
		<-done
		return nil, nil
	case <-done:
	}

	reportPath := filepath.Join(outDir, fmt.Sprintf("report_%s_simple.json", username))
	raw, err := os.ReadFile(reportPath)
	if err != nil {
		return nil, nil
	}

	var data map[string]maigretStatus
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, nil
	}
	return ParseMaigretResults(data), nil
}
