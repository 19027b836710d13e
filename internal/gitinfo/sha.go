// Package gitinfo reports the git revision of a working tree.
package gitinfo

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CurrentSHA returns the HEAD commit of the repository containing dir.
// With short set the abbreviated hash is returned.
func CurrentSHA(dir string, short bool) (string, error) {
	args := []string{"rev-parse", "HEAD"}
	if short {
		args = []string{"rev-parse", "--short", "HEAD"}
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}
