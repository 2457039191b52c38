package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var failureLogMu sync.Mutex

// logFailure appends one tab separated line per failed target. The id is the
// request id of a rejected call or the job id of a failed job.
func logFailure(path, id, target string, err error) error {
	if path == "" {
		return nil
	}

	if id == "" {
		id = "unknown"
	}
	timestamp := time.Now().Format(time.RFC3339)
	line := fmt.Sprintf("%s\tlevel=ERROR\tid=%s\ttarget=%s\tmessage=%v\n", timestamp, id, target, err)

	failureLogMu.Lock()
	defer failureLogMu.Unlock()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return mkErr
		}
	}

	f, openErr := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if openErr != nil {
		return openErr
	}
	defer f.Close()

	_, writeErr := f.WriteString(line)
	return writeErr
}
