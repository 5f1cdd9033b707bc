package bot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

// ParseLimitArg extracts the number of entries requested by /recent.
// An empty argument yields the default limit.
func ParseLimitArg(args string) (int, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return defaultRecentLimit, nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > maxRecentLimit {
		return 0, fmt.Errorf("usage: /recent [n], n between 1 and %d", maxRecentLimit)
	}
	return n, nil
}
