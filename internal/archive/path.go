// Package archive computes destination paths for saved media and writes files to disk.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tg_archiver/internal/tokens"
)

const timestampLayout = "2006-01-02_15-04-05"

// BuildPath returns a destination for a file named sourceName under root.
//
// Every hashtag token adds a directory level, in order. The file name is the
// first text token, or file_<timestamp> when there is none, followed by the
// extension of sourceName. If the path is already taken, _1, _2, ... is appended
// to the name until a free one is found.
//
// Errors other than "not exist" from the existence check are returned.
func BuildPath(root string, toks []tokens.Token, sourceName string, now time.Time) (string, error) {
	dir := root
	for _, t := range toks {
		if t.Kind == tokens.Hashtag {
			dir = filepath.Join(dir, t.Value)
		}
	}

	stem := "file_" + now.Format(timestampLayout)
	for _, t := range toks {
		if t.Kind == tokens.Text {
			stem = t.Value
			break
		}
	}

	ext, hasExt := extension(sourceName)
	name := func(suffix string) string {
		if hasExt {
			return stem + suffix + "." + ext
		}
		return stem + suffix
	}

	candidate := filepath.Join(dir, name(""))
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = filepath.Join(dir, name("_"+strconv.Itoa(counter)))
	}
}

// extension returns what follows the last dot of the base name.
// Dot files such as ".hidden" have no extension.
func extension(sourceName string) (string, bool) {
	base := filepath.Base(sourceName)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("check %s: %w", path, err)
}
