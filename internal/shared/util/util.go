package util

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime/metrics"
	"strings"
)

const heapObjectsMetric = "/memory/classes/heap/objects:bytes"

// SlashPath turns an OS path into the cleaned, slash-separated form include
// patterns are matched against. The current directory becomes "".
func SlashPath(p string) string {
	clean := path.Clean(strings.ReplaceAll(strings.TrimSpace(p), "\\", "/"))
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// RelWithin returns path relative to base in slash form. ok is false when
// path lies outside base.
func RelWithin(base, p string) (string, bool) {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return "", false
	}
	rel = SlashPath(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// WriteFileWithDirs writes data to p, creating missing parent directories.
func WriteFileWithDirs(p string, data []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, perm)
}

// HeapObjectsMB is the live heap object size in MiB.
func HeapObjectsMB() uint64 {
	sample := []metrics.Sample{{Name: heapObjectsMetric}}
	metrics.Read(sample)
	if sample[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return sample[0].Value.Uint64() >> 20
}
