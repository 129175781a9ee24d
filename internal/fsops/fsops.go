package fsops

import (
	"os"
	"time"
)

// Info is a point-in-time snapshot of one file.
type Info struct {
	SizeBytes  int64
	AgeSeconds int64
}

// Inspector stats files against a clock captured at construction so every
// file in a run is aged relative to the same instant.
type Inspector struct {
	now time.Time
}

// NewInspector captures the current time for subsequent Stat calls.
func NewInspector() *Inspector {
	return &Inspector{now: time.Now()}
}

// NewInspectorAt builds an inspector pinned to a specific instant.
func NewInspectorAt(now time.Time) *Inspector {
	return &Inspector{now: now}
}

// Stat returns size and age for path. A missing path surfaces the underlying
// fs.ErrNotExist so callers can drop files removed since the metadata fetch.
func (i *Inspector) Stat(path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	age := int64(i.now.Sub(stat.ModTime()) / time.Second)
	if age < 0 {
		age = 0
	}
	return Info{SizeBytes: stat.Size(), AgeSeconds: age}, nil
}

// OSDeleter removes files with os.Remove.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error {
	return os.Remove(path)
}
