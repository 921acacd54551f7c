// Package intake discovers document bundles and turns them into jobs for the
// pipeline. Bundles arrive as PDF files dropped into an inbox directory; the
// inbox stands in for a bucket, so a job carries bucket/key naming.
package intake

import (
	"path/filepath"
	"strings"
)

// Job is one bundle to process. Key is the bucket-relative filename records
// are keyed on; LocalPath is where the PDF sits on disk.
type Job struct {
	Bucket    string
	Key       string
	LocalPath string
}

func NewJob(path string) Job {
	return Job{
		Bucket:    filepath.Dir(path),
		Key:       filepath.Base(path),
		LocalPath: path,
	}
}

// ID is the short job identifier used in logs: the part of the key's
// basename before the first hyphen, or the whole stem when there is none.
func (j Job) ID() string {
	stem := strings.TrimSuffix(filepath.Base(j.Key), filepath.Ext(j.Key))
	if i := strings.Index(stem, "-"); i > 0 {
		return stem[:i]
	}
	return stem
}
