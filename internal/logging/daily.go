package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kjk/common/filerotate"
)

const (
	dailySuffix = ".log"
	dayLayout   = "2006-01-02"
)

// dailyLog names and prunes the files of one log: <dir>/<prefix>YYYY-MM-DD.log.
// Only the newest keep files besides the one being written are retained.
type dailyLog struct {
	dir    string
	prefix string
	keep   int
}

func (d dailyLog) path(day time.Time) string {
	return filepath.Join(d.dir, d.prefix+day.Format(dayLayout)+dailySuffix)
}

// pathIfShouldRotate switches files when the local date changes.
func (d dailyLog) pathIfShouldRotate(created, now time.Time) string {
	if !created.IsZero() && created.Format(dayLayout) == now.Format(dayLayout) {
		return ""
	}
	return d.path(now)
}

// prune removes the oldest dated files beyond keep, never touching current.
func (d dailyLog) prune(current string) error {
	if d.keep <= 0 {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(d.dir, d.prefix+"*"+dailySuffix))
	if err != nil {
		return err
	}

	var old []string
	for _, m := range matches {
		name := filepath.Base(m)
		if m == current {
			continue
		}
		date := strings.TrimSuffix(strings.TrimPrefix(name, d.prefix), dailySuffix)
		if _, err := time.Parse(dayLayout, date); err != nil {
			continue
		}
		old = append(old, m)
	}
	if len(old) <= d.keep {
		return nil
	}

	// Date-stamped names sort chronologically.
	sort.Strings(old)
	for _, m := range old[:len(old)-d.keep] {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// openDaily opens today's file of a daily-rotating log, creating dir if
// needed. Old files are pruned on open and after every rotation.
func openDaily(dir, prefix string, keep int) (*filerotate.File, error) {
	d := dailyLog{dir: dir, prefix: prefix, keep: keep}
	f, err := filerotate.New(&filerotate.Config{
		PathIfShouldRotate: d.pathIfShouldRotate,
		DidClose: func(path string, didRotate bool) {
			if didRotate {
				// The next file is not open yet, so path is the newest on disk.
				_ = d.prune("")
			}
		},
	})
	if err != nil {
		return nil, err
	}
	if err := d.prune(f.Path); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
