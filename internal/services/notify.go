package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/toon-format/toon-go"

	"github.com/mrlokans/librarian/internal/logging"
)

// notifier reports every outcome twice: once to the user, once to the log.
type notifier struct {
	out io.Writer
	log logging.Logger
}

func (n notifier) info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(n.out, msg)
	n.log.Info(msg)
}

func (n notifier) reject(kind error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(n.out, msg)
	n.log.Info(msg)
	return rejection(kind, msg)
}

// dump logs rows in TOON at debug level.
func (n notifier) dump(msg string, rows []map[string]any) {
	data, err := toon.Marshal(map[string]any{"rows": rows})
	if err != nil {
		n.log.Warn("Failed to render debug dump", "error", err)
		return
	}
	n.log.Debug(msg + "\n" + string(data))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
