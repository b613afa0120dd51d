package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

var levelRank = map[string]int{
	common.LevelDebug: 0,
	common.LevelInfo:  1,
	common.LevelWarn:  2,
	common.LevelError: 3,
}

// ParseLevel maps a config level ("debug", "info", "warn"/"warning", "error")
// onto a RunLogger level
func ParseLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return common.LevelDebug, nil
	case "", "info":
		return common.LevelInfo, nil
	case "warn", "warning":
		return common.LevelWarn, nil
	case "error":
		return common.LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level %q", level)
	}
}

// ConsoleLogger is the RunLogger used by the CLI.
// Every line carries the run ID of its operation so interleaved runs can be told apart.
type ConsoleLogger struct {
	mu       sync.Mutex
	out      *log.Logger
	format   string
	minLevel string
	op       *shared.OperationContext
	now      func() time.Time
}

// NewConsoleLogger creates a logger writing to w. op may be nil.
func NewConsoleLogger(w io.Writer, format, minLevel string, op *shared.OperationContext) *ConsoleLogger {
	if format != FormatJSON {
		format = FormatText
	}
	if _, ok := levelRank[minLevel]; !ok {
		minLevel = common.LevelInfo
	}
	return &ConsoleLogger{
		out:      log.New(w, "", 0),
		format:   format,
		minLevel: minLevel,
		op:       op,
		now:      time.Now,
	}
}

// Log writes one line when level is at or above the configured minimum
func (l *ConsoleLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank[common.LevelInfo]
	}
	if rank < levelRank[l.minLevel] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().UTC().Format(time.RFC3339)
	if l.format == FormatJSON {
		l.out.Println(l.jsonLine(ts, level, message, metadata))
		return
	}
	l.out.Println(l.textLine(ts, level, message, metadata))
}

func (l *ConsoleLogger) jsonLine(ts, level, message string, metadata map[string]interface{}) string {
	entry := make(map[string]interface{}, len(metadata)+5)
	for k, v := range metadata {
		entry[k] = v
	}
	for k, v := range l.op.Metadata() {
		entry[k] = v
	}
	entry["timestamp"] = ts
	entry["level"] = level
	entry["message"] = message

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"timestamp":%q,"level":%q,"message":%q,"marshal_error":%q}`, ts, level, message, err.Error())
	}
	return string(data)
}

func (l *ConsoleLogger) textLine(ts, level, message string, metadata map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]", ts, level)
	if l.op.IsValid() {
		fmt.Fprintf(&b, " [%s]", l.op.RunID)
	}
	b.WriteString(" ")
	b.WriteString(message)

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	return b.String()
}
