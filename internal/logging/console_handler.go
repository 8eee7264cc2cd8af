package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const consoleTimeLayout = time.DateTime

// consoleHandler writes one logfmt-style line per record:
//
//	2026-10-16 09:30:00 INFO  [importer/raster] copied path=/a.jpg bytes=42
//
// component and class form the scope in brackets. run_id is shown only at
// debug level.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	addSource bool

	component string
	class     string
	runID     string
	// attrs holds " key=value" pairs already rendered by WithAttrs.
	attrs  []byte
	prefix string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: new(sync.Mutex), w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	scoped := *h
	var fields []byte
	r.Attrs(func(a slog.Attr) bool {
		fields = scoped.appendAttr(fields, h.prefix, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf := make([]byte, 0, 128+len(h.attrs)+len(fields))
	buf = ts.Local().AppendFormat(buf, consoleTimeLayout)
	buf = append(buf, ' ')
	buf = fmt.Appendf(buf, "%-5s", levelLabel(r.Level))
	if scope := scoped.scope(); scope != "" {
		buf = append(buf, " ["...)
		buf = append(buf, scope...)
		buf = append(buf, ']')
	}
	buf = append(buf, ' ')
	if r.Message == "" {
		buf = append(buf, "(no message)"...)
	} else {
		buf = append(buf, r.Message...)
	}
	buf = append(buf, h.attrs...)
	buf = append(buf, fields...)
	if r.Level < slog.LevelInfo && scoped.runID != "" {
		buf = appendPair(buf, FieldRunID, slog.StringValue(scoped.runID))
	}
	if h.addSource {
		if src := r.Source(); src != nil && src.File != "" {
			buf = appendPair(buf, "caller", slog.StringValue(filepath.Base(src.File)+":"+strconv.Itoa(src.Line)))
		}
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]byte(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = next.appendAttr(next.attrs, h.prefix, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *consoleHandler) scope() string {
	switch {
	case h.component != "" && h.class != "":
		return h.component + "/" + h.class
	case h.component != "":
		return h.component
	default:
		return h.class
	}
}

// appendAttr renders a onto buf, lifting the scope fields out of the pair
// list.
func (h *consoleHandler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			buf = h.appendAttr(buf, prefix, member)
		}
		return buf
	}
	if prefix == "" {
		switch a.Key {
		case FieldComponent:
			h.component = a.Value.String()
			return buf
		case FieldClass:
			h.class = a.Value.String()
			return buf
		case FieldRunID:
			h.runID = a.Value.String()
			return buf
		}
	}
	return appendPair(buf, prefix+a.Key, a.Value)
}

func appendPair(buf []byte, key string, v slog.Value) []byte {
	buf = append(buf, ' ')
	buf = append(buf, key...)
	buf = append(buf, '=')
	switch v.Kind() {
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().Local().AppendFormat(buf, consoleTimeLayout)
	}
	s := v.String()
	if v.Kind() == slog.KindAny {
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		}
	}
	if needsQuoting(s) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' || r == 0x7f {
			return true
		}
	}
	return false
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
