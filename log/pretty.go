package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of the styled text handler. The styles are bound
// to a renderer for the output writer, so a writer that is not a terminal
// receives plain text.
type palette struct {
	time   lipgloss.Style
	key    lipgloss.Style
	msg    lipgloss.Style
	str    lipgloss.Style
	num    lipgloss.Style
	bool   lipgloss.Style
	source lipgloss.Style
	levels map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	level := func(color string) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}

	return palette{
		time:   r.NewStyle().Faint(true),
		key:    r.NewStyle().Foreground(lipgloss.Color("8")),
		msg:    r.NewStyle().Bold(true),
		str:    r.NewStyle().Foreground(lipgloss.Color("6")),
		num:    r.NewStyle().Foreground(lipgloss.Color("3")),
		bool:   r.NewStyle().Foreground(lipgloss.Color("5")),
		source: r.NewStyle().Faint(true).Italic(true),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): level("8"),
			slog.Level(LevelDebug): level("4"),
			slog.Level(LevelInfo):  level("2"),
			slog.Level(LevelWarn):  level("3"),
			slog.Level(LevelError): level("1"),
		},
	}
}

// levelStyle returns the style of the nearest named level at or below l.
func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	best := slog.Level(LevelTrace)

	for named := range p.levels {
		if named <= l && named > best {
			best = named
		}
	}

	return p.levels[best]
}

// styledHandler writes one line per record:
//
//	TIME LEVEL message key=value group.key=value
//
// Attributes and groups added with WithAttrs and WithGroup are rendered
// ahead of the record's own attributes.
type styledHandler struct {
	opts   slog.HandlerOptions
	layout string
	style  palette
	mu     *sync.Mutex
	w      io.Writer
	prefix string // pre-rendered attributes from WithAttrs
	group  string // dotted group prefix for attribute keys
}

func newStyledHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	layout string,
) *styledHandler {
	return &styledHandler{
		opts:   *opts,
		layout: layout,
		style:  newPalette(w),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *styledHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *styledHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if h.layout != "" && !r.Time.IsZero() {
		buf.WriteString(h.style.time.Render(r.Time.Format(h.layout)))
		buf.WriteByte(' ')
	}

	name := strings.ToUpper(Level(r.Level).String())
	buf.WriteString(h.style.levelStyle(r.Level).Render(fmt.Sprintf("%-5s", name)))
	buf.WriteByte(' ')
	buf.WriteString(h.style.msg.Render(r.Message))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			loc := filepath.Base(src.File) + ":" + strconv.Itoa(src.Line)
			buf.WriteByte(' ')
			buf.WriteString(h.style.source.Render(loc))
		}
	}

	buf.WriteString(h.prefix)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.group, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *styledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var buf bytes.Buffer

	for _, a := range attrs {
		h.writeAttr(&buf, h.group, a)
	}

	c := *h
	c.prefix += buf.String()

	return &c
}

func (h *styledHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group += name + "."

	return &c
}

func (h *styledHandler) writeAttr(buf *bytes.Buffer, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, group, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(group + a.Key + "="))
	buf.WriteString(h.renderValue(a.Value))
}

func (h *styledHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		return h.style.str.Render(s)

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		return h.style.bool.Render(v.String())

	case slog.KindDuration:
		return h.style.num.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.str.Render(v.Time().Format(time.RFC3339))

	default:
		if err, ok := v.Any().(error); ok {
			return h.style.str.Render(strconv.Quote(err.Error()))
		}

		return h.style.str.Render(fmt.Sprint(v.Any()))
	}
}
