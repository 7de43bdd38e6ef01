package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // text, или ndjson для *.ndjson и *.jsonl
	FormatText
	FormatNDJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// resolve picks the concrete format for an output path.
func (f Format) resolve(path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Elapsed  string            `json:"elapsed,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// FormatEvent renders ev as one line, newline included.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		j := jsonEvent{
			Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
			Seq:      ev.Seq,
			Kind:     ev.Kind.String(),
			Scope:    ev.Scope.String(),
			SpanID:   ev.SpanID,
			ParentID: ev.ParentID,
			Name:     ev.Name,
			Detail:   ev.Detail,
			Extra:    ev.Extra,
		}
		if ev.Elapsed > 0 {
			j.Elapsed = ev.Elapsed.String()
		}
		data, err := json.Marshal(j)
		if err != nil {
			return nil
		}
		return append(data, '\n')
	}
	return []byte(formatText(ev))
}

// formatText: "[15:04:05.000000] <indent><arrow> name (detail) 1.2ms {k=v}".
// Отступ растёт с глубиной scope.
func formatText(ev *Event) string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(ev.Time.Format("15:04:05.000000"))
	sb.WriteString("] ")
	if ev.Scope > ScopeDriver {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeDriver)))
	}
	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	default:
		sb.WriteString("• ")
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if ev.Elapsed > 0 {
		sb.WriteByte(' ')
		sb.WriteString(ev.Elapsed.String())
	}
	if len(ev.Extra) > 0 {
		sb.WriteString(" {")
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k + "=" + ev.Extra[k])
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return sb.String()
}
