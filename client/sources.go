package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ChartSource is the price-history source whose records feed the chart
const ChartSource = "yfinance"

// SourceKind classifies one upstream provider's entry in a multi-source payload
type SourceKind int

const (
	// KindEmpty is null or a falsy value: nothing to show for the source
	KindEmpty SourceKind = iota
	// KindData is a plain object whose fields are listed
	KindData
	// KindSeries is an array of records
	KindSeries
	// KindScalar is a bare non-empty string, number or true
	KindScalar
	// KindError is an object carrying an error field
	KindError
	// KindMessage is an object carrying an informational message field
	KindMessage
)

func (k SourceKind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindSeries:
		return "series"
	case KindScalar:
		return "scalar"
	case KindError:
		return "error"
	case KindMessage:
		return "message"
	default:
		return "empty"
	}
}

// Field is one key/value of a source's data object, in response order
type Field struct {
	Key   string
	Value string
	Null  bool
}

// SourceResult is a single provider's outcome inside a multi-source payload
type SourceResult struct {
	Name    string
	Kind    SourceKind
	Fields  []Field
	Items   int
	Value   string
	Error   string
	Message string
	Raw     json.RawMessage
}

// SourceReport maps source names to results, preserving response order
type SourceReport []SourceResult

// Lookup returns the result for the named source
func (r SourceReport) Lookup(name string) (SourceResult, bool) {
	for _, s := range r {
		if s.Name == name {
			return s, true
		}
	}
	return SourceResult{}, false
}

// MarshalJSON re-emits the report as an object in its original order
func (r SourceReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(s.Raw) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(s.Raw)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseSourceReport decodes a {source: result} object without losing key order.
// A null or empty body yields an empty report.
func ParseSourceReport(data []byte) (SourceReport, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return SourceReport{}, nil
	}

	members, err := readObject(data)
	if err != nil {
		return nil, err
	}

	report := make(SourceReport, 0, len(members))
	for _, m := range members {
		report = append(report, classify(m.key, m.raw))
	}
	return report, nil
}

// PriceHistory is the parsed price-history payload
type PriceHistory struct {
	Sources SourceReport
	// Series holds the ChartSource records in the order received; nil when
	// that source is absent or not a list of {Date, Close} records.
	Series []PricePoint
}

// MarshalJSON emits the per-source payload as received
func (h PriceHistory) MarshalJSON() ([]byte, error) {
	return h.Sources.MarshalJSON()
}

// ParsePriceHistory decodes a price-history payload and extracts the chart series
func ParsePriceHistory(data []byte) (PriceHistory, error) {
	report, err := ParseSourceReport(data)
	if err != nil {
		return PriceHistory{}, err
	}

	history := PriceHistory{Sources: report}
	if src, ok := report.Lookup(ChartSource); ok && src.Kind == KindSeries {
		var points []PricePoint
		if err := json.Unmarshal(src.Raw, &points); err == nil {
			history.Series = points
		}
	}
	return history, nil
}

type member struct {
	key string
	raw json.RawMessage
}

// readObject splits a JSON object into its members in document order
func readObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to read value for %q: %w", key, err)
		}
		members = append(members, member{key: key, raw: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to close object: %w", err)
	}
	return members, nil
}

func classify(name string, raw json.RawMessage) SourceResult {
	res := SourceResult{Name: name, Raw: raw}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !truthy(trimmed) {
		res.Kind = KindEmpty
		return res
	}

	switch trimmed[0] {
	case '{':
		members, err := readObject(trimmed)
		if err != nil {
			res.Kind = KindEmpty
			return res
		}
		// error wins over message, matching how the backend reports failures
		if v, ok := find(members, "error"); ok && truthy(v) {
			res.Kind = KindError
			res.Error = formatValue(v)
			return res
		}
		if v, ok := find(members, "message"); ok && truthy(v) {
			res.Kind = KindMessage
			res.Message = formatValue(v)
			return res
		}
		res.Kind = KindData
		for _, m := range members {
			res.Fields = append(res.Fields, Field{
				Key:   m.key,
				Value: formatValue(m.raw),
				Null:  isNull(m.raw),
			})
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			res.Kind = KindEmpty
			return res
		}
		res.Kind = KindSeries
		res.Items = len(items)
	default:
		res.Kind = KindScalar
		res.Value = formatValue(trimmed)
	}
	return res
}

func find(members []member, key string) (json.RawMessage, bool) {
	for _, m := range members {
		if m.key == key {
			return m.raw, true
		}
	}
	return nil, false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// truthy mirrors JSON-consumer truthiness: null, false, 0 and "" are empty
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, isNull(raw), bytes.Equal(raw, []byte("false")), bytes.Equal(raw, []byte(`""`)):
		return false
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		f, err := strconv.ParseFloat(string(raw), 64)
		return err != nil || f != 0
	}
	return true
}

// formatValue renders a JSON value for display: strings unquoted, null as N/A,
// numbers as written, composites as compact JSON
func formatValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return "N/A"
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}

	if raw[0] == '{' || raw[0] == '[' {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}
