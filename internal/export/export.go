// Package export encodes VDOT table data as JSON, YAML or MessagePack.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"vdot/internal/store"
)

// Format is an output encoding
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgPack Format = "msgpack"
)

// ErrUnknownFormat is returned for unsupported format names
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves a format name, case-insensitively. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk":
		return FormatMsgPack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMsgPack:
		return "application/x-msgpack"
	default:
		return "application/json"
	}
}

// Record is the exported form of one table row. Times are whole seconds,
// paces whole seconds per kilometer.
type Record struct {
	VDOT           float64 `json:"vdot" yaml:"vdot"`
	FiveK          int     `json:"five_k" yaml:"five_k"`
	TenK           int     `json:"ten_k" yaml:"ten_k"`
	HalfMarathon   int     `json:"half_marathon" yaml:"half_marathon"`
	Marathon       int     `json:"marathon" yaml:"marathon"`
	EasyFastPace   int     `json:"easy_fast_pace" yaml:"easy_fast_pace"`
	EasySlowPace   int     `json:"easy_slow_pace" yaml:"easy_slow_pace"`
	MarathonPace   int     `json:"marathon_pace" yaml:"marathon_pace"`
	ThresholdPace  int     `json:"threshold_pace" yaml:"threshold_pace"`
	IntervalPace   int     `json:"interval_pace" yaml:"interval_pace"`
	RepetitionPace int     `json:"repetition_pace" yaml:"repetition_pace"`
}

// NewRecord converts a stored row
func NewRecord(r store.TableRow) Record {
	return Record{
		VDOT:           float64(r.V) / 10,
		FiveK:          r.FiveKTime,
		TenK:           r.TenKTime,
		HalfMarathon:   r.HalfTime,
		Marathon:       r.MarathonTime,
		EasyFastPace:   r.EasyFastPace,
		EasySlowPace:   r.EasySlowPace,
		MarathonPace:   r.MarathonPace,
		ThresholdPace:  r.ThresholdPace,
		IntervalPace:   r.IntervalPace,
		RepetitionPace: r.RepetitionPace,
	}
}

// Records converts stored rows in order
func Records(rows []store.TableRow) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = NewRecord(r)
	}
	return out
}

// Encode writes v to w in the given format
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgPack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json") // keys match the JSON output
		return enc.Encode(v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteTable encodes stored table rows to w
func WriteTable(w io.Writer, f Format, rows []store.TableRow) error {
	if err := Encode(w, f, Records(rows)); err != nil {
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return nil
}
