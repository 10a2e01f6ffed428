// Package transform orchestrates per-line processing: parse a line into the
// reusable field map, render priority fields first, defer multi-line string
// fields to the end of the record, and pass anything that is not a JSON
// object through untouched.
package transform

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quodlibetor/jsonlogprint/internal/config"
	"github.com/quodlibetor/jsonlogprint/internal/model"
	"github.com/quodlibetor/jsonlogprint/internal/output"
	"github.com/quodlibetor/jsonlogprint/internal/parser"
	"github.com/quodlibetor/jsonlogprint/internal/style"
)

// Year3000Epoch is the number of seconds between 1970 and the year 3000.
// With timestamp format auto, values above it are treated as milliseconds:
// any plausible seconds timestamp is far below, any plausible milliseconds
// timestamp far above.
const Year3000Epoch = 32503698000

const fieldMapCapacity = 24

// Transformer converts a stream of JSON log lines to logfmt. It owns a
// single FieldMap reused for every line, plus the per-line bookkeeping of
// which slots have been rendered and which are deferred to the end of the
// record. Not safe for concurrent use; the pipeline is strictly sequential.
type Transformer struct {
	cfg      config.Config
	out      *bufio.Writer
	styler   *style.Styler
	renderer *output.Renderer
	logger   *log.Logger

	fields   *model.FieldMap
	rendered []bool // per-slot "already printed" flags, rebuilt each line
	deferred []int  // slots holding strings with embedded line breaks
}

// New returns a Transformer writing rendered records to w. The color mode in
// cfg is resolved to a concrete decision here, once per process.
func New(cfg config.Config, w io.Writer, logger *log.Logger) *Transformer {
	styler := style.New(style.Enabled(cfg.Color))
	return &Transformer{
		cfg:      cfg,
		out:      bufio.NewWriterSize(w, 32*1024),
		styler:   styler,
		renderer: output.New(styler),
		logger:   logger,
		fields:   model.NewFieldMap(fieldMapCapacity),
		deferred: make([]int, 0, len(cfg.PriorityFields)),
	}
}

// Run processes r line by line until input is exhausted. Each line is fully
// parsed, rendered and (by default) flushed before the next is read. The
// returned error is always a fatal output-write failure; recoverable
// conditions degrade to passing the original line through.
func (t *Transformer) Run(r io.Reader) error {
	in := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := in.ReadString('\n')
		if len(line) > 0 {
			t.processLine(trimLineEnding(line))
			if t.cfg.FlushEveryLine {
				if ferr := t.out.Flush(); ferr != nil {
					return fmt.Errorf("write output: %w", ferr)
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				// A failed read poisons the buffered reader, so after the
				// blank record the stream counts as exhausted.
				t.logger.Warn("failed to read line from stdin", "err", err)
				fmt.Fprintln(t.out)
			}
			break
		}
	}
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// processLine renders one line. Lines that are not JSON objects are written
// back unchanged; a failure while composing a record falls back to a blank
// line followed by the raw line so no log data is ever dropped.
func (t *Transformer) processLine(line string) {
	if !parser.Accepts(line) {
		fmt.Fprintln(t.out, line)
		return
	}

	if err := parser.Parse(line, t.fields); err != nil {
		t.logger.Debug("failed to parse JSON line", "line", line, "err", err)
		fmt.Fprintln(t.out, line)
		return
	}

	if err := t.writeRecord(); err != nil {
		t.logger.Debug("failed to format JSON line", "err", err)
		fmt.Fprintln(t.out)
		fmt.Fprintln(t.out, line)
	}
	fmt.Fprintln(t.out)
}

// writeRecord composes one logfmt record from the populated field map:
// priority fields bare and in configured order, remaining fields keyed in
// parse order, then any deferred multi-line fields each on their own line.
func (t *Transformer) writeRecord() error {
	n := t.fields.Len()
	if cap(t.rendered) < n {
		t.rendered = make([]bool, n)
	} else {
		t.rendered = t.rendered[:n]
		clear(t.rendered)
	}
	t.deferred = t.deferred[:0]

	first := true
	sep := func() error {
		if first {
			first = false
			return nil
		}
		return writeString(t.out, " ")
	}

	for _, name := range t.cfg.PriorityFields {
		i, ok := t.fields.Index(name)
		if !ok {
			continue
		}
		f := t.fields.At(i)
		switch f.Value.Kind {
		case model.KindString:
			if strings.ContainsRune(f.Value.Str, '\n') {
				// Needs its key prefix later, so only bookkeeping changes
				// here; the slot still carries the real value.
				t.deferred = append(t.deferred, i)
				t.rendered[i] = true
				continue
			}
			if err := sep(); err != nil {
				return err
			}
			text := f.Value.Str
			if name == t.cfg.LevelField {
				text = t.styler.Level(text)
			}
			if err := writeString(t.out, text); err != nil {
				return err
			}
		case model.KindNumber:
			if err := sep(); err != nil {
				return err
			}
			if name == t.cfg.TimestampField {
				if err := t.writeTimestamp(f.Value.Num); err != nil {
					return err
				}
			} else if err := writeString(t.out, f.Value.Num.String()); err != nil {
				return err
			}
		case model.KindBool:
			if err := sep(); err != nil {
				return err
			}
			if err := writeString(t.out, strconv.FormatBool(f.Value.Bool)); err != nil {
				return err
			}
		case model.KindNull:
			if err := sep(); err != nil {
				return err
			}
			if err := writeString(t.out, "null"); err != nil {
				return err
			}
		default:
			// Objects and arrays keep their key; the body phase prints them.
			continue
		}
		t.rendered[i] = true
	}

	for i := 0; i < n; i++ {
		if t.rendered[i] {
			continue
		}
		f := t.fields.At(i)
		if f.Value.Kind == model.KindString && strings.ContainsRune(f.Value.Str, '\n') {
			t.deferred = append(t.deferred, i)
			continue
		}
		if err := sep(); err != nil {
			return err
		}
		if err := t.renderer.Value(t.out, f.Name, f.Value, 0); err != nil {
			return err
		}
	}

	for _, i := range t.deferred {
		if err := writeString(t.out, "\n"); err != nil {
			return err
		}
		f := t.fields.At(i)
		if err := t.renderer.Value(t.out, f.Name, f.Value, 0); err != nil {
			return err
		}
	}

	return nil
}

// writeTimestamp renders the configured timestamp field. Values that cannot
// become a sensible calendar date (or format raw) print the integer itself,
// still dimmed like any timestamp.
func (t *Transformer) writeTimestamp(num json.Number) error {
	ts, err := num.Int64()
	if err != nil {
		ts = 0
	}

	format := t.cfg.TimestampFormat
	if format == config.TimestampAuto {
		if ts > Year3000Epoch {
			format = config.TimestampMillis
		} else {
			format = config.TimestampSeconds
		}
	}

	var text string
	switch format {
	case config.TimestampSeconds:
		text = formatInstant(time.Unix(ts, 0), "2006-01-02T15:04:05Z", ts)
	case config.TimestampMillis:
		text = formatInstant(time.UnixMilli(ts), "2006-01-02T15:04:05.000Z", ts)
	default: // config.TimestampRaw
		text = strconv.FormatInt(ts, 10)
	}
	return writeString(t.out, t.styler.Timestamp(text))
}

// formatInstant formats in UTC, falling back to the raw integer for dates
// the ISO layout cannot express.
func formatInstant(instant time.Time, layout string, raw int64) string {
	utc := instant.UTC()
	if y := utc.Year(); y < 0 || y > 9999 {
		return strconv.FormatInt(raw, 10)
	}
	return utc.Format(layout)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
