package timeseries

import (
	"fmt"
	"math"
	"time"
)

// defaultStep is assumed when a frame is too short to infer its frequency.
const defaultStep = time.Hour

// Series represents a single named column of float64 values indexed by timestamp.
type Series struct {
	Name   string
	index  []time.Time
	values []float64
}

// NewSeries creates a series from an index and values of equal length.
func NewSeries(name string, index []time.Time, values []float64) (*Series, error) {
	if len(index) != len(values) {
		return nil, fmt.Errorf("series %s: index length %d does not match values length %d", name, len(index), len(values))
	}
	if err := validateIndex(index); err != nil {
		return nil, fmt.Errorf("series %s: %w", name, err)
	}
	return &Series{Name: name, index: index, values: values}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.values)
}

// Index returns the timestamp index.
func (s *Series) Index() []time.Time {
	return s.index
}

// Values returns the observation values.
func (s *Series) Values() []float64 {
	return s.values
}

// Frame represents a timestamp-indexed table of named float64 columns.
// The index is strictly increasing; parse failures upstream are represented
// as NaN values, never as errors.
type Frame struct {
	index   []time.Time
	columns []string
	data    map[string][]float64
}

// NewFrame creates a frame from an index and a set of equally sized columns.
// Column order is preserved as given.
func NewFrame(index []time.Time, columns []string, data map[string][]float64) (*Frame, error) {
	if err := validateIndex(index); err != nil {
		return nil, err
	}
	for _, col := range columns {
		values, ok := data[col]
		if !ok {
			return nil, fmt.Errorf("column %s has no data", col)
		}
		if len(values) != len(index) {
			return nil, fmt.Errorf("column %s: length %d does not match index length %d", col, len(values), len(index))
		}
	}
	return &Frame{index: index, columns: columns, data: data}, nil
}

// NaNFrame creates a frame of the given shape with every value set to NaN.
func NaNFrame(index []time.Time, columns []string) *Frame {
	data := make(map[string][]float64, len(columns))
	for _, col := range columns {
		values := make([]float64, len(index))
		for i := range values {
			values[i] = math.NaN()
		}
		data[col] = values
	}
	return &Frame{index: index, columns: append([]string(nil), columns...), data: data}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns the timestamp index.
func (f *Frame) Index() []time.Time {
	return f.index
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return f.columns
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Column returns the named column as a series sharing the frame's index.
func (f *Frame) Column(name string) (*Series, error) {
	values, ok := f.data[name]
	if !ok {
		return nil, fmt.Errorf("frame has no column %s", name)
	}
	return &Series{Name: name, index: f.index, values: values}, nil
}

// Values returns the raw values of the named column, or nil if absent.
func (f *Frame) Values(name string) []float64 {
	return f.data[name]
}

// AddColumn appends a column to the frame. The values must match the index length.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.index) {
		return fmt.Errorf("column %s: length %d does not match index length %d", name, len(values), len(f.index))
	}
	if _, ok := f.data[name]; !ok {
		f.columns = append(f.columns, name)
	}
	f.data[name] = values
	return nil
}

// Reindex aligns the frame onto a new index using last-observation-carried-forward.
// Target timestamps preceding the first observation become NaN. Re-aligning a
// frame onto its own index is a no-op.
func (f *Frame) Reindex(index []time.Time) *Frame {
	data := make(map[string][]float64, len(f.columns))
	for _, col := range f.columns {
		data[col] = forwardFill(f.index, f.data[col], index)
	}
	return &Frame{index: index, columns: append([]string(nil), f.columns...), data: data}
}

// Tail returns the last n rows. If n exceeds the frame length, the whole
// frame is returned; a non-positive n yields an empty frame.
func (f *Frame) Tail(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n >= len(f.index) {
		n = len(f.index)
	}
	start := len(f.index) - n
	data := make(map[string][]float64, len(f.columns))
	for _, col := range f.columns {
		data[col] = f.data[col][start:]
	}
	return &Frame{index: f.index[start:], columns: append([]string(nil), f.columns...), data: data}
}

// Step returns the frame's observation frequency, inferred from the spacing
// of the last two index entries. Frames shorter than two rows fall back to
// one hour.
func (f *Frame) Step() time.Duration {
	if len(f.index) < 2 {
		return defaultStep
	}
	return f.index[len(f.index)-1].Sub(f.index[len(f.index)-2])
}

// FutureIndex returns n timestamps continuing the frame's frequency past its
// last observation.
func (f *Frame) FutureIndex(n int) []time.Time {
	step := f.Step()
	var last time.Time
	if len(f.index) > 0 {
		last = f.index[len(f.index)-1]
	}
	future := make([]time.Time, n)
	for i := 0; i < n; i++ {
		last = last.Add(step)
		future[i] = last
	}
	return future
}

// NaNs returns a slice of n NaN values.
func NaNs(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.NaN()
	}
	return values
}

// forwardFill maps source observations onto a target index, carrying the last
// known value forward. Positions before the first source observation are NaN.
func forwardFill(srcIndex []time.Time, srcValues []float64, target []time.Time) []float64 {
	out := make([]float64, len(target))
	j := 0
	for i, ts := range target {
		for j < len(srcIndex) && !srcIndex[j].After(ts) {
			j++
		}
		if j == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = srcValues[j-1]
		}
	}
	return out
}

func validateIndex(index []time.Time) error {
	for i := 1; i < len(index); i++ {
		if !index[i].After(index[i-1]) {
			return fmt.Errorf("index is not strictly increasing at position %d (%s)", i, index[i].Format(time.RFC3339))
		}
	}
	return nil
}
