package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	domainerrors "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/errors"
)

// Required and optional CSV columns of the ingest input. Unknown columns are
// ignored.
var requiredColumns = []string{
	"customer_id", "gender", "age", "city",
	"product_id", "product_name", "category_id", "category_name", "price",
	"order_date", "quantity",
}

const (
	colPaymentMethod = "payment_method"
	colReviewScore   = "review_score"
	colReviewText    = "review_text"

	defaultPaymentMethod = "Cash"
)

// Frame is the in-memory tabular form of one uploaded CSV. Records stay as
// raw strings; numeric coercion happens per row inside the chunk workers so a
// bad value fails only its own row.
type Frame struct {
	columns map[string]int
	records [][]string
}

// ParseFrame reads and validates a CSV stream. A missing required column or
// an unparseable header rejects the whole upload before any write. A stream
// with no header at all is an empty frame, so a zero-byte upload completes
// with zero records rather than failing.
func ParseFrame(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Frame{columns: map[string]int{}}, nil
	}
	if err != nil {
		return nil, domainerrors.NewInputError(fmt.Sprintf("unparseable header: %v", err))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, domainerrors.NewInputError("missing required columns: " + strings.Join(missing, ", "))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, domainerrors.NewInputError(fmt.Sprintf("malformed csv body: %v", err))
	}

	return &Frame{columns: columns, records: records}, nil
}

// Len returns the number of data rows in the frame.
func (f *Frame) Len() int {
	return len(f.records)
}

// FrameChunk is a contiguous slice of the frame processed by one worker.
type FrameChunk struct {
	Index   int
	Start   int
	columns map[string]int
	records [][]string
}

// Len returns the number of rows in the chunk.
func (c *FrameChunk) Len() int {
	return len(c.records)
}

// Chunks partitions the frame into ⌈N/size⌉ contiguous chunks.
func (f *Frame) Chunks(size int) []FrameChunk {
	if size <= 0 {
		size = 1
	}
	var chunks []FrameChunk
	for start := 0; start < len(f.records); start += size {
		end := start + size
		if end > len(f.records) {
			end = len(f.records)
		}
		chunks = append(chunks, FrameChunk{
			Index:   len(chunks),
			Start:   start,
			columns: f.columns,
			records: f.records[start:end],
		})
	}
	return chunks
}

// Row is one coerced frame row.
type Row struct {
	CustomerID    int
	Gender        string
	Age           int
	City          string
	ProductID     int
	ProductName   string
	CategoryID    int
	CategoryName  string
	Price         float64
	OrderDate     time.Time
	Quantity      int
	PaymentMethod string
	ReviewScore   *float64
	ReviewText    string
}

// Rows coerces the chunk's records. A failed coercion on a required field
// fails the row, not the chunk; the number of failed rows is returned
// alongside the valid ones.
func (c *FrameChunk) Rows() ([]Row, int) {
	rows := make([]Row, 0, len(c.records))
	failed := 0
	for i, record := range c.records {
		row, err := parseRow(c.columns, record, c.Start+i)
		if err != nil {
			failed++
			continue
		}
		rows = append(rows, row)
	}
	return rows, failed
}

// Date layouts accepted for order_date, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseRow(columns map[string]int, record []string, rowIdx int) (Row, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	requireInt := func(name string) (int, error) {
		raw := field(name)
		if raw == "" {
			return 0, domainerrors.NewRowError(rowIdx, name, "missing required field")
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, domainerrors.NewRowError(rowIdx, name, "not an integer")
		}
		return v, nil
	}

	requireFloat := func(name string) (float64, error) {
		raw := field(name)
		if raw == "" {
			return 0, domainerrors.NewRowError(rowIdx, name, "missing required field")
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, domainerrors.NewRowError(rowIdx, name, "not a number")
		}
		return v, nil
	}

	requireString := func(name string) (string, error) {
		raw := field(name)
		if raw == "" {
			return "", domainerrors.NewRowError(rowIdx, name, "missing required field")
		}
		return raw, nil
	}

	var row Row
	var err error

	if row.CustomerID, err = requireInt("customer_id"); err != nil {
		return Row{}, err
	}
	if row.Gender, err = requireString("gender"); err != nil {
		return Row{}, err
	}
	if row.Age, err = requireInt("age"); err != nil {
		return Row{}, err
	}
	if row.City, err = requireString("city"); err != nil {
		return Row{}, err
	}
	if row.ProductID, err = requireInt("product_id"); err != nil {
		return Row{}, err
	}
	if row.ProductName, err = requireString("product_name"); err != nil {
		return Row{}, err
	}
	if row.CategoryID, err = requireInt("category_id"); err != nil {
		return Row{}, err
	}
	if row.CategoryName, err = requireString("category_name"); err != nil {
		return Row{}, err
	}
	if row.Price, err = requireFloat("price"); err != nil {
		return Row{}, err
	}
	if row.Quantity, err = requireInt("quantity"); err != nil {
		return Row{}, err
	}

	rawDate, err := requireString("order_date")
	if err != nil {
		return Row{}, err
	}
	if row.OrderDate, err = parseDate(rawDate); err != nil {
		return Row{}, domainerrors.NewRowError(rowIdx, "order_date", err.Error())
	}

	row.PaymentMethod = field(colPaymentMethod)
	if row.PaymentMethod == "" {
		row.PaymentMethod = defaultPaymentMethod
	}

	// Reviews are optional: a missing or non-numeric score means the row
	// simply carries no review.
	if raw := field(colReviewScore); raw != "" {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			row.ReviewScore = &score
			row.ReviewText = field(colReviewText)
		}
	}

	return row, nil
}
