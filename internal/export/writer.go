package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/extractor"
	"github.com/docuform/contact-extractor/internal/logger"
)

const sheetName = "Contacts"

var sheetHeaders = []string{
	"File",
	"Name",
	"Name Confidence",
	"Phone",
	"Phone Confidence",
	"Address",
	"Address Confidence",
	"Status",
	"Processed At",
}

// Writer accumulates extraction records and renders them as a contact
// sheet. Safe for concurrent Add calls from worker goroutines.
type Writer struct {
	mu      sync.Mutex
	entries []sheetEntry
	logger  *logger.Logger
}

type sheetEntry struct {
	fileName string
	record   *extractor.Record
}

// NewWriter creates an empty contact sheet writer
func NewWriter(log *logger.Logger) *Writer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Writer{
		logger: log.WithComponent("export"),
	}
}

// Add appends one processed document to the sheet
func (w *Writer) Add(fileName string, rec *extractor.Record) {
	if rec == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, sheetEntry{fileName: fileName, record: rec})
}

// Len returns the number of accumulated rows
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// WriteXLSX renders the sheet as an XLSX workbook
func (w *Writer) WriteXLSX() ([]byte, error) {
	w.mu.Lock()
	entries := make([]sheetEntry, len(w.entries))
	copy(entries, w.entries)
	w.mu.Unlock()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range sheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	for _, entry := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}

		for col, v := range entry.row() {
			write(col+1, v)
		}
		row++
	}

	// Widen the value columns
	_ = f.SetColWidth(sheetName, "A", "A", 32) // file
	_ = f.SetColWidth(sheetName, "B", "B", 28) // name
	_ = f.SetColWidth(sheetName, "D", "D", 20) // phone
	_ = f.SetColWidth(sheetName, "F", "F", 48) // address
	_ = f.SetColWidth(sheetName, "I", "I", 22) // timestamp

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSV renders the sheet as CSV
func (w *Writer) WriteCSV() ([]byte, error) {
	w.mu.Lock()
	entries := make([]sheetEntry, len(w.entries))
	copy(entries, w.entries)
	w.mu.Unlock()

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(sheetHeaders); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	for _, entry := range entries {
		if err := cw.Write(entry.row()); err != nil {
			return nil, fmt.Errorf("csv write: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the sheet to path, choosing the format by extension
func (w *Writer) Save(path string) error {
	start := time.Now()

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		data, err = w.WriteXLSX()
	case ".csv":
		data, err = w.WriteCSV()
	default:
		return fmt.Errorf("unsupported contact sheet format: %s", path)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write contact sheet: %w", err)
	}

	w.logger.Info("contact sheet written",
		zap.String("path", path),
		zap.Int("rows", w.Len()),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()))
	return nil
}

func (e sheetEntry) row() []string {
	rec := e.record
	return []string{
		e.fileName,
		fieldValue(rec.Name),
		rec.Name.Confidence,
		fieldValue(rec.Phone),
		rec.Phone.Confidence,
		fieldValue(rec.Address),
		rec.Address.Confidence,
		rec.Status,
		rec.Metadata.ProcessedAt,
	}
}

func fieldValue(entry extractor.FieldEntry) string {
	if entry.Value == nil {
		return ""
	}
	return *entry.Value
}
