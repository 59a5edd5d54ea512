package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docuform/contact-extractor/internal/config"
	"github.com/docuform/contact-extractor/internal/engine"
	"github.com/docuform/contact-extractor/internal/extractor"
	"github.com/docuform/contact-extractor/internal/logger"
)

var (
	outputFormat   = flag.String("format", "json", "Output format: json, text")
	debugMode      = flag.Bool("debug", false, "Enable debug diagnostics on stderr")
	maxFileSize    = flag.Int64("maxfilesize", config.DefaultMaxFileSize, "Maximum PDF file size in bytes")
	enableFallback = flag.Bool("fallback", false, "Scan unlabeled text with patterns when a label is missing")
	help           = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		// Callers parse stdout, so even the usage failure keeps the
		// single-entry JSON error shape there
		fmt.Println(`{"error": "No PDF path provided"}`)
		fmt.Fprintln(os.Stderr, "Usage: pdf_extract_contact [OPTIONS] <pdf_file>")
		os.Exit(1)
	}

	log, err := newLogger(*debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	result := extractContact(log, flag.Arg(0))

	if err := outputResult(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("PDF Extract Contact - Pull name, phone and address fields out of PDF documents")
	fmt.Println()
	fmt.Println("The tool prints one JSON record per document on stdout and keeps all")
	fmt.Println("diagnostics on stderr, so it is safe to call from other programs.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format        Output format: json (default), text")
	fmt.Println("  -debug         Enable debug diagnostics on stderr")
	fmt.Println("  -maxfilesize   Maximum PDF file size in bytes")
	fmt.Println("  -fallback      Scan unlabeled text with patterns when a label is missing")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("OUTPUT:")
	fmt.Println("  Each of the three fields carries a value and a confidence marker:")
	fmt.Println("  • found           labeled value that passed validation")
	fmt.Println("  • low-confidence  captured but failed validation, or found by pattern fallback")
	fmt.Println("  • not-found       nothing usable in the document")
	fmt.Println()
	fmt.Println("  The record status summarizes the document: complete (all three found),")
	fmt.Println("  partial (at least one found) or failed (none found).")
	fmt.Println()
	fmt.Println("  Hard failures (missing file, encrypted or scanned PDF, no text layer)")
	fmt.Println("  produce {\"error\": \"...\"} instead of a record, with exit code 0.")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdf_extract_contact intake.pdf")
	fmt.Println("  pdf_extract_contact -format text application.pdf")
	fmt.Println("  pdf_extract_contact -debug -fallback scans/legacy-form.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  pdf_extract_contact [OPTIONS] <pdf_file>")
}

// newLogger builds a stderr console logger so stdout stays pure JSON
func newLogger(debug bool) (*logger.Logger, error) {
	level := "info"
	if debug {
		level = "debug"
	}
	return logger.New(logger.Config{
		Level:     level,
		Format:    "console",
		UseStderr: true,
	})
}

func engineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.EnableFallback = *enableFallback
	return cfg
}

// extractContact runs one document through the extraction service. Hard
// failures become the single-entry error shape instead of a process
// failure so callers always receive JSON on stdout.
func extractContact(log *logger.Logger, pdfPath string) any {
	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return extractor.ErrorRecord(fmt.Errorf("failed to get absolute path: %w", err))
	}

	service, err := extractor.NewService(*maxFileSize, engineConfig(), log)
	if err != nil {
		return extractor.ErrorRecord(err)
	}

	rec, err := service.ExtractFile(extractor.ExtractFileRequest{Path: absPath})
	if err != nil {
		return extractor.ErrorRecord(err)
	}

	return rec
}

func outputResult(v any) error {
	switch *outputFormat {
	case "json":
		return outputJSON(v)
	case "text":
		return outputText(v)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputText(v any) error {
	if errRec, ok := v.(map[string]string); ok {
		fmt.Printf("❌ Extraction failed: %s\n", errRec["error"])
		return nil
	}

	rec, ok := v.(*extractor.Record)
	if !ok {
		return fmt.Errorf("unexpected result type %T", v)
	}

	switch rec.Status {
	case "complete":
		fmt.Println("✅ All contact fields extracted")
	case "partial":
		fmt.Println("⚠️  Some contact fields missing")
	default:
		fmt.Println("❌ No contact fields found")
	}
	fmt.Println()

	printField("Name", rec.Name)
	printField("Phone", rec.Phone)
	printField("Address", rec.Address)

	fmt.Println()
	fmt.Printf("File: %s (%d bytes, %d pages)\n",
		rec.Metadata.FileName, rec.Metadata.FileSize, rec.Metadata.Pages)
	fmt.Printf("Processed: %s\n", rec.Metadata.ProcessedAt)

	return nil
}

func printField(label string, entry extractor.FieldEntry) {
	if entry.Value == nil {
		fmt.Printf("  %-8s (not found)\n", label+":")
		return
	}
	fmt.Printf("  %-8s %s [%s]\n", label+":", *entry.Value, entry.Confidence)
}

func init() {
	// Custom flag usage
	flag.Usage = func() {
		printHelp()
	}
}
