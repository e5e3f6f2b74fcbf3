// parsedoc runs the document parsing pipeline against a file on disk and
// prints the recovered text, or the extracted fields with -extract. Useful
// for tuning OCR settings without going through the HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"invoxd/internal/config"
	"invoxd/internal/docparse"
	"invoxd/internal/extract"
)

func main() {
	runExtract := flag.Bool("extract", false, "run field extraction on the parsed text")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: parsedoc [-extract] <file>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	parser := docparse.New(docparse.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Language:  cfg.OCR.Language,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, log)

	ctx := context.Background()
	text := parser.ParseFile(ctx, flag.Arg(0))

	if !*runExtract {
		fmt.Print(text)
		return
	}

	extractor := extract.NewOpenAIExtractor(&cfg.Extractor, log)
	fields, err := extractor.Extract(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extraction failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding fields: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
