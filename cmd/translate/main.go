// Command translate runs a configured translation pipeline over a
// batch of NDJSON records: one JSON object per input line on stdin,
// one per output record on stdout.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/classicvalues/phased-table-translation/internal/config"
	"github.com/classicvalues/phased-table-translation/internal/registry"
	_ "github.com/classicvalues/phased-table-translation/internal/stages"
	"github.com/classicvalues/phased-table-translation/internal/telemetry"
	"github.com/classicvalues/phased-table-translation/pkg/fieldmap"
	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the pipeline configuration file")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdown, err := telemetry.Init("phased-table-translation", logger)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown telemetry", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var counter *telemetry.Counter
	if cfg.Translator.Metering.Enabled {
		if counter, err = telemetry.NewCounter(); err != nil {
			log.Fatalf("Failed to create failure counter: %v", err)
		}
	}

	translator, err := registry.NewTranslatorFromConfig(cfg.Translator, counterOrNil(counter), logger)
	if err != nil {
		log.Fatalf("Failed to build translator: %v", err)
	}

	batch, err := readRecords(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read input records: %v", err)
	}

	handler := telemetry.TraceBatch[fieldmap.Record](logger)(translator)
	out, err := handler.TranslateBatch(context.Background(), batch)
	if err != nil {
		log.Fatalf("Batch translation aborted: %v", err)
	}

	if err := writeRecords(os.Stdout, out); err != nil {
		log.Fatalf("Failed to write output records: %v", err)
	}
}

// counterOrNil avoids passing a typed nil pointer into an interface
// parameter.
func counterOrNil(c *telemetry.Counter) translate.Counter {
	if c == nil {
		return nil
	}
	return c
}

func readRecords(f *os.File) ([]fieldmap.Record, error) {
	var batch []fieldmap.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec fieldmap.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, err
		}
		batch = append(batch, rec)
	}
	return batch, scanner.Err()
}

func writeRecords(f *os.File, records []fieldmap.Record) error {
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}
