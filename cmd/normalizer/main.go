package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/extract"
	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/observability"
	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		slog.Error("usage: normalizer <notice.json|notice.xml> ...")
		os.Exit(1)
	}

	var dbStore *store.Store
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		var err error
		dbStore, err = store.NewStore(dbURL)
		if err != nil {
			slog.Error("failed to connect to store", "error", err)
			os.Exit(1)
		}
		defer dbStore.Close()

		schemaPath := envOr("SCHEMA_PATH", "internal/store/schema.sql")
		if err := dbStore.RunMigrations(schemaPath); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)

	for _, path := range os.Args[1:] {
		rec := normalizeFile(path)
		rec.SourceFile = record.String(filepath.Base(path))

		observability.IncNoticeExtracted(derefOr(rec.SchemaType, "unknown"))
		observability.IncNoticeGroup(derefOr(rec.NoticeTypeGroup, ""))
		if rec.ParseError != nil {
			observability.IncParseError()
		}

		if err := enc.Encode(rec); err != nil {
			slog.Error("failed to write record", "file", path, "error", err)
			observability.IncError(observability.ClassifyExtractError(err))
			continue
		}

		if dbStore != nil {
			if err := dbStore.InsertNotice(ctx, rec); err != nil {
				slog.Error("failed to store record", "file", path, "error", err)
				observability.IncError(observability.ClassifyExtractError(err))
				continue
			}
			observability.IncRecordStored()
		}
	}

	snap := observability.Snapshot()
	slog.Info("done",
		"notices", snap.NoticesExtracted,
		"parse_errors", snap.ParseErrors,
		"stored", snap.RecordsStored,
		"errors", snap.ErrorsTotal)

	if dbStore != nil {
		counts, err := dbStore.CountByGroup(ctx)
		if err != nil {
			slog.Error("failed to count stored notices", "error", err)
			return
		}
		for group, count := range counts {
			slog.Info("stored by group", "group", group, "count", count)
		}
	}
}

// normalizeFile routes one file to the matching adapter by extension.
// Unreadable or undecodable input degrades to an error-marked record,
// matching what the adapters themselves do for malformed documents.
func normalizeFile(path string) *record.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read file", "file", path, "error", err)
		observability.IncError(observability.ErrorInput)
		rec := &record.Record{ParseError: record.String(err.Error())}
		return rec
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return extract.OCDSBytes(data)
	}
	return extract.XMLNotice(string(data))
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
