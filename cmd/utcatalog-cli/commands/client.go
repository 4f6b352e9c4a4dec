package commands

import (
	"context"
	"log/slog"
	"strings"

	"utcatalog-backend/lib/configutil"
	"utcatalog-backend/lib/restyutil"
	"utcatalog-backend/lib/scrapers/utcatalog"
	"utcatalog-backend/lib/serviceutil"

	"github.com/dgraph-io/badger/v4"
)

type Config struct {
	BaseUrl  string `json:"base_url"`
	CacheDir string `json:"cache_dir"`
	// RecordHttpDir dumps every HTTP exchange there when set, for debugging
	// markup drift on the live site.
	RecordHttpDir string `json:"record_http_dir"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		slog.Debug("no config file, using defaults", "err", err)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = ".utcatalog-cache"
	}
	return cfg
}

// openClient builds a catalogue client backed by an on-disk response cache.
// The returned cleanup closes both.
func openClient(ctx context.Context) (*utcatalog.Client, func()) {
	cfg := readConfig()

	if cfg.RecordHttpDir != "" {
		utcatalog.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(cfg.RecordHttpDir))
	}

	cache, err := badger.Open(badger.DefaultOptions(cfg.CacheDir))
	if err != nil {
		serviceutil.Fatal("failed to open response cache", err)
	}

	client, err := utcatalog.NewClient(ctx, utcatalog.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Cache:   cache,
	})
	if err != nil {
		cache.Close()
		serviceutil.Fatal("failed to initialize catalogue client", err)
	}

	return client, func() {
		client.Close()
		cache.Close()
	}
}

func formatSemesters(semesters []utcatalog.Semester) string {
	parts := make([]string, len(semesters))
	for i, s := range semesters {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

func formatPeriods(periods []utcatalog.WeekdayPeriod) string {
	parts := make([]string, len(periods))
	for i, p := range periods {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
