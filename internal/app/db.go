package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/riskibarqy/btts-tracker/internal/config"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

const dbPingTimeout = 5 * time.Second

func openDB(cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := buildDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	dbName := databaseName(cfg.DBURL)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbName),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres connected", "database", dbName)

	return db, nil
}

// buildDSN optionally appends disable_prepared_binary_result for
// poolers that choke on the binary wire format. An explicit value in
// the URL is left alone.
func buildDSN(rawURL string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil || u == nil {
		return rawURL
	}

	q := u.Query()
	if q.Has("disable_prepared_binary_result") {
		return rawURL
	}
	q.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// databaseName extracts the database name for trace attributes from
// either a postgres:// URL or a key=value DSN.
func databaseName(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)

	if u, err := url.Parse(trimmed); err == nil && u != nil && u.Scheme != "" {
		if name := strings.TrimPrefix(u.Path, "/"); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"'`); name != "" {
			return name
		}
	}

	return ""
}
