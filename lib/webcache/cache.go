package webcache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"net/url"

	"utcatalog-backend/lib/timezone"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/webcache")

// ErrMiss is returned when an entry is absent or has expired. Expired
// entries are deleted on read.
var ErrMiss = errors.New("webcache: entry not found")

// Entry is one cached response body. Timestamps are unix seconds; an entry
// with ExpiresAt in the past is treated as a miss.
type Entry struct {
	Body      []byte
	FetchedAt int64
	ExpiresAt int64
}

// Cache is a badger-backed response cache keyed by normalized absolute URL.
// Entries are idempotent re-fetches of the same URL, so concurrent writers
// racing on a key is fine, last writer wins.
type Cache struct {
	db      *badger.DB
	baseUrl *url.URL
}

func New(db *badger.DB, baseUrl *url.URL) Cache {
	return Cache{db: db, baseUrl: baseUrl}
}

func (c Cache) key(endpoint string) (string, error) {
	full, err := c.baseUrl.Parse(endpoint)
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		full,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveDirectoryIndex|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return "GET:" + normalized, nil
}

func (c Cache) Get(ctx context.Context, endpoint string) (Entry, error) {
	ctx, span := tracer.Start(ctx, "get")
	defer span.End()

	key, err := c.key(endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return Entry{}, err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	tx := c.db.NewTransaction(false)
	defer tx.Discard()
	item, err := tx.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return Entry{}, ErrMiss
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return Entry{}, err
	}
	serialized, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return Entry{}, err
	}

	var cached Entry
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&cached)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached item")
		return Entry{}, err
	}

	if timezone.Now().Unix() >= cached.ExpiresAt {
		tx := c.db.NewTransaction(true)
		defer tx.Commit()

		err = tx.Delete([]byte(key))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to delete expired key")
		}
		span.SetStatus(codes.Ok, "CACHE EXPIRED")
		return Entry{}, ErrMiss
	}

	span.SetAttributes(attribute.Int("contentlength", len(cached.Body)))
	span.SetStatus(codes.Ok, "CACHE HIT")
	return cached, nil
}

func (c Cache) Set(ctx context.Context, endpoint string, entry Entry) error {
	ctx, span := tracer.Start(ctx, "set")
	defer span.End()

	key, err := c.key(endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	serialized := bytes.NewBuffer(nil)
	err = gob.NewEncoder(serialized).Encode(entry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize entry")
		return err
	}

	tx := c.db.NewTransaction(true)
	defer tx.Commit()

	err = tx.Set([]byte(key), serialized.Bytes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return err
	}

	return nil
}
