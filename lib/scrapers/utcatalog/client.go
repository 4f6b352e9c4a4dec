package utcatalog

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"sync"
	"time"

	"utcatalog-backend/lib/restyutil"
	"utcatalog-backend/lib/telemetry"
	"utcatalog-backend/lib/timezone"
	"utcatalog-backend/lib/webcache"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/utcatalog")

const DefaultBaseUrl = "https://catalog.he.u-tokyo.ac.jp/"

// catalogue pages change rarely, so cached responses live long by default
const DefaultCacheTTL = time.Hour * 24 * 30

// detailConcurrency bounds in-flight detail fetches during DetailAll.
const detailConcurrency = 8

type ClientOptions struct {
	// BaseUrl defaults to the public catalogue.
	BaseUrl string
	// Cache enables response caching when non-nil. The client does not own
	// the badger handle, callers close it themselves.
	Cache *badger.DB
	// CacheTTL defaults to DefaultCacheTTL.
	CacheTTL time.Duration
	// MinInterval spaces out live requests to stay polite to the upstream.
	// Defaults to one second, negative disables the limiter.
	MinInterval time.Duration
	// RetryCount bounds retries of transient failures. Defaults to 3.
	RetryCount int
}

// Client is the catalogue facade. It owns the HTTP session, all concurrent
// calls on one Client share its connection pool and cache.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	cache    *webcache.Cache
	cacheTTL time.Duration
	limiter  *rate.Limiter
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.MinInterval == 0 {
		opts.MinInterval = time.Second
	}
	if opts.RetryCount == 0 {
		opts.RetryCount = 3
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(time.Millisecond * 500)
	client.SetRetryMaxWaitTime(time.Second * 16)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res.StatusCode() >= 500 || res.StatusCode() == 429
	})

	telemetry.InstrumentResty(client, "scrapers/utcatalog/http")
	restyutil.RecordExchanges(client, restyInstrumentOutput)

	c := &Client{
		BaseUrl:  baseUrl,
		Http:     client,
		cacheTTL: opts.CacheTTL,
	}
	if opts.Cache != nil {
		cache := webcache.New(opts.Cache, baseUrl)
		c.cache = &cache
	}
	if opts.MinInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(opts.MinInterval), 1)
	}
	return c, nil
}

// Close releases the HTTP session. The badger handle passed through
// ClientOptions stays open, it belongs to the caller.
func (c *Client) Close() {
	c.Http.GetClient().CloseIdleConnections()
}

// fetch returns the body for an endpoint+query, serving from the cache when
// possible. A cancelled fetch never writes a partial cache entry.
func (c *Client) fetch(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "fetch")
	defer span.End()

	cacheKey := endpoint + "?" + query.Encode()
	span.SetAttributes(attribute.String("url", cacheKey))

	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			span.SetStatus(codes.Ok, "CACHE HIT")
			return entry.Body, nil
		}
		if err != webcache.ErrMiss {
			span.RecordError(err)
			span.AddEvent("CACHE ERROR")
		}
	}

	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return nil, &FetchError{Kind: FetchTimeout, URL: cacheKey, Err: err}
		}
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(endpoint)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		kind := FetchExhaustedRetries
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			kind = FetchTimeout
		}
		return nil, &FetchError{Kind: kind, URL: cacheKey, Err: err}
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "bad response status")
		kind := FetchHttpStatus
		// 5xx and 429 were already retried by the transport
		if res.StatusCode() >= 500 || res.StatusCode() == 429 {
			kind = FetchExhaustedRetries
		}
		return nil, &FetchError{Kind: kind, StatusCode: res.StatusCode(), URL: cacheKey}
	}

	if c.cache != nil {
		now := timezone.Now().Unix()
		err = c.cache.Set(ctx, cacheKey, webcache.Entry{
			Body:      res.Body(),
			FetchedAt: now,
			ExpiresAt: now + int64(c.cacheTTL/time.Second),
		})
		if err != nil {
			span.RecordError(err)
			span.AddEvent("CACHE ERROR")
		}
	}

	return res.Body(), nil
}

func (c *Client) document(ctx context.Context, endpoint string, query url.Values) (*goquery.Document, error) {
	body, err := c.fetch(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(body))
}

// Search fetches one page of search results. Pages are 1-based. A query
// matching nothing yields an empty result, not an error.
func (c *Client) Search(ctx context.Context, params SearchParams, page int) (SearchResult, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	if page < 1 {
		page = 1
	}

	doc, err := c.document(ctx, "result", params.Values(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch search page")
		return SearchResult{}, err
	}

	switch shape := DetectShape(doc); shape {
	case SearchPage:
	case NotFoundPage:
		// the upstream renders its error layout for queries matching nothing
		return SearchResult{CurrentPage: page}, nil
	default:
		err := &ParseError{Shape: shape, Reason: "expected a search listing"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected page shape")
		return SearchResult{}, err
	}

	raw, err := parseSearchPage(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search page")
		return SearchResult{}, err
	}

	result := SearchResult{
		FirstIndex:   raw.FirstIndex,
		LastIndex:    raw.LastIndex,
		TotalCount:   raw.TotalCount,
		CurrentPage:  page,
		CurrentCount: len(raw.Rows),
		TotalPages:   int(math.Ceil(float64(raw.TotalCount) / PageSize)),
	}
	for _, row := range raw.Rows {
		item, err := mapSearchRow(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to map search row")
			return SearchResult{}, err
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// SearchAll walks every result page for the given params. The first page is
// fetched alone to learn the page count, the remaining pages are fetched
// concurrently and concatenated back in ascending page order. Collection
// stops at a short page or at the declared total, whichever comes first, so
// an unreliable declared total cannot loop forever.
func (c *Client) SearchAll(ctx context.Context, params SearchParams) ([]SearchResultItem, error) {
	ctx, span := tracer.Start(ctx, "client:SearchAll")
	defer span.End()

	first, err := c.Search(ctx, params, 1)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("total_pages", first.TotalPages),
		attribute.Int("total_count", first.TotalCount),
	)

	items := first.Items
	if first.TotalPages <= 1 || len(first.Items) < PageSize {
		return items, nil
	}

	pages := make([][]SearchResultItem, first.TotalPages+1)
	var errList []error
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for page := 2; page <= first.TotalPages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()

			result, err := c.Search(ctx, params, page)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errList = append(errList, err)
				return
			}
			pages[page] = result.Items
		}(page)
	}
	wg.Wait()

	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	for page := 2; page <= first.TotalPages; page++ {
		remaining := first.TotalCount - len(items)
		if remaining <= 0 {
			break
		}
		chunk := pages[page]
		if len(chunk) > remaining {
			chunk = chunk[:remaining]
		}
		items = append(items, chunk...)
		if len(chunk) < PageSize {
			break
		}
	}
	return items, nil
}

// Detail fetches the full record of one course for an academic year.
func (c *Client) Detail(ctx context.Context, code string, year int) (CourseDetail, error) {
	ctx, span := tracer.Start(ctx, "client:Detail")
	defer span.End()
	span.SetAttributes(
		attribute.String("code", code),
		attribute.Int("year", year),
	)

	query := url.Values{}
	query.Set("code", code)
	query.Set("year", strconv.Itoa(year))

	doc, err := c.document(ctx, "detail", query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch detail page")
		return CourseDetail{}, err
	}

	switch shape := DetectShape(doc); shape {
	case DetailPage:
	case NotFoundPage:
		err := &NotFoundError{Code: code, Year: year}
		span.SetStatus(codes.Error, err.Error())
		return CourseDetail{}, err
	default:
		err := &ParseError{Shape: shape, Reason: "expected a detail page"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected page shape")
		return CourseDetail{}, err
	}

	raw, err := parseDetailPage(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse detail page")
		return CourseDetail{}, err
	}

	detail, err := mapDetail(raw, year)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to map detail page")
		return CourseDetail{}, err
	}
	return detail, nil
}

// DetailAll runs SearchAll and then fetches the detail record of every hit,
// with bounded concurrency, returning details in search result order.
func (c *Client) DetailAll(ctx context.Context, params SearchParams, year int) ([]CourseDetail, error) {
	ctx, span := tracer.Start(ctx, "client:DetailAll")
	defer span.End()

	items, err := c.SearchAll(ctx, params)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("items", len(items)))

	details := make([]CourseDetail, len(items))
	var errList []error
	var mu sync.Mutex
	sem := make(chan struct{}, detailConcurrency)
	wg := sync.WaitGroup{}

	for i, item := range items {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			detail, err := c.Detail(ctx, code, year)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errList = append(errList, err)
				return
			}
			details[i] = detail
		}(i, item.Code)
	}
	wg.Wait()

	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return details, nil
}

// CommonCodeFor resolves a timetable code to its common course code via a
// keyword search.
func (c *Client) CommonCodeFor(ctx context.Context, code string) (CommonCode, error) {
	result, err := c.Search(ctx, SearchParams{Keyword: code}, 1)
	if err != nil {
		return "", err
	}
	if len(result.Items) == 0 {
		return "", &NotFoundError{Code: code}
	}
	return result.Items[0].CommonCode, nil
}

// CodeFor is the inverse of CommonCodeFor.
func (c *Client) CodeFor(ctx context.Context, commonCode CommonCode) (string, error) {
	result, err := c.Search(ctx, SearchParams{Keyword: string(commonCode)}, 1)
	if err != nil {
		return "", err
	}
	if len(result.Items) == 0 {
		return "", &NotFoundError{Code: string(commonCode)}
	}
	return result.Items[0].Code, nil
}
