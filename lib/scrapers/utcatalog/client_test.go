package utcatalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"utcatalog-backend/lib/htmlutil"
	"utcatalog-backend/lib/telemetry"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestClient(t testing.TB, handler http.Handler, cache *badger.DB) *Client {
	cleanup := telemetry.SetupForTesting(t, "test:utcatalog")
	t.Cleanup(cleanup)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: server.URL,
		Cache:   cache,
		// tests hammer a local server, politeness would just slow them down
		MinInterval: -1,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func newTestBadger(t testing.TB) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func serveFixture(t testing.TB, name string) http.HandlerFunc {
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}
}

func TestSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/result", serveFixture(t, "search.html"))
	client := newTestClient(t, mux, nil)

	result, err := client.Search(context.Background(), SearchParams{Keyword: "量子"}, 1)
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalCount)
	require.Equal(t, 2, result.CurrentCount)
	require.Equal(t, 1, result.TotalPages)
	require.Equal(t, 1, result.FirstIndex)
	require.Equal(t, 2, result.LastIndex)
	require.Len(t, result.Items, 2)

	first := result.Items[0]
	require.Equal(t, "30001", first.Code)
	require.Equal(t, CommonCode("FSC-MA2301L1"), first.CommonCode)
	require.Equal(t, "プログラミング入門", first.Title)
	require.Equal(t, []Semester{SemesterS1, SemesterS2}, first.Semesters)
	require.Equal(t, []WeekdayPeriod{{Mon, 3}}, first.Periods)

	require.Equal(t, []WeekdayPeriod{{Mon, 3}, {Thu, 3}}, result.Items[1].Periods)
}

func TestSearchNoMatches(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/result", serveFixture(t, "notfound.html"))
	client := newTestClient(t, mux, nil)

	result, err := client.Search(context.Background(), SearchParams{Keyword: "zzz"}, 1)
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Equal(t, 0, result.TotalCount)
}

func TestSearchUnknownShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/result", serveFixture(t, "unknown.html"))
	client := newTestClient(t, mux, nil)

	_, err := client.Search(context.Background(), SearchParams{}, 1)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSearchHTTPStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/result", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	client := newTestClient(t, mux, nil)

	_, err := client.Search(context.Background(), SearchParams{}, 1)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, FetchHttpStatus, fetchErr.Kind)
	require.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
}

// searchPageHTML renders a listing page the way the catalogue does: a count
// banner plus one card per course, PageSize cards to a full page.
func searchPageHTML(page, total int) string {
	first := (page-1)*PageSize + 1
	last := page * PageSize
	if last > total {
		last = total
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<html><body>
<div class="catalog-total-search-result">検索結果 %d - %d 件 / %d 件</div>
<div class="catalog-search-result-card-container">`, first, last, total)
	for i := first; i <= last; i++ {
		fmt.Fprintf(&b, `
<div class="catalog-search-result-card">
  <div class="catalog-search-result-table-row">
    <div class="code-cell">コード</div>
  </div>
  <div class="catalog-search-result-table-row">
    <div class="code-cell"><div>3%04d</div><div>FSC-MA2301L1</div></div>
    <div class="name-cell">科目%d</div>
    <div class="lecturer-cell">教員</div>
    <div class="semester-cell"><div class="catalog-semester-icon">S1</div></div>
    <div class="period-cell">月曜3限</div>
  </div>
</div>`, i, i)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func TestSearchAll(t *testing.T) {
	const total = 25

	var requests atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/result", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		fmt.Fprint(w, searchPageHTML(page, total))
	})
	client := newTestClient(t, mux, nil)

	items, err := client.SearchAll(context.Background(), SearchParams{})
	require.NoError(t, err)

	require.Len(t, items, total)
	// ascending page order survives the concurrent fetches
	for i, item := range items {
		require.Equal(t, fmt.Sprintf("3%04d", i+1), item.Code)
	}
	require.Equal(t, int64(3), requests.Load())
}

func TestSearchAllSinglePage(t *testing.T) {
	var requests atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/result", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, searchPageHTML(1, 4))
	})
	client := newTestClient(t, mux, nil)

	items, err := client.SearchAll(context.Background(), SearchParams{})
	require.NoError(t, err)
	require.Len(t, items, 4)
	require.Equal(t, int64(1), requests.Load())
}

func TestDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/detail", serveFixture(t, "detail.html"))
	client := newTestClient(t, mux, nil)

	detail, err := client.Detail(context.Background(), "30001", 2024)
	require.NoError(t, err)

	expected := CourseDetail{
		Code:       "30001",
		CommonCode: "FSC-MA2301L1",
		Year:       2024,
		Title:      "量子力学I",
		Lecturer:   "山田 太郎",
		Semesters:  []Semester{SemesterS1},
		Periods:    []WeekdayPeriod{{Mon, 3}},
		Credits:    2,
		Language:   "日本語",
		Faculty:    FacultyScience,
		Aim:        "量子力学の基礎概念と計算手法を習得する。",
		Schedule:   "第1回 序論\n第2回 波動関数\n第3回 シュレディンガー方程式",
		Methods:    "講義を中心に演習を交えて進める。\n資料は講義資料を参照。",
		Evaluation: "期末試験とレポートによる。",
		Textbook:   "特に指定しない。",
		Links:      []htmlutil.Anchor{{Name: "講義資料", Href: "/files/qm1.pdf"}},
	}

	if diff := cmp.Diff(expected, detail); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestDetailNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/detail", serveFixture(t, "notfound.html"))
	client := newTestClient(t, mux, nil)

	_, err := client.Detail(context.Background(), "99999", 2024)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "99999", notFound.Code)
	require.Equal(t, 2024, notFound.Year)
}

func TestDetailCached(t *testing.T) {
	var requests atomic.Int64
	mux := http.NewServeMux()
	fixture := serveFixture(t, "detail.html")
	mux.HandleFunc("/detail", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fixture(w, r)
	})
	client := newTestClient(t, mux, newTestBadger(t))

	first, err := client.Detail(context.Background(), "30001", 2024)
	require.NoError(t, err)
	second, err := client.Detail(context.Background(), "30001", 2024)
	require.NoError(t, err)

	// the second call is served from the cache, byte for byte
	require.Equal(t, int64(1), requests.Load())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached detail mismatch (-first +second):\n%s", diff)
	}
}

func TestDetailConcurrent(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/detail", serveFixture(t, "detail.html"))
	client := newTestClient(t, mux, newTestBadger(t))

	wg := sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf("3%04d", i)
			detail, err := client.Detail(context.Background(), code, 2024)
			require.NoError(t, err)
			require.Equal(t, "量子力学I", detail.Title)
		}(i)
	}
	wg.Wait()
}

func TestDetailAll(t *testing.T) {
	const total = 12

	mux := http.NewServeMux()
	mux.HandleFunc("/result", func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		fmt.Fprint(w, searchPageHTML(page, total))
	})
	mux.Handle("/detail", serveFixture(t, "detail.html"))
	client := newTestClient(t, mux, nil)

	details, err := client.DetailAll(context.Background(), SearchParams{}, 2024)
	require.NoError(t, err)

	require.Len(t, details, total)
	for _, detail := range details {
		require.Equal(t, "量子力学I", detail.Title)
		require.Equal(t, 2024, detail.Year)
	}
}

func TestCommonCodeFor(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/result", serveFixture(t, "search.html"))
	client := newTestClient(t, mux, nil)

	commonCode, err := client.CommonCodeFor(context.Background(), "30001")
	require.NoError(t, err)
	require.Equal(t, CommonCode("FSC-MA2301L1"), commonCode)

	code, err := client.CodeFor(context.Background(), "FSC-MA2301L1")
	require.NoError(t, err)
	require.Equal(t, "30001", code)
}

func TestCommonCodeForNoMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/result", serveFixture(t, "notfound.html"))
	client := newTestClient(t, mux, nil)

	_, err := client.CommonCodeFor(context.Background(), "00000")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
