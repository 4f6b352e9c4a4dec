package utcatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func loadDocument(t testing.TB, name string) *goquery.Document {
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

func TestDetectShape(t *testing.T) {
	cases := []struct {
		fixture  string
		expected PageShape
	}{
		{"search.html", SearchPage},
		{"empty.html", SearchPage},
		{"detail.html", DetailPage},
		{"notfound.html", NotFoundPage},
		{"unknown.html", UnknownPage},
	}

	for _, test := range cases {
		doc := loadDocument(t, test.fixture)
		require.Equal(t, test.expected, DetectShape(doc), test.fixture)
	}
}

func TestParseSearchPage(t *testing.T) {
	doc := loadDocument(t, "search.html")

	page, err := parseSearchPage(context.Background(), doc)
	require.NoError(t, err)

	require.Equal(t, 1, page.FirstIndex)
	require.Equal(t, 2, page.LastIndex)
	require.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Rows, 2)

	require.Equal(t, rawSearchRow{
		Code:       "30001",
		CommonCode: "FSC-MA2301L1",
		Title:      "プログラミング入門",
		Lecturer:   "山田 太郎",
		Semesters:  []string{"S1", "S2"},
		Period:     "月曜3限",
		Aim:        "Pythonの基礎とプログラミングの考え方を学ぶ。",
	}, page.Rows[0])

	require.Equal(t, "30002", page.Rows[1].Code)
	require.Equal(t, "月曜3限、木曜3限", page.Rows[1].Period)
	require.Equal(t, []string{"A1"}, page.Rows[1].Semesters)
}

func TestParseSearchPageEmpty(t *testing.T) {
	doc := loadDocument(t, "empty.html")

	page, err := parseSearchPage(context.Background(), doc)
	require.NoError(t, err)

	require.Equal(t, 0, page.TotalCount)
	require.Empty(t, page.Rows)
}

func TestParseSearchPageMissingBanner(t *testing.T) {
	doc := loadDocument(t, "unknown.html")

	_, err := parseSearchPage(context.Background(), doc)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, SearchPage, parseErr.Shape)
}

func TestParseDetailPage(t *testing.T) {
	doc := loadDocument(t, "detail.html")

	raw, err := parseDetailPage(context.Background(), doc)
	require.NoError(t, err)

	require.Equal(t, "30001", raw.Code)
	require.Equal(t, "FSC-MA2301L1", raw.CommonCode)
	require.Equal(t, "量子力学I", raw.Title)
	require.Equal(t, "山田 太郎", raw.Lecturer)
	require.Equal(t, []string{"S1"}, raw.Semesters)
	require.Equal(t, "月曜3限", raw.Period)
	require.Equal(t, "日本語", raw.Language)
	require.Equal(t, "NO", raw.PracticalExperience)
	require.Equal(t, "理学部", raw.Faculty)
	require.Equal(t, "2", raw.Credits)
	require.Equal(t, "不可", raw.OtherFaculty)
	require.Equal(t, "量子力学の基礎概念と計算手法を習得する。", raw.Aim)

	require.Contains(t, raw.Cards["授業計画"], "第1回 序論")
	require.Contains(t, raw.Cards["授業の方法"], "講義を中心に演習を交えて進める。")
	require.Equal(t, "期末試験とレポートによる。", raw.Cards["成績評価方法"])
	require.Equal(t, "特に指定しない。", raw.Cards["教科書"])

	require.Len(t, raw.Links, 1)
	require.Equal(t, "講義資料", raw.Links[0].Name)
	require.Equal(t, "/files/qm1.pdf", raw.Links[0].Href)
}

func TestParseDetailPageMissingSummary(t *testing.T) {
	doc := loadDocument(t, "unknown.html")

	_, err := parseDetailPage(context.Background(), doc)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, DetailPage, parseErr.Shape)
}
