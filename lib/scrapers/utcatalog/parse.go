package utcatalog

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"

	"utcatalog-backend/lib/htmlutil"
	"utcatalog-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// PageShape is the structural category of a catalogue response, probed
// before any field extraction so we never speculatively read fields off the
// wrong layout.
type PageShape int

const (
	UnknownPage PageShape = iota
	SearchPage
	DetailPage
	NotFoundPage
)

func (s PageShape) String() string {
	switch s {
	case SearchPage:
		return "search"
	case DetailPage:
		return "detail"
	case NotFoundPage:
		return "not found"
	}
	return "unknown"
}

// DetectShape probes for the marker elements of each known layout. Detail
// markers win over search markers, some detail pages embed search-like
// widgets in their sidebar.
func DetectShape(doc *goquery.Document) PageShape {
	if doc.Find("div.catalog-page-detail-card").Length() > 0 ||
		doc.Find("div.catalog-page-detail-lecture-aim").Length() > 0 {
		return DetailPage
	}
	if doc.Find("div.catalog-total-search-result").Length() > 0 ||
		doc.Find("div.catalog-search-result-card-container").Length() > 0 {
		return SearchPage
	}
	if doc.Find("div.catalog-page-error").Length() > 0 {
		return NotFoundPage
	}
	return UnknownPage
}

// rawSearchRow is one search card before any normalization, every field is
// the trimmed cell text.
type rawSearchRow struct {
	Code       string
	CommonCode string
	Title      string
	Lecturer   string
	Semesters  []string
	Period     string
	Aim        string
}

// rawSearchPage is the structural content of one listing page.
type rawSearchPage struct {
	FirstIndex int
	LastIndex  int
	TotalCount int
	Rows       []rawSearchRow
}

var digitsRegex = regexp.MustCompile(`\d+`)

// parseSearchPage extracts the pagination banner and the result cards. A
// listing with zero cards is valid (an over-constrained query), a missing
// banner is not.
func parseSearchPage(ctx context.Context, doc *goquery.Document) (rawSearchPage, error) {
	banner := doc.Find("div.catalog-total-search-result")
	if banner.Length() == 0 {
		return rawSearchPage{}, &ParseError{
			Shape:  SearchPage,
			Reason: "result count banner is absent",
		}
	}

	counts := digitsRegex.FindAllString(textutil.CollapseText(banner.Text()), -1)
	if len(counts) < 3 {
		return rawSearchPage{}, &ParseError{
			Shape:  SearchPage,
			Reason: "result count banner holds fewer than three numbers",
		}
	}
	// errors are impossible after the regex match
	first, _ := strconv.Atoi(counts[0])
	last, _ := strconv.Atoi(counts[1])
	total, _ := strconv.Atoi(counts[2])

	page := rawSearchPage{
		FirstIndex: first,
		LastIndex:  last,
		TotalCount: total,
	}

	cards := doc.Find("div.catalog-search-result-card-container div.catalog-search-result-card")
	cards.Each(func(i int, card *goquery.Selection) {
		row, ok := parseSearchCard(ctx, i, card)
		if !ok {
			return
		}
		page.Rows = append(page.Rows, row)
	})

	return page, nil
}

// parseSearchCard reads one result card. Cards with missing cells are
// reported and skipped rather than failing the whole page.
func parseSearchCard(ctx context.Context, index int, card *goquery.Selection) (rawSearchRow, bool) {
	// the first table row is the column header, the second holds the values
	cells := card.Find("div.catalog-search-result-table-row").Eq(1)
	if cells.Length() == 0 {
		slog.WarnContext(ctx, "skipping search card without a value row", "card", index)
		return rawSearchRow{}, false
	}

	codeCell := cells.Find("div.code-cell")
	if codeCell.Length() == 0 {
		slog.WarnContext(ctx, "skipping search card without a code cell", "card", index)
		return rawSearchRow{}, false
	}
	codes := codeCell.Children()

	row := rawSearchRow{
		Code:       textutil.CollapseText(codes.Eq(0).Text()),
		CommonCode: textutil.CollapseText(codes.Eq(1).Text()),
		Title:      textutil.CollapseText(cells.Find("div.name-cell").Text()),
		Lecturer:   textutil.CollapseText(cells.Find("div.lecturer-cell").Text()),
		Period:     textutil.CollapseText(cells.Find("div.period-cell").Text()),
		Aim:        textutil.TrimDescription(card.Find("div.catalog-search-result-card-body-text").Text()),
	}
	cells.Find("div.semester-cell .catalog-semester-icon").Each(func(_ int, icon *goquery.Selection) {
		row.Semesters = append(row.Semesters, textutil.CollapseText(icon.Text()))
	})

	return row, true
}

// rawDetail is the detail page before normalization. Cards maps the syllabus
// card headers (授業計画, 成績評価方法, ...) to their body text.
type rawDetail struct {
	Code                string
	CommonCode          string
	Title               string
	Lecturer            string
	Semesters           []string
	Period              string
	Credits             string
	OtherFaculty        string
	Language            string
	PracticalExperience string
	Faculty             string
	Aim                 string
	Cards               map[string]string
	Links               []htmlutil.Anchor
}

// parseDetailPage extracts the summary table, the attribute cells and the
// syllabus cards of a detail page.
func parseDetailPage(ctx context.Context, doc *goquery.Document) (rawDetail, error) {
	// the first catalog-row is the column header, the second holds values
	cells := doc.Find("div.catalog-row").Eq(1)
	if cells.Length() == 0 {
		return rawDetail{}, &ParseError{
			Shape:  DetailPage,
			Reason: "summary row is absent",
		}
	}

	codeCell := cells.Find("div.code-cell")
	if codeCell.Length() == 0 {
		return rawDetail{}, &ParseError{
			Shape:  DetailPage,
			Reason: "code cell is absent",
		}
	}
	codes := codeCell.Children()

	raw := rawDetail{
		Code:       textutil.CollapseText(codes.Eq(0).Text()),
		CommonCode: textutil.CollapseText(codes.Eq(1).Text()),
		Title:      textutil.CollapseText(cells.Find("div.name-cell").Text()),
		Lecturer:   textutil.CollapseText(cells.Find("div.lecturer-cell").Text()),
		Period:     textutil.CollapseText(cells.Find("div.period-cell").Text()),
		Aim:        textutil.CollapseText(doc.Find("div.catalog-page-detail-lecture-aim").Text()),
		Cards:      map[string]string{},
	}
	cells.Find(".catalog-semester-icon").Each(func(_ int, icon *goquery.Selection) {
		raw.Semesters = append(raw.Semesters, textutil.CollapseText(icon.Text()))
	})

	// the attribute strip renders as two groups of three cells each
	td1 := doc.Find("div.td1-cell")
	raw.Language = textutil.CollapseText(td1.Eq(0).Text())
	raw.PracticalExperience = textutil.CollapseText(td1.Eq(1).Text())
	raw.Faculty = textutil.CollapseText(td1.Eq(2).Text())

	td2 := doc.Find("div.td2-cell")
	raw.Credits = textutil.CollapseText(td2.Eq(0).Text())
	raw.OtherFaculty = textutil.CollapseText(td2.Eq(1).Text())

	doc.Find("div.catalog-page-detail-card").Each(func(i int, card *goquery.Selection) {
		header := card.Find("div.catalog-page-detail-card-header")
		body := card.Find("div.catalog-page-detail-card-body-pre")
		if header.Length() == 0 || body.Length() == 0 {
			slog.WarnContext(ctx, "skipping malformed detail card", "card", i)
			return
		}
		title := textutil.CollapseText(header.Text())
		raw.Cards[title] = textutil.TrimDescription(body.Text())
		raw.Links = append(raw.Links, htmlutil.GetAnchors(body.Find("a"), doc)...)
	})

	return raw, nil
}
