package coursestore

import (
	"context"
	"testing"

	"utcatalog-backend/lib/htmlutil"
	"utcatalog-backend/lib/scrapers/utcatalog"
	"utcatalog-backend/lib/sqliteutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestStore(t testing.TB) Store {
	db, err := sqliteutil.OpenDB(Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func sampleDetail(code string, year int) utcatalog.CourseDetail {
	return utcatalog.CourseDetail{
		Code:                 code,
		CommonCode:           "FSC-MA2301L1",
		Year:                 year,
		Title:                "量子力学I",
		Lecturer:             "山田 太郎",
		Semesters:            []utcatalog.Semester{utcatalog.SemesterS1},
		Periods:              []utcatalog.WeekdayPeriod{{Weekday: utcatalog.Mon, Period: 3}},
		Credits:              2,
		OtherFacultyEligible: true,
		Language:             "日本語",
		Faculty:              utcatalog.FacultyScience,
		Aim:                  "量子力学の基礎概念と計算手法を習得する。",
		Schedule:             "第1回 序論",
		Evaluation:           "期末試験とレポートによる。",
		Links:                []htmlutil.Anchor{{Name: "講義資料", Href: "/files/qm1.pdf"}},
	}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	detail := sampleDetail("30001", 2024)
	require.NoError(t, store.Put(ctx, detail))

	got, err := store.Get(ctx, "30001", 2024)
	require.NoError(t, err)
	if diff := cmp.Diff(detail, got); diff != "" {
		t.Errorf("stored course mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "99999", 2024)
	require.ErrorIs(t, err, ErrNotExist)
}

func TestPutUpserts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	detail := sampleDetail("30001", 2024)
	require.NoError(t, store.Put(ctx, detail))

	detail.Title = "量子力学I（改訂）"
	detail.Credits = utcatalog.CreditsUnknown
	require.NoError(t, store.Put(ctx, detail))

	got, err := store.Get(ctx, "30001", 2024)
	require.NoError(t, err)
	require.Equal(t, "量子力学I（改訂）", got.Title)
	require.Equal(t, utcatalog.CreditsUnknown, got.Credits)
}

func TestPutAllAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	details := []utcatalog.CourseDetail{
		sampleDetail("30002", 2024),
		sampleDetail("30001", 2024),
		sampleDetail("30003", 2023),
	}
	require.NoError(t, store.PutAll(ctx, details))

	listed, err := store.List(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// listing orders by code regardless of insertion order
	require.Equal(t, "30001", listed[0].Code)
	require.Equal(t, "30002", listed[1].Code)

	listed, err = store.List(ctx, 2023)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "30003", listed[0].Code)
}

func TestYearsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, sampleDetail("30001", 2023)))
	require.NoError(t, store.Put(ctx, sampleDetail("30001", 2024)))

	got, err := store.Get(ctx, "30001", 2023)
	require.NoError(t, err)
	require.Equal(t, 2023, got.Year)
}
