// Package coursestore persists fetched course records so repeated catalogue
// dumps do not start from scratch. Records upsert on (code, year).
package coursestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"utcatalog-backend/lib/htmlutil"
	"utcatalog-backend/lib/scrapers/utcatalog"
	"utcatalog-backend/lib/timezone"

	_ "embed"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var ErrNotExist = errors.New("coursestore: no such course")

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s Store) Put(ctx context.Context, detail utcatalog.CourseDetail) error {
	return put(ctx, s.db, detail)
}

func put(ctx context.Context, ex execer, detail utcatalog.CourseDetail) error {
	semesters, err := json.Marshal(detail.Semesters)
	if err != nil {
		return err
	}
	periods, err := json.Marshal(detail.Periods)
	if err != nil {
		return err
	}
	links, err := json.Marshal(detail.Links)
	if err != nil {
		return err
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO course (
			code, year, common_code, title, lecturer, semesters, periods,
			credits, other_faculty_eligible, language, practical_experience,
			faculty, aim, schedule, methods, evaluation, textbook, reference,
			notes, links, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (code, year) DO UPDATE SET
			common_code = excluded.common_code,
			title = excluded.title,
			lecturer = excluded.lecturer,
			semesters = excluded.semesters,
			periods = excluded.periods,
			credits = excluded.credits,
			other_faculty_eligible = excluded.other_faculty_eligible,
			language = excluded.language,
			practical_experience = excluded.practical_experience,
			faculty = excluded.faculty,
			aim = excluded.aim,
			schedule = excluded.schedule,
			methods = excluded.methods,
			evaluation = excluded.evaluation,
			textbook = excluded.textbook,
			reference = excluded.reference,
			notes = excluded.notes,
			links = excluded.links,
			fetched_at = excluded.fetched_at
	`,
		detail.Code, detail.Year, string(detail.CommonCode), detail.Title,
		detail.Lecturer, string(semesters), string(periods), detail.Credits,
		detail.OtherFacultyEligible, detail.Language,
		detail.PracticalExperience, int(detail.Faculty), detail.Aim,
		detail.Schedule, detail.Methods, detail.Evaluation, detail.Textbook,
		detail.Reference, detail.Notes, string(links),
		timezone.Now().Unix(),
	)
	return err
}

// PutAll writes a batch of records in one transaction.
func (s Store) PutAll(ctx context.Context, details []utcatalog.CourseDetail) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range details {
		err := put(ctx, tx, d)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

const selectColumns = `
	code, year, common_code, title, lecturer, semesters, periods, credits,
	other_faculty_eligible, language, practical_experience, faculty, aim,
	schedule, methods, evaluation, textbook, reference, notes, links
`

func scanCourse(row interface{ Scan(...any) error }) (utcatalog.CourseDetail, error) {
	var d utcatalog.CourseDetail
	var commonCode string
	var faculty int
	var semesters, periods, links string

	err := row.Scan(
		&d.Code, &d.Year, &commonCode, &d.Title, &d.Lecturer, &semesters,
		&periods, &d.Credits, &d.OtherFacultyEligible, &d.Language,
		&d.PracticalExperience, &faculty, &d.Aim, &d.Schedule, &d.Methods,
		&d.Evaluation, &d.Textbook, &d.Reference, &d.Notes, &links,
	)
	if err != nil {
		return utcatalog.CourseDetail{}, err
	}

	d.CommonCode = utcatalog.CommonCode(commonCode)
	d.Faculty = utcatalog.Faculty(faculty)
	err = json.Unmarshal([]byte(semesters), &d.Semesters)
	if err != nil {
		return utcatalog.CourseDetail{}, err
	}
	err = json.Unmarshal([]byte(periods), &d.Periods)
	if err != nil {
		return utcatalog.CourseDetail{}, err
	}
	var anchors []htmlutil.Anchor
	err = json.Unmarshal([]byte(links), &anchors)
	if err != nil {
		return utcatalog.CourseDetail{}, err
	}
	d.Links = anchors
	return d, nil
}

func (s Store) Get(ctx context.Context, code string, year int) (utcatalog.CourseDetail, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM course WHERE code = ? AND year = ?`,
		code, year,
	)
	detail, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return utcatalog.CourseDetail{}, ErrNotExist
	}
	return detail, err
}

func (s Store) List(ctx context.Context, year int) ([]utcatalog.CourseDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM course WHERE year = ? ORDER BY code`,
		year,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []utcatalog.CourseDetail
	for rows.Next() {
		detail, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, rows.Err()
}
