package sermons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/conexion-ipp/backend/internal/errs"
	"github.com/conexion-ipp/backend/internal/storage/postgres"
)

type Repo struct {
	db *postgres.DB
}

func NewRepo(db *postgres.DB) *Repo {
	return &Repo{db: db}
}

const sermonColumns = `id, title, pastor, bible_verse, sermon_date, image_url, video_url`

func scanSermon(row pgx.Row) (*Sermon, error) {
	var s Sermon
	var date time.Time
	err := row.Scan(&s.ID, &s.Title, &s.Pastor, &s.BibleVerse, &date, &s.ImageURL, &s.VideoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.SermonDate = Date{date}
	return &s, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Sermon, error) {
	const q = `
select ` + sermonColumns + `
from sermons
where id = $1;
`
	return scanSermon(r.db.Session(ctx).QueryRow(ctx, q, id))
}

// Latest returns the sermon with the maximum sermon date.
func (r *Repo) Latest(ctx context.Context) (*Sermon, error) {
	const q = `
select ` + sermonColumns + `
from sermons
order by sermon_date desc
limit 1;
`
	return scanSermon(r.db.Session(ctx).QueryRow(ctx, q))
}

// List returns sermons ordered from most recent to oldest.
func (r *Repo) List(ctx context.Context, skip, limit int) ([]Sermon, error) {
	const q = `
select ` + sermonColumns + `
from sermons
order by sermon_date desc
offset $1 limit $2;
`
	rows, err := r.db.Session(ctx).Query(ctx, q, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list sermons: %w", err)
	}
	defer rows.Close()

	out := make([]Sermon, 0, 16)
	for rows.Next() {
		var s Sermon
		var date time.Time
		if err := rows.Scan(&s.ID, &s.Title, &s.Pastor, &s.BibleVerse, &date, &s.ImageURL, &s.VideoURL); err != nil {
			return nil, err
		}
		s.SermonDate = Date{date}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Sermon, error) {
	const q = `
insert into sermons (title, pastor, bible_verse, sermon_date, image_url, video_url)
values ($1, $2, $3, $4, $5, $6)
returning ` + sermonColumns + `;
`
	return scanSermon(r.db.Session(ctx).QueryRow(ctx, q,
		in.Title, in.Pastor, in.BibleVerse, in.SermonDate.Time, in.ImageURL, in.VideoURL))
}

// Update applies only the fields present in the patch and returns the full
// updated record. An empty patch reads the row back unchanged.
func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (*Sermon, error) {
	set := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Pastor != nil {
		add("pastor", *in.Pastor)
	}
	if in.BibleVerse != nil {
		add("bible_verse", *in.BibleVerse)
	}
	if in.SermonDate != nil {
		add("sermon_date", in.SermonDate.Time)
	}
	if in.ImageURL != nil {
		add("image_url", *in.ImageURL)
	}
	if in.VideoURL.Set {
		add("video_url", in.VideoURL.Value)
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf(`
update sermons
set %s
where id = $%d
returning `+sermonColumns+`;
`, strings.Join(set, ", "), len(args))

	return scanSermon(r.db.Session(ctx).QueryRow(ctx, q, args...))
}

// Delete removes the row and returns the pre-deletion snapshot.
func (r *Repo) Delete(ctx context.Context, id int64) (*Sermon, error) {
	const q = `
delete from sermons
where id = $1
returning ` + sermonColumns + `;
`
	return scanSermon(r.db.Session(ctx).QueryRow(ctx, q, id))
}
