package events

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

const eventColumns = `id, title, description, event_datetime`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventDatetime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Event, error) {
	const q = `
select ` + eventColumns + `
from events
where id = $1;
`
	return scanEvent(r.db.Session(ctx).QueryRow(ctx, q, id))
}

// ListAll returns every event, past and future, soonest first.
func (r *Repo) ListAll(ctx context.Context, skip, limit int) ([]Event, error) {
	const q = `
select ` + eventColumns + `
from events
order by event_datetime asc
offset $1 limit $2;
`
	return r.queryList(ctx, q, skip, limit)
}

// ListUpcoming returns events at or after now, soonest first. The boundary at
// exact equality belongs to upcoming.
func (r *Repo) ListUpcoming(ctx context.Context, now time.Time, skip, limit int) ([]Event, error) {
	const q = `
select ` + eventColumns + `
from events
where event_datetime >= $1
order by event_datetime asc
offset $2 limit $3;
`
	return r.queryList(ctx, q, now, skip, limit)
}

// ListPast returns events strictly before now, most recent first.
func (r *Repo) ListPast(ctx context.Context, now time.Time, skip, limit int) ([]Event, error) {
	const q = `
select ` + eventColumns + `
from events
where event_datetime < $1
order by event_datetime desc
offset $2 limit $3;
`
	return r.queryList(ctx, q, now, skip, limit)
}

func (r *Repo) queryList(ctx context.Context, q string, args ...any) ([]Event, error) {
	rows, err := r.db.Session(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := make([]Event, 0, 16)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.EventDatetime); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Event, error) {
	const q = `
insert into events (title, description, event_datetime)
values ($1, $2, $3)
returning ` + eventColumns + `;
`
	return scanEvent(r.db.Session(ctx).QueryRow(ctx, q, in.Title, in.Description, in.EventDatetime))
}

// Update applies only the fields present in the patch and returns the full
// updated record. An empty patch reads the row back unchanged.
func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (*Event, error) {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description.Set {
		add("description", in.Description.Value)
	}
	if in.EventDatetime != nil {
		add("event_datetime", *in.EventDatetime)
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf(`
update events
set %s
where id = $%d
returning `+eventColumns+`;
`, strings.Join(set, ", "), len(args))

	return scanEvent(r.db.Session(ctx).QueryRow(ctx, q, args...))
}

// Delete removes the row and returns the pre-deletion snapshot.
func (r *Repo) Delete(ctx context.Context, id int64) (*Event, error) {
	const q = `
delete from events
where id = $1
returning ` + eventColumns + `;
`
	return scanEvent(r.db.Session(ctx).QueryRow(ctx, q, id))
}
