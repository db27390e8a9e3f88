package events

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conexion-ipp/backend/internal/errs"
	"github.com/conexion-ipp/backend/internal/patch"
	"github.com/conexion-ipp/backend/internal/storage/postgres"
)

const eventCols = `id, title, description, event_datetime`

func newRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewRepo(&postgres.DB{Pool: mock}), mock
}

func eventRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "title", "description", "event_datetime"})
}

func TestListUpcoming_BoundaryBelongsToUpcoming(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`select `+eventCols+` from events where event_datetime >= $1 order by event_datetime asc offset $2 limit $3;`)).
		WithArgs(now, 0, 100).
		WillReturnRows(eventRows().
			AddRow(int64(1), "At the boundary", (*string)(nil), now).
			AddRow(int64(2), "Later", (*string)(nil), now.Add(24*time.Hour)))

	out, err := r.ListUpcoming(context.Background(), now, 0, 100)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Non-decreasing by datetime.
	assert.False(t, out[1].EventDatetime.Before(out[0].EventDatetime))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPast_StrictlyBeforeNow(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`select `+eventCols+` from events where event_datetime < $1 order by event_datetime desc offset $2 limit $3;`)).
		WithArgs(now, 5, 10).
		WillReturnRows(eventRows().
			AddRow(int64(2), "Recent", (*string)(nil), now.Add(-time.Hour)).
			AddRow(int64(1), "Older", (*string)(nil), now.Add(-48*time.Hour)))

	out, err := r.ListPast(context.Background(), now, 5, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Non-increasing by datetime.
	assert.False(t, out[0].EventDatetime.Before(out[1].EventDatetime))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`select `+eventCols+` from events order by event_datetime asc offset $1 limit $2;`)).
		WithArgs(0, 100).
		WillReturnRows(eventRows().
			AddRow(int64(1), "First", (*string)(nil), base).
			AddRow(int64(2), "Second", (*string)(nil), base.Add(time.Hour)))

	out, err := r.ListAll(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestCreateEvent(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	when := time.Date(2025, 12, 24, 19, 0, 0, 0, time.UTC)
	desc := "Servicio de Nochebuena"
	mock.ExpectQuery(regexp.QuoteMeta(`insert into events (title, description, event_datetime) values ($1, $2, $3) returning `+eventCols+`;`)).
		WithArgs("Nochebuena", &desc, when).
		WillReturnRows(eventRows().AddRow(int64(1), "Nochebuena", &desc, when))

	e, err := r.Create(context.Background(), CreateInput{Title: "Nochebuena", Description: &desc, EventDatetime: when})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	require.NotNil(t, e.Description)
	assert.Equal(t, desc, *e.Description)
}

func TestUpdateEvent_PatchesOnlyPresentFields(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	when := time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`update events set event_datetime = $1 where id = $2 returning `+eventCols+`;`)).
		WithArgs(when, int64(3)).
		WillReturnRows(eventRows().AddRow(int64(3), "Nochebuena", (*string)(nil), when))

	e, err := r.Update(context.Background(), 3, UpdateInput{EventDatetime: &when})
	require.NoError(t, err)
	assert.True(t, e.EventDatetime.Equal(when))
}

func TestUpdateEvent_ExplicitNullClearsDescription(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	when := time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`update events set description = $1 where id = $2 returning `+eventCols+`;`)).
		WithArgs((*string)(nil), int64(3)).
		WillReturnRows(eventRows().AddRow(int64(3), "Nochebuena", (*string)(nil), when))

	e, err := r.Update(context.Background(), 3, UpdateInput{Description: patch.Field[string]{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, e.Description)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEvent_NotFound(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	title := "X"
	mock.ExpectQuery(regexp.QuoteMeta(`update events set title = $1 where id = $2 returning `+eventCols+`;`)).
		WithArgs("X", int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Update(context.Background(), 99, UpdateInput{Title: &title})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	r, mock := newRepo(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`delete from events where id = $1 returning `+eventCols+`;`)).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Delete(context.Background(), 99)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
