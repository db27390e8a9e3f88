package users

import (
	"context"
	"errors"
	"fmt"

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

const userColumns = `id, firebase_uid, email, full_name, is_admin`

// GetByFirebaseUID looks up the local user for a verified identity.
// Returns errs.ErrNotProvisioned when no row exists.
func (r *Repo) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	const q = `
select ` + userColumns + `
from users
where firebase_uid = $1;
`
	var u User
	err := r.db.Session(ctx).QueryRow(ctx, q, firebaseUID).
		Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.FullName, &u.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotProvisioned
	}
	if err != nil {
		return nil, fmt.Errorf("get user by firebase uid: %w", err)
	}
	return &u, nil
}

// Create inserts a new user. The first row ever inserted into an empty table
// gets the admin flag; deciding it inside the insert keeps the rule atomic
// under concurrent first syncs.
func (r *Repo) Create(ctx context.Context, in SyncInput) (*User, error) {
	const q = `
insert into users (firebase_uid, email, full_name, is_admin)
values ($1, $2, $3, (select count(*) = 0 from users))
returning ` + userColumns + `;
`
	var u User
	err := r.db.Session(ctx).QueryRow(ctx, q, in.FirebaseUID, in.Email, in.FullName).
		Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.FullName, &u.IsAdmin)
	if postgres.IsUniqueViolation(err) {
		return nil, errs.ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

// Sync returns the existing user for the identity, creating one on first
// sight. It never updates email or name on repeat calls. The created flag
// reports whether a row was written.
func (r *Repo) Sync(ctx context.Context, in SyncInput) (*User, bool, error) {
	u, err := r.GetByFirebaseUID(ctx, in.FirebaseUID)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, errs.ErrNotProvisioned) {
		return nil, false, err
	}

	u, err = r.Create(ctx, in)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, errs.ErrAlreadyExists) {
		return nil, false, err
	}

	// Lost a race against a concurrent sync for the same uid, or the email is
	// taken by another uid. The re-read distinguishes the two.
	u, rerr := r.GetByFirebaseUID(ctx, in.FirebaseUID)
	if rerr == nil {
		return u, false, nil
	}
	return nil, false, errs.ErrAlreadyExists
}
