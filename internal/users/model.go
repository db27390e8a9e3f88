package users

// User identifies an app user. The Firebase UID is the join key to the token
// issuer; the admin flag is the single authorization bit and is only ever
// changed out-of-band.
type User struct {
	ID          int64   `json:"id"`
	FirebaseUID string  `json:"firebase_uid"`
	Email       string  `json:"email"`
	FullName    *string `json:"full_name"`
	IsAdmin     bool    `json:"is_admin"`
}

// SyncInput is the verified identity data used to provision a user.
type SyncInput struct {
	FirebaseUID string
	Email       string
	FullName    *string
}
