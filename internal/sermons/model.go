package sermons

import "github.com/conexion-ipp/backend/internal/patch"

// Sermon is a media record for a preached sermon. It has no relationships to
// other entities.
type Sermon struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Pastor     string  `json:"pastor"`
	BibleVerse string  `json:"bible_verse"`
	SermonDate Date    `json:"sermon_date"`
	ImageURL   string  `json:"image_url"`
	VideoURL   *string `json:"video_url"`
}

// CreateInput holds the validated fields for a new sermon. VideoURL is the
// only optional field.
type CreateInput struct {
	Title      string  `json:"title"`
	Pastor     string  `json:"pastor"`
	BibleVerse string  `json:"bible_verse"`
	SermonDate Date    `json:"sermon_date"`
	ImageURL   string  `json:"image_url"`
	VideoURL   *string `json:"video_url"`
}

// UpdateInput is a field-level patch; absent fields are left untouched.
// VideoURL is nullable, so it tracks presence separately: an explicit null
// clears the column.
type UpdateInput struct {
	Title      *string             `json:"title"`
	Pastor     *string             `json:"pastor"`
	BibleVerse *string             `json:"bible_verse"`
	SermonDate *Date               `json:"sermon_date"`
	ImageURL   *string             `json:"image_url"`
	VideoURL   patch.Field[string] `json:"video_url"`
}
