package timeline

import (
	"time"

	"tlstory/internal/domain/schema"
)

// Timeline scales understood by the rendering widget.
const (
	ScaleHuman        = "human"
	ScaleCosmological = "cosmological"
)

// Scales lists every accepted scale value.
var Scales = []string{ScaleHuman, ScaleCosmological}

// Config is the timeline configuration singleton.
type Config struct {
	ID            int64     `json:"id"`
	TitleHeadline *string   `json:"title_headline"`
	TitleText     *string   `json:"title_text"`
	Scale         *string   `json:"scale"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ConfigFromRow maps a decoded timeline_config row.
func ConfigFromRow(r schema.Row) Config {
	return Config{
		ID:            Deref(r.Int(schema.ColID)),
		TitleHeadline: r.Text("title_headline"),
		TitleText:     r.Text("title_text"),
		Scale:         r.Text(schema.ColScale),
		CreatedAt:     r.Time(schema.ColCreatedAt),
		UpdatedAt:     r.Time(schema.ColUpdatedAt),
	}
}

// Deref returns the value behind an optional column, or the zero value when
// the column is NULL.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
