package timeline

import (
	"time"

	"tlstory/internal/domain/schema"
)

// Era is one timeline_eras row.
type Era struct {
	ID       int64   `json:"id"`
	Headline string  `json:"headline"`
	Text     *string `json:"text"`

	StartYear  int64  `json:"start_year"`
	StartMonth *int64 `json:"start_month"`
	StartDay   *int64 `json:"start_day"`
	EndYear    int64  `json:"end_year"`
	EndMonth   *int64 `json:"end_month"`
	EndDay     *int64 `json:"end_day"`

	SortOrder int64     `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EraFromRow maps a decoded timeline_eras row.
func EraFromRow(r schema.Row) Era {
	return Era{
		ID:         Deref(r.Int(schema.ColID)),
		Headline:   Deref(r.Text(schema.ColHeadline)),
		Text:       r.Text(schema.ColText),
		StartYear:  Deref(r.Int(schema.ColStartYear)),
		StartMonth: r.Int("start_month"),
		StartDay:   r.Int("start_day"),
		EndYear:    Deref(r.Int(schema.ColEndYear)),
		EndMonth:   r.Int("end_month"),
		EndDay:     r.Int("end_day"),
		SortOrder:  Deref(r.Int(schema.ColSortOrder)),
		IsActive:   Deref(r.Bool(schema.ColIsActive)),
		CreatedAt:  r.Time(schema.ColCreatedAt),
		UpdatedAt:  r.Time(schema.ColUpdatedAt),
	}
}
