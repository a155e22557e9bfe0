package timeline

import (
	"time"

	"tlstory/internal/domain/schema"
)

// Event is one timeline_events row. Optional columns are pointers; nil means
// the stored value is NULL. JSON names match the column names so the admin UI
// receives the flat row.
type Event struct {
	ID       int64   `json:"id"`
	Headline string  `json:"headline"`
	Text     *string `json:"text"`

	StartYear        *int64  `json:"start_year"`
	StartMonth       *int64  `json:"start_month"`
	StartDay         *int64  `json:"start_day"`
	StartHour        *int64  `json:"start_hour"`
	StartMinute      *int64  `json:"start_minute"`
	StartSecond      *int64  `json:"start_second"`
	StartMillisecond *int64  `json:"start_millisecond"`
	StartDisplayDate *string `json:"start_display_date"`

	EndYear        *int64  `json:"end_year"`
	EndMonth       *int64  `json:"end_month"`
	EndDay         *int64  `json:"end_day"`
	EndHour        *int64  `json:"end_hour"`
	EndMinute      *int64  `json:"end_minute"`
	EndSecond      *int64  `json:"end_second"`
	EndMillisecond *int64  `json:"end_millisecond"`
	EndDisplayDate *string `json:"end_display_date"`

	DisplayDate *string `json:"display_date"`
	EventGroup  *string `json:"event_group"`
	UniqueID    *string `json:"unique_id"`

	MediaURL        *string `json:"media_url"`
	MediaCaption    *string `json:"media_caption"`
	MediaCredit     *string `json:"media_credit"`
	MediaThumbnail  *string `json:"media_thumbnail"`
	MediaAlt        *string `json:"media_alt"`
	MediaTitle      *string `json:"media_title"`
	MediaLink       *string `json:"media_link"`
	MediaLinkTarget *string `json:"media_link_target"`

	BackgroundURL   *string `json:"background_url"`
	BackgroundColor *string `json:"background_color"`
	BackgroundAlt   *string `json:"background_alt"`

	// Autolink is nil only when the source row did not carry the column.
	// A stored NULL reads as false.
	Autolink *bool `json:"autolink,omitempty"`

	SortOrder int64     `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventFromRow maps a decoded timeline_events row.
func EventFromRow(r schema.Row) Event {
	e := Event{
		ID:       Deref(r.Int(schema.ColID)),
		Headline: Deref(r.Text(schema.ColHeadline)),
		Text:     r.Text(schema.ColText),

		StartYear:        r.Int(schema.ColStartYear),
		StartMonth:       r.Int("start_month"),
		StartDay:         r.Int("start_day"),
		StartHour:        r.Int("start_hour"),
		StartMinute:      r.Int("start_minute"),
		StartSecond:      r.Int("start_second"),
		StartMillisecond: r.Int("start_millisecond"),
		StartDisplayDate: r.Text("start_display_date"),

		EndYear:        r.Int(schema.ColEndYear),
		EndMonth:       r.Int("end_month"),
		EndDay:         r.Int("end_day"),
		EndHour:        r.Int("end_hour"),
		EndMinute:      r.Int("end_minute"),
		EndSecond:      r.Int("end_second"),
		EndMillisecond: r.Int("end_millisecond"),
		EndDisplayDate: r.Text("end_display_date"),

		DisplayDate: r.Text("display_date"),
		EventGroup:  r.Text("event_group"),
		UniqueID:    r.Text(schema.ColUniqueID),

		MediaURL:        r.Text("media_url"),
		MediaCaption:    r.Text("media_caption"),
		MediaCredit:     r.Text("media_credit"),
		MediaThumbnail:  r.Text("media_thumbnail"),
		MediaAlt:        r.Text("media_alt"),
		MediaTitle:      r.Text("media_title"),
		MediaLink:       r.Text("media_link"),
		MediaLinkTarget: r.Text("media_link_target"),

		BackgroundURL:   r.Text("background_url"),
		BackgroundColor: r.Text("background_color"),
		BackgroundAlt:   r.Text("background_alt"),

		SortOrder: Deref(r.Int(schema.ColSortOrder)),
		IsActive:  Deref(r.Bool(schema.ColIsActive)),
		CreatedAt: r.Time(schema.ColCreatedAt),
		UpdatedAt: r.Time(schema.ColUpdatedAt),
	}
	if r.Has(schema.ColAutolink) {
		autolink := Deref(r.Bool(schema.ColAutolink))
		e.Autolink = &autolink
	}
	return e
}
