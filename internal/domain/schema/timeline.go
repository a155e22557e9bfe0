package schema

// Column names shared by more than one table.
const (
	ColID        = "id"
	ColHeadline  = "headline"
	ColText      = "text"
	ColStartYear = "start_year"
	ColEndYear   = "end_year"
	ColSortOrder = "sort_order"
	ColIsActive  = "is_active"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
	ColAutolink  = "autolink"
	ColUniqueID  = "unique_id"
	ColScale     = "scale"
)

func intField(col string) Field  { return Field{Column: col, Kind: KindInt} }
func textField(col string) Field { return Field{Column: col, Kind: KindText} }

var (
	idField        = Field{Column: ColID, Kind: KindInt, ReadOnly: true}
	createdAtField = Field{Column: ColCreatedAt, Kind: KindTime, ReadOnly: true}
	updatedAtField = Field{Column: ColUpdatedAt, Kind: KindTime, ReadOnly: true}
)

// Config is the timeline configuration singleton.
var Config = NewTable("config", "timeline_config",
	idField,
	textField("title_headline"),
	textField("title_text"),
	textField(ColScale),
	createdAtField,
	updatedAtField,
)

// Events holds timeline events. Both the start and the optional end point
// carry full precision down to milliseconds.
var Events = NewTable("event", "timeline_events",
	idField,
	Field{Column: ColHeadline, Kind: KindText, Required: true},
	textField(ColText),

	Field{Column: ColStartYear, Kind: KindInt, Required: true},
	intField("start_month"),
	intField("start_day"),
	intField("start_hour"),
	intField("start_minute"),
	intField("start_second"),
	intField("start_millisecond"),
	textField("start_display_date"),

	intField(ColEndYear),
	intField("end_month"),
	intField("end_day"),
	intField("end_hour"),
	intField("end_minute"),
	intField("end_second"),
	intField("end_millisecond"),
	textField("end_display_date"),

	textField("display_date"),
	textField("event_group"),
	textField(ColUniqueID),

	textField("media_url"),
	textField("media_caption"),
	textField("media_credit"),
	textField("media_thumbnail"),
	textField("media_alt"),
	textField("media_title"),
	textField("media_link"),
	textField("media_link_target"),

	textField("background_url"),
	textField("background_color"),
	textField("background_alt"),

	Field{Column: ColAutolink, Kind: KindBool},
	intField(ColSortOrder),
	Field{Column: ColIsActive, Kind: KindBool},
	createdAtField,
	updatedAtField,
)

// Eras require both endpoints and stop at day precision.
var Eras = NewTable("era", "timeline_eras",
	idField,
	Field{Column: ColHeadline, Kind: KindText, Required: true},
	textField(ColText),
	Field{Column: ColStartYear, Kind: KindInt, Required: true},
	intField("start_month"),
	intField("start_day"),
	Field{Column: ColEndYear, Kind: KindInt, Required: true},
	intField("end_month"),
	intField("end_day"),
	intField(ColSortOrder),
	Field{Column: ColIsActive, Kind: KindBool},
	createdAtField,
	updatedAtField,
)
