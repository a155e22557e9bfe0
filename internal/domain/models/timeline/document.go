package timeline

// Document is the TimelineJS story document. Optional members use omitempty so
// that an absent value is an absent key, never a null; field order fixes the
// serialized key order.
type Document struct {
	Title  Title      `json:"title"`
	Events []EventDoc `json:"events"`
	Eras   []EraDoc   `json:"eras"`
	Scale  string     `json:"scale"`
}

// Title wraps the title slide text.
type Title struct {
	Text TextDoc `json:"text"`
}

// TextDoc is a headline/body pair. Both keys are always emitted.
type TextDoc struct {
	Headline string `json:"headline"`
	Text     string `json:"text"`
}

// DateDoc is a TimelineJS date. Year is always emitted once the date exists.
type DateDoc struct {
	Year        int64  `json:"year"`
	Month       int64  `json:"month,omitempty"`
	Day         int64  `json:"day,omitempty"`
	Hour        int64  `json:"hour,omitempty"`
	Minute      int64  `json:"minute,omitempty"`
	Second      int64  `json:"second,omitempty"`
	Millisecond int64  `json:"millisecond,omitempty"`
	DisplayDate string `json:"display_date,omitempty"`
}

// MediaDoc is an event's media slide.
type MediaDoc struct {
	URL        string `json:"url"`
	Caption    string `json:"caption,omitempty"`
	Credit     string `json:"credit,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Alt        string `json:"alt,omitempty"`
	Title      string `json:"title,omitempty"`
	Link       string `json:"link,omitempty"`
	LinkTarget string `json:"link_target,omitempty"`
}

// BackgroundDoc is an event's slide background.
type BackgroundDoc struct {
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
	Alt   string `json:"alt,omitempty"`
}

// EventDoc is one slide in the document.
type EventDoc struct {
	StartDate   *DateDoc       `json:"start_date,omitempty"`
	Text        TextDoc        `json:"text"`
	EndDate     *DateDoc       `json:"end_date,omitempty"`
	DisplayDate string         `json:"display_date,omitempty"`
	Group       string         `json:"group,omitempty"`
	UniqueID    string         `json:"unique_id,omitempty"`
	Media       *MediaDoc      `json:"media,omitempty"`
	Background  *BackgroundDoc `json:"background,omitempty"`
	Autolink    *bool          `json:"autolink,omitempty"`
}

// EraDoc is one era band. Both dates are always present.
type EraDoc struct {
	StartDate DateDoc `json:"start_date"`
	EndDate   DateDoc `json:"end_date"`
	Text      TextDoc `json:"text"`
}
