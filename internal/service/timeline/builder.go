package timeline

import (
	models "tlstory/internal/domain/models/timeline"
)

// Build assembles the TimelineJS document from a config row and already
// ordered event and era rows. It performs no I/O, never reorders its input and
// never modifies it.
//
// Optional members follow truthy inclusion: a nil, zero or empty value is
// omitted, so a stored hour of 0 disappears from the output. Autolink is the
// one exception and is emitted whenever the row carried the column.
func Build(cfg *models.Config, events []models.Event, eras []models.Era) models.Document {
	doc := models.Document{
		Scale:  models.ScaleHuman,
		Events: make([]models.EventDoc, 0, len(events)),
		Eras:   make([]models.EraDoc, 0, len(eras)),
	}

	if cfg != nil {
		doc.Title.Text = models.TextDoc{
			Headline: models.Deref(cfg.TitleHeadline),
			Text:     models.Deref(cfg.TitleText),
		}
		if scale := models.Deref(cfg.Scale); scale != "" {
			doc.Scale = scale
		}
	}

	for i := range events {
		doc.Events = append(doc.Events, buildEvent(&events[i]))
	}
	for i := range eras {
		doc.Eras = append(doc.Eras, buildEra(&eras[i]))
	}

	return doc
}

func buildEvent(e *models.Event) models.EventDoc {
	out := models.EventDoc{
		Text: models.TextDoc{
			Headline: e.Headline,
			Text:     models.Deref(e.Text),
		},
		DisplayDate: models.Deref(e.DisplayDate),
		Group:       models.Deref(e.EventGroup),
		UniqueID:    models.Deref(e.UniqueID),
	}

	if year := models.Deref(e.StartYear); year != 0 {
		out.StartDate = &models.DateDoc{
			Year:        year,
			Month:       models.Deref(e.StartMonth),
			Day:         models.Deref(e.StartDay),
			Hour:        models.Deref(e.StartHour),
			Minute:      models.Deref(e.StartMinute),
			Second:      models.Deref(e.StartSecond),
			Millisecond: models.Deref(e.StartMillisecond),
			DisplayDate: models.Deref(e.StartDisplayDate),
		}
	}

	if year := models.Deref(e.EndYear); year != 0 {
		out.EndDate = &models.DateDoc{
			Year:        year,
			Month:       models.Deref(e.EndMonth),
			Day:         models.Deref(e.EndDay),
			Hour:        models.Deref(e.EndHour),
			Minute:      models.Deref(e.EndMinute),
			Second:      models.Deref(e.EndSecond),
			Millisecond: models.Deref(e.EndMillisecond),
			DisplayDate: models.Deref(e.EndDisplayDate),
		}
	}

	if url := models.Deref(e.MediaURL); url != "" {
		out.Media = &models.MediaDoc{
			URL:        url,
			Caption:    models.Deref(e.MediaCaption),
			Credit:     models.Deref(e.MediaCredit),
			Thumbnail:  models.Deref(e.MediaThumbnail),
			Alt:        models.Deref(e.MediaAlt),
			Title:      models.Deref(e.MediaTitle),
			Link:       models.Deref(e.MediaLink),
			LinkTarget: models.Deref(e.MediaLinkTarget),
		}
	}

	if url := models.Deref(e.BackgroundURL); url != "" {
		out.Background = &models.BackgroundDoc{
			URL:   url,
			Color: models.Deref(e.BackgroundColor),
			Alt:   models.Deref(e.BackgroundAlt),
		}
	}

	if e.Autolink != nil {
		autolink := *e.Autolink
		out.Autolink = &autolink
	}

	return out
}

func buildEra(e *models.Era) models.EraDoc {
	return models.EraDoc{
		StartDate: models.DateDoc{
			Year:  e.StartYear,
			Month: models.Deref(e.StartMonth),
			Day:   models.Deref(e.StartDay),
		},
		EndDate: models.DateDoc{
			Year:  e.EndYear,
			Month: models.Deref(e.EndMonth),
			Day:   models.Deref(e.EndDay),
		},
		Text: models.TextDoc{
			Headline: e.Headline,
			Text:     models.Deref(e.Text),
		},
	}
}
