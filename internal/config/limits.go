package config

const (
	// MaxHeadlineLength bounds event, era and title headlines.
	MaxHeadlineLength = 500

	// MaxTextLength bounds slide body text. TimelineJS renders it as HTML,
	// so long essays belong behind a media link instead.
	MaxTextLength = 20000

	// MaxURLLength bounds media and background URLs.
	MaxURLLength = 2048

	// MaxLogFiles is how many server log files SetupLogFile keeps.
	MaxLogFiles = 10

	// MaxImportBytes caps an /api/import request body.
	MaxImportBytes = 10 << 20
)
