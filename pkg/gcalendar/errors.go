package gcalendar

import "errors"

var (
	ErrNoCredentials = errors.New("gcalendar: credentials path is required")
	ErrNoToken       = errors.New("gcalendar: OAuth Desktop credentials need a token file, run `voicectl calendar-auth` first")
)
