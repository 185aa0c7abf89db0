package markers

import "errors"

var ErrNoAPIKey = errors.New("no Google Sheets key found; set the GOOGLEAPIKEY environment variable")
var ErrUnexpectedSheets = errors.New("expected ranges from exactly one sheet")
var ErrBadPosition = errors.New("position needs numeric x and z values")
