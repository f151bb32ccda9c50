package parser

import (
	"errors"
)

var errTypeNotDefined = errors.New("file must be a .xlsx or .xlsm spreadsheet")
