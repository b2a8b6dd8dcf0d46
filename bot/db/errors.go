package db

import "errors"

var errEmptyExternalID = errors.New("empty external id")
