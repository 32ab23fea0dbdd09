package view

import "errors"

var ErrNotFound = errors.New("view not found")
