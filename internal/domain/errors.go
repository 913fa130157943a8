package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoData       = errors.New("no health data for the requested periods")
	ErrJobFinished  = errors.New("summary job already finished")
)
