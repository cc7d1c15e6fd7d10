package service

import "errors"

// ErrScheduleItemNotFound covers both a missing row and, per the grading
// contract, content that cannot be parsed: a schedule item whose content is
// unreadable is treated as not found for grading purposes (the integrity
// problem is logged separately).
var ErrScheduleItemNotFound = errors.New("schedule item not found")
