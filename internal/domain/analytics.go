package domain

import (
	"strconv"
	"strings"
)

// Marker is a single lab result inside an analytics document.
// @Description Lab marker with reference range.
type Marker struct {
	Name           string `json:"name" example:"Glucose"`
	Value          any    `json:"value" swaggertype:"string" example:"95"`
	Unit           string `json:"unit,omitempty" example:"mg/dL"`
	Reference      string `json:"reference,omitempty" example:"70-100"`
	Category       string `json:"category,omitempty" example:"biochemistry"`
	CatDisplayName string `json:"catDisplayName,omitempty" example:"Bioquímica"`
	OutOfRange     bool   `json:"outOfRange"`
}

// NumericValue parses the marker value leniently. Values like "95 mg/dL" are
// read up to the first non-numeric character.
func (m Marker) NumericValue() (float64, bool) {
	switch v := m.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		return ParseLeadingFloat(v)
	}
	return 0, false
}

// IsOutOfRange evaluates the reference rule. Supported forms are "<x" (value
// must not exceed x), ">x" (value must not fall below x) and "a-b" (inclusive
// range). Any other reference, or a non-numeric value, is never out of range.
func (m Marker) IsOutOfRange() bool {
	ref := strings.TrimSpace(m.Reference)
	if ref == "" {
		return false
	}
	value, ok := m.NumericValue()
	if !ok {
		return false
	}

	switch {
	case strings.HasPrefix(ref, "<"):
		limit, ok := ParseLeadingFloat(strings.TrimSpace(ref[1:]))
		return ok && value > limit
	case strings.HasPrefix(ref, ">"):
		limit, ok := ParseLeadingFloat(strings.TrimSpace(ref[1:]))
		return ok && value < limit
	case strings.Contains(ref, "-"):
		parts := strings.SplitN(ref, "-", 2)
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return false
		}
		return value < lo || value > hi
	}
	return false
}

// ParseLeadingFloat reads the numeric prefix of s, like "95 mg/dL" -> 95 or
// "1.2e3 U/L" -> 1200. An exponent counts only when digits follow it.
func ParseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && (isDigit(s[end]) || s[end] == '.') {
		end++
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '-' || s[exp] == '+') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// MarkerCategory groups markers by category in first-seen order.
// @Description Markers grouped by lab category.
type MarkerCategory struct {
	Category       string   `json:"category" example:"biochemistry"`
	CatDisplayName string   `json:"catDisplayName" example:"Bioquímica"`
	Markers        []Marker `json:"markers"`
	OutOfRange     int      `json:"outOfRange" example:"1"`
}

// AnalyticsDocument is one uploaded lab report.
// @Description Lab analytics document.
type AnalyticsDocument struct {
	ID   string `json:"id" example:"1"`
	Date string `json:"date,omitempty" example:"2024-01-01"`
	Type string `json:"type,omitempty" example:"blood_test"`
	// AI summary stored by the provider for this document
	Summary    string           `json:"summary,omitempty"`
	Markers    []Marker         `json:"markers"`
	Categories []MarkerCategory `json:"categories,omitempty"`
	OutOfRange int              `json:"outOfRange" example:"1"`
}

// AnalyticsRequest contains query parameters for the analytics list endpoint.
type AnalyticsRequest struct {
	PatientID string `json:"patient_id" validate:"required,max=254,patientid"`
	From      string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Lookup    string `json:"lookup" validate:"omitempty,oneof=email hc"`
}

// AnalyticsListResponse is the response for the analytics list endpoint.
// @Description Lab analytics documents with marker flags.
type AnalyticsListResponse struct {
	Data []AnalyticsDocument `json:"data"`
}
