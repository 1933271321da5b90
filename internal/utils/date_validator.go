package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatUSShortDate DateFormat = "1/2/2006"
	FormatISO8601     DateFormat = "2006-01-02T15:04:05Z07:00"
)

var usDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// DateValidator normalises the date spellings accepted from clients and
// spreadsheets into ISO calendar dates.
type DateValidator struct {
	supportedFormats []DateFormat
	standardFormat   DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	StandardFormat string
	OriginalValue  string
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601Date,
			FormatUSDate,
			FormatUSShortDate,
			FormatISO8601,
		},
		standardFormat: FormatISO8601Date,
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		parsed, err := time.Parse(string(format), input)
		if err != nil || !dv.isValidForFormat(input, format) {
			continue
		}

		y, m, d := parsed.Date()
		result.IsValid = true
		result.DetectedFormat = format
		result.ParsedTime = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		result.StandardFormat = result.ParsedTime.Format(string(dv.standardFormat))
		return result
	}

	return result
}

func (dv *DateValidator) isValidForFormat(input string, format DateFormat) bool {
	switch format {
	case FormatUSDate, FormatUSShortDate:
		return validateUSDate(input)
	default:
		return true
	}
}

func validateUSDate(input string) bool {
	matches := usDatePattern.FindStringSubmatch(input)
	if len(matches) < 4 {
		return false
	}

	month, _ := strconv.Atoi(matches[1])
	day, _ := strconv.Atoi(matches[2])
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// NormalizeDate returns input as YYYY-MM-DD.
func NormalizeDate(input string) (string, bool) {
	result := NewDateValidator().ValidateAndConvert(input)
	return result.StandardFormat, result.IsValid
}

// NormalizeDateOr falls back to the calendar date of now for blank or
// unreadable input.
func NormalizeDateOr(input string, now time.Time) string {
	if iso, ok := NormalizeDate(input); ok {
		return iso
	}
	return now.Format(string(FormatISO8601Date))
}
