package models

import (
	"fmt"

	"shiftwatch/internal/engine"
)

type SuggestionStatus string

const (
	StatusPending  SuggestionStatus = "pending"
	StatusApproved SuggestionStatus = "approved"
	StatusDenied   SuggestionStatus = "denied"
)

func ParseSuggestionStatus(s string) (SuggestionStatus, error) {
	switch status := SuggestionStatus(s); status {
	case StatusPending, StatusApproved, StatusDenied:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

func (s SuggestionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// CheckTransition allows pending to move to a terminal state, and a terminal
// state to be set again to itself. Everything else is rejected.
func CheckTransition(from, to SuggestionStatus) error {
	switch {
	case from == to && from.Terminal():
		return nil
	case from == StatusPending && to.Terminal():
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

type Suggestion struct {
	BaseUUIDModel
	Type        engine.SuggestionType `gorm:"type:varchar(32);not null;index"                 json:"type"`
	Title       string                `gorm:"type:varchar(200);not null"                      json:"title"`
	Description string                `gorm:"type:text"                                       json:"description"`
	DayKey      *string               `gorm:"type:varchar(10)"                                json:"dayKey,omitempty"`
	StartTime   *string               `gorm:"type:varchar(10)"                                json:"startTime,omitempty"`
	EndTime     *string               `gorm:"type:varchar(10)"                                json:"endTime,omitempty"`
	EmployeeID  *int                  `gorm:"index"                                           json:"employeeId,omitempty"`
	Status      SuggestionStatus      `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
}

func SuggestionFromDraft(d engine.Draft) *Suggestion {
	s := &Suggestion{
		Type:        d.Type,
		Title:       d.Title,
		Description: d.Description,
		EmployeeID:  d.EmployeeID,
		Status:      StatusPending,
	}
	if d.Day != nil {
		day := d.Day.String()
		s.DayKey = &day
	}
	if d.StartTime != "" {
		s.StartTime = &d.StartTime
	}
	if d.EndTime != "" {
		s.EndTime = &d.EndTime
	}
	return s
}

// Draft recovers the engine view, used to compare against fresh drafts.
func (s Suggestion) Draft() engine.Draft {
	d := engine.Draft{
		Type:        s.Type,
		Title:       s.Title,
		Description: s.Description,
		EmployeeID:  s.EmployeeID,
	}
	if s.DayKey != nil {
		if day, ok := engine.ParseDayKey(*s.DayKey); ok {
			d.Day = &day
		}
	}
	if s.StartTime != nil {
		d.StartTime = *s.StartTime
	}
	if s.EndTime != nil {
		d.EndTime = *s.EndTime
	}
	return d
}

// BackfillTask returns the task approving this suggestion creates, or false
// when the suggestion is not a backfill or lacks employee, day or window.
func (s Suggestion) BackfillTask() (*Task, bool) {
	if s.Type != engine.CoverageBackfill || s.EmployeeID == nil || s.DayKey == nil ||
		s.StartTime == nil || s.EndTime == nil {
		return nil, false
	}

	day, ok := engine.ParseDayKey(*s.DayKey)
	if !ok {
		return nil, false
	}

	skill := BackfillSkill
	id := s.ID
	return &Task{
		EmployeeID:    *s.EmployeeID,
		TaskName:      "Coverage backfill",
		DayOfWeek:     day.String(),
		StartTime:     *s.StartTime,
		EndTime:       *s.EndTime,
		RequiredSkill: &skill,
		SuggestionID:  &id,
	}, true
}

type GenerateSuggestionsRequest struct {
	Scope string `json:"scope"`
}
