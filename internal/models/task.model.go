package models

import "strings"

// BackfillSkill tags tasks created by approving a coverage backfill.
const BackfillSkill = "coverage"

type Task struct {
	BaseModel
	EmployeeID    int     `gorm:"not null;index"             json:"employeeId"`
	TaskName      string  `gorm:"type:varchar(100);not null" json:"taskName"`
	DayOfWeek     string  `gorm:"type:varchar(10);not null"  json:"dayOfWeek"`
	StartTime     string  `gorm:"type:varchar(10);not null"  json:"startTime"`
	EndTime       string  `gorm:"type:varchar(10);not null"  json:"endTime"`
	RequiredSkill *string `gorm:"type:varchar(100)"          json:"requiredSkill,omitempty"`
	SuggestionID  *string `gorm:"type:varchar(64);index"     json:"suggestionId,omitempty"`
}

type CreateTaskRequest struct {
	EmployeeID    int     `json:"employee_id"`
	TaskName      string  `json:"task_name"`
	DayOfWeek     string  `json:"day_of_week"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	RequiredSkill *string `json:"required_skill,omitempty"`
}

// Missing names the first required field left empty.
func (r CreateTaskRequest) Missing() string {
	switch {
	case r.EmployeeID == 0:
		return "employee_id"
	case strings.TrimSpace(r.TaskName) == "":
		return "task_name"
	case strings.TrimSpace(r.DayOfWeek) == "":
		return "day_of_week"
	case strings.TrimSpace(r.StartTime) == "":
		return "start_time"
	case strings.TrimSpace(r.EndTime) == "":
		return "end_time"
	}
	return ""
}
