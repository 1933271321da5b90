package models

import (
	"time"

	"shiftwatch/internal/engine"
)

const ISODate = "2006-01-02"

var TimeOffTypes = []string{"sick", "vacation", "pto"}

type TimeOffRequest struct {
	BaseModel
	EmployeeID int     `gorm:"not null;index"                  json:"employeeId"`
	Type       string  `gorm:"type:varchar(16);not null"       json:"type"`
	StartDate  string  `gorm:"type:varchar(10);not null"       json:"startDate"`
	EndDate    string  `gorm:"type:varchar(10);not null"       json:"endDate"`
	Status     string  `gorm:"type:varchar(16);not null;index" json:"status"`
	Reason     *string `gorm:"type:text"                       json:"reason,omitempty"`
}

// TimeOff converts the stored ISO dates for the risk scorer. Rows with
// unreadable dates are reported as not ok and skipped by callers.
func (r TimeOffRequest) TimeOff() (engine.TimeOff, bool) {
	start, err := time.Parse(ISODate, r.StartDate)
	if err != nil {
		return engine.TimeOff{}, false
	}
	end, err := time.Parse(ISODate, r.EndDate)
	if err != nil {
		return engine.TimeOff{}, false
	}

	return engine.TimeOff{
		EmployeeID: r.EmployeeID,
		Type:       r.Type,
		Status:     r.Status,
		Start:      start,
		End:        end,
	}, true
}

func TimeOffOf(requests []*TimeOffRequest) []engine.TimeOff {
	timeOff := make([]engine.TimeOff, 0, len(requests))
	for _, r := range requests {
		if t, ok := r.TimeOff(); ok {
			timeOff = append(timeOff, t)
		}
	}
	return timeOff
}

type CreateTimeOffRequest struct {
	EmployeeID int     `json:"employee_id"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
