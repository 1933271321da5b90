package models

import (
	"shiftwatch/internal/engine"
)

type Employee struct {
	BaseModel
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Position   string    `gorm:"type:varchar(100)"          json:"position"`
	Supervisor string    `gorm:"type:varchar(100)"          json:"supervisor"`
	Department string    `gorm:"type:varchar(100);index"    json:"department"`
	Schedule   *Schedule `gorm:"foreignKey:EmployeeID"      json:"schedule,omitempty"`
}

// Staff projects the employee onto the engine's roster type.
func (e Employee) Staff() engine.Staff {
	s := engine.Staff{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		Supervisor: e.Supervisor,
		Position:   e.Position,
	}
	if e.Schedule != nil {
		s.HasSchedule = true
		s.Shifts = e.Schedule.Shifts()
	}
	return s
}

func StaffOf(employees []*Employee) []engine.Staff {
	staff := make([]engine.Staff, 0, len(employees))
	for _, e := range employees {
		staff = append(staff, e.Staff())
	}
	return staff
}

type Schedule struct {
	BaseModel
	EmployeeID int    `gorm:"not null;uniqueIndex" json:"employeeId"`
	Saturday   string `gorm:"type:varchar(20)"     json:"saturday"`
	Sunday     string `gorm:"type:varchar(20)"     json:"sunday"`
	Monday     string `gorm:"type:varchar(20)"     json:"monday"`
	Tuesday    string `gorm:"type:varchar(20)"     json:"tuesday"`
	Wednesday  string `gorm:"type:varchar(20)"     json:"wednesday"`
	Thursday   string `gorm:"type:varchar(20)"     json:"thursday"`
	Friday     string `gorm:"type:varchar(20)"     json:"friday"`
}

func (s Schedule) Shifts() [engine.DaysPerWeek]string {
	return [engine.DaysPerWeek]string{
		engine.Saturday:  s.Saturday,
		engine.Sunday:    s.Sunday,
		engine.Monday:    s.Monday,
		engine.Tuesday:   s.Tuesday,
		engine.Wednesday: s.Wednesday,
		engine.Thursday:  s.Thursday,
		engine.Friday:    s.Friday,
	}
}

func (s *Schedule) SetDay(day engine.DayKey, token string) {
	switch day {
	case engine.Saturday:
		s.Saturday = token
	case engine.Sunday:
		s.Sunday = token
	case engine.Monday:
		s.Monday = token
	case engine.Tuesday:
		s.Tuesday = token
	case engine.Wednesday:
		s.Wednesday = token
	case engine.Thursday:
		s.Thursday = token
	case engine.Friday:
		s.Friday = token
	}
}

type UpdateScheduleDayRequest struct {
	ShiftTime string `json:"shift_time"`
}
