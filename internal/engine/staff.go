package engine

// Staff is the engine's read-only view of an employee and their weekly
// schedule. Shifts is indexed by DayKey.
type Staff struct {
	ID          int
	Name        string
	Department  string
	Supervisor  string
	Position    string
	HasSchedule bool
	Shifts      [DaysPerWeek]string
}

func (s Staff) Shift(day DayKey) string {
	if !day.Valid() {
		return ""
	}
	return s.Shifts[day]
}

func (s Staff) Window(day DayKey) (Window, bool) {
	return ShiftWindow(s.Shift(day))
}

// InDepartment filters staff by exact department name, keeping load order.
func InDepartment(department string, staff []Staff) []Staff {
	var members []Staff
	for _, s := range staff {
		if s.Department == department {
			members = append(members, s)
		}
	}
	return members
}

// Departments returns the distinct non-empty departments in first-seen order.
func Departments(staff []Staff) []string {
	seen := make(map[string]bool)
	var departments []string
	for _, s := range staff {
		if s.Department == "" || seen[s.Department] {
			continue
		}
		seen[s.Department] = true
		departments = append(departments, s.Department)
	}
	return departments
}
