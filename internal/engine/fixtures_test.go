package engine

func member(id int, name, department string, shifts map[DayKey]string) Staff {
	s := Staff{ID: id, Name: name, Department: department, HasSchedule: true}
	for day, token := range shifts {
		s.Shifts[day] = token
	}
	return s
}

func everyDay(token string) map[DayKey]string {
	shifts := make(map[DayKey]string, DaysPerWeek)
	for _, day := range Days {
		shifts[day] = token
	}
	return shifts
}

func weekdays(token string) map[DayKey]string {
	return map[DayKey]string{
		Monday: token, Tuesday: token, Wednesday: token, Thursday: token, Friday: token,
	}
}
