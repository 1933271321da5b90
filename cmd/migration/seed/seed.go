package seed

import (
	"time"

	"shiftwatch/config"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func weekdays(shift string) *Schedule {
	return &Schedule{Monday: shift, Tuesday: shift, Wednesday: shift, Thursday: shift, Friday: shift}
}

// roster is a small call center with a thin crisis line overnight and on
// weekends, a weekday billing desk and a tech support team.
func roster() []Employee {
	return []Employee{
		{Name: "Maya Chen", Position: "Crisis Counselor", Supervisor: "Dana Ortiz", Department: "Crisis Line",
			Schedule: weekdays("7a-3:30p")},
		{Name: "Luis Romero", Position: "Crisis Counselor", Supervisor: "Dana Ortiz", Department: "Crisis Line",
			Schedule: weekdays("3p-11:30p")},
		{Name: "Priya Natarajan", Position: "Crisis Counselor", Supervisor: "Dana Ortiz", Department: "Crisis Line",
			Schedule: &Schedule{Saturday: "11p-7:30a", Sunday: "11p-7:30a", Monday: "11p-7:30a", Tuesday: "11p-7:30a",
				Wednesday: "11p-7:30a", Thursday: "OFF", Friday: "OFF"}},
		{Name: "Jordan Blake", Position: "Senior Counselor", Supervisor: "Dana Ortiz", Department: "Crisis Line",
			Schedule: &Schedule{Saturday: "9a-9p", Sunday: "9a-9p", Monday: "9a-9p", Thursday: "9a-9p", Friday: "9a-9p"}},
		{Name: "Sam Okafor", Position: "Crisis Counselor", Supervisor: "Dana Ortiz", Department: "Crisis Line",
			Schedule: &Schedule{Saturday: "7a-7p", Sunday: "7a-7p", Tuesday: "7a-3:30p", Wednesday: "7a-3:30p"}},
		{Name: "Ava Patel", Position: "Billing Agent", Supervisor: "Grace Liu", Department: "Billing",
			Schedule: weekdays("8a-4:30p")},
		{Name: "Noah Kim", Position: "Billing Agent", Supervisor: "Grace Liu", Department: "Billing",
			Schedule: weekdays("10a-6:30p")},
		{Name: "Grace Liu", Position: "Team Lead", Supervisor: "Dana Ortiz", Department: "Billing",
			Schedule: weekdays("9a-5:30p")},
		{Name: "Ethan Brooks", Position: "Technician", Supervisor: "Rui Santos", Department: "Tech Support",
			Schedule: &Schedule{Saturday: "12p-8:30p", Sunday: "12p-8:30p", Monday: "12p-8:30p", Tuesday: "12p-8:30p",
				Wednesday: "12p-8:30p"}},
		{Name: "Zoe Alvarez", Position: "Technician", Supervisor: "Rui Santos", Department: "Tech Support",
			Schedule: &Schedule{Saturday: "6a-2:30p", Tuesday: "6a-2:30p", Wednesday: "6a-2:30p", Thursday: "6a-2:30p",
				Friday: "6a-2:30p"}},
		{Name: "Omar Haddad", Position: "Technician", Supervisor: "Rui Santos", Department: "Tech Support"},
	}
}

// Seed loads the development roster, some time off around today and a
// couple of announcements. Employees that already exist by name are left
// alone, so seeding twice is harmless.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	today := time.Now().In(config.Location())
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format(ISODate) }

	ids := map[string]int{}
	for _, employee := range roster() {
		var existing Employee
		if err := db.First(&existing, "name = ?", employee.Name).Error; err == nil {
			log.Info("Employee already exists", "name", employee.Name)
			ids[employee.Name] = existing.ID
			continue
		}

		log.Info("Seeding employee", "name", employee.Name, "department", employee.Department)
		if err := db.Create(&employee).Error; err != nil {
			return log.Err("failed to create employee", err, "name", employee.Name)
		}
		ids[employee.Name] = employee.ID
	}

	timeOff := []TimeOffRequest{
		{EmployeeID: ids["Luis Romero"], Type: "vacation", StartDate: day(0), EndDate: day(2), Status: "approved",
			Reason: stringPtr("Family trip")},
		{EmployeeID: ids["Maya Chen"], Type: "sick", StartDate: day(-1), EndDate: day(-1), Status: "approved"},
		{EmployeeID: ids["Jordan Blake"], Type: "pto", StartDate: day(21), EndDate: day(25), Status: "pending"},
	}
	for _, request := range timeOff {
		var count int64
		if err := db.Model(&TimeOffRequest{}).
			Where("employee_id = ? AND type = ? AND status = ?", request.EmployeeID, request.Type, request.Status).
			Count(&count).Error; err != nil {
			return log.Err("failed to check time off", err, "employeeID", request.EmployeeID)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&request).Error; err != nil {
			return log.Err("failed to create time off", err, "employeeID", request.EmployeeID)
		}
	}

	announcements := []Announcement{
		{Title: "Weekend coverage", Content: "The crisis line needs volunteers for Saturday evenings.", Type: "important",
			Date: day(0)},
		{Title: "New hire", Content: "Welcome Omar to tech support.", Type: "normal", Date: day(-3)},
	}
	for _, announcement := range announcements {
		var existing Announcement
		if err := db.First(&existing, "title = ?", announcement.Title).Error; err == nil {
			continue
		}
		if err := db.Create(&announcement).Error; err != nil {
			return log.Err("failed to create announcement", err, "title", announcement.Title)
		}
	}

	log.Info("Seeding complete", "employees", len(ids))
	return nil
}
