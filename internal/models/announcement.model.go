package models

type Announcement struct {
	BaseModel
	Title   string `gorm:"type:varchar(100);not null"               json:"title"`
	Content string `gorm:"type:text;not null"                       json:"content"`
	Type    string `gorm:"type:varchar(20);not null;default:normal" json:"type"`
	Date    string `gorm:"type:varchar(10);not null;index"          json:"date"`
}

var AnnouncementTypes = []string{"normal", "important", "urgent"}

type AnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Date    string `json:"date,omitempty"`
}

type ReplaceAnnouncementsRequest struct {
	Announcements []AnnouncementRequest `json:"announcements"`
}
