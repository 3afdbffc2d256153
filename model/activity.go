package model

import "time"

// Activity is an event or news entry scoped to one college.
type Activity struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CollegeID   uint       `gorm:"not null;index" json:"college_id"`
	Type        string     `gorm:"type:varchar(50)" json:"type"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ImageURL    string     `gorm:"type:varchar(1024)" json:"image_url"`
	EventDate   *time.Time `json:"event_date"`
}

// Facility is a campus facility entry scoped to one college.
type Facility struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CollegeID   uint   `gorm:"not null;index" json:"college_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"type:varchar(1024)" json:"image_url"`
}

func (Facility) TableName() string {
	return "facilities"
}
