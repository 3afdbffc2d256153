package model

// Faculty is a staff member profile scoped to one college.
type Faculty struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CollegeID     uint   `gorm:"not null;index" json:"college_id"`
	Name          string `gorm:"not null" json:"name"`
	Designation   string `gorm:"type:varchar(255)" json:"designation"`
	Qualification string `gorm:"type:varchar(255)" json:"qualification"`
	PhotoURL      string `gorm:"type:varchar(1024)" json:"photo_url"`
	Bio           string `gorm:"type:text" json:"bio"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`

	College College `gorm:"foreignKey:CollegeID" json:"-"`
}

// TableName keeps the original singular table name.
func (Faculty) TableName() string {
	return "faculty"
}
