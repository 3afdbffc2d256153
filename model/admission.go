package model

import (
	"time"

	"gorm.io/datatypes"
)

// Admission holds the admission procedure/eligibility text for a college.
type Admission struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	CollegeID       uint   `gorm:"not null;index" json:"college_id"`
	ProcedureText   string `gorm:"type:text" json:"procedure_text"`
	EligibilityText string `gorm:"type:text" json:"eligibility_text"`
}

// Application statuses
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application is an admission application submitted from the public site.
// CourseID is optional; when set it must belong to the same college.
type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CollegeID uint           `gorm:"not null;index" json:"college_id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null" json:"email"`
	Phone     string         `gorm:"type:varchar(50)" json:"phone"`
	CourseID  *uint          `gorm:"index" json:"course_id"`
	Documents datatypes.JSON `gorm:"type:jsonb" json:"documents,omitempty"`
	Status    string         `gorm:"type:varchar(50)" json:"status"`
	CreatedAt time.Time      `json:"created_at"`

	// Relationships
	College College `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Course  *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// Enquiry is a free-form contact message; college scoping is optional so
// the group-level site can receive enquiries too.
type Enquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CollegeID *uint     `gorm:"index" json:"college_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (Enquiry) TableName() string {
	return "enquiries"
}
