package model

import "gorm.io/datatypes"

// Course represents an academic program offered by a college.
// (college_id, slug) is unique.
type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CollegeID   uint   `gorm:"not null;uniqueIndex:uq_courses_college_slug" json:"college_id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"not null;uniqueIndex:uq_courses_college_slug" json:"slug"`
	Level       string `gorm:"type:varchar(50)" json:"level"`
	Department  string `gorm:"type:varchar(255)" json:"department"`
	Duration    string `gorm:"type:varchar(255)" json:"duration"`
	Fees        string `gorm:"type:varchar(255)" json:"fees"`
	Eligibility string `gorm:"type:text" json:"eligibility"`
	Overview    string `gorm:"type:text" json:"overview"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	College College     `gorm:"foreignKey:CollegeID" json:"-"`
	Details *CoursePage `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

// CoursePage holds the long-form detail content for one course.
type CoursePage struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	CourseID            uint           `gorm:"uniqueIndex;not null" json:"course_id"`
	Curriculum          datatypes.JSON `gorm:"type:jsonb" json:"curriculum,omitempty"`
	CareerOpportunities string         `gorm:"type:text" json:"career_opportunities"`
	AdmissionProcess    string         `gorm:"type:text" json:"admission_process"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}
