package model

// Placement is a per-year placement statistics record for a college.
type Placement struct {
	ID                  uint     `gorm:"primaryKey" json:"id"`
	CollegeID           uint     `gorm:"not null;index" json:"college_id"`
	Year                int      `gorm:"not null" json:"year"`
	HighestPackage      *float64 `json:"highest_package"`
	AveragePackage      *float64 `json:"average_package"`
	PlacementPercentage *float64 `json:"placement_percentage"`

	// Relationships
	StudentPlacements []StudentPlacement `gorm:"foreignKey:PlacementID;constraint:OnDelete:CASCADE" json:"student_placements,omitempty"`
	Recruiters        []Recruiter        `gorm:"many2many:placement_recruiters;constraint:OnDelete:CASCADE" json:"recruiters,omitempty"`
}

// StudentPlacement is a single placed-student entry under a placement year.
type StudentPlacement struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	PlacementID uint     `gorm:"not null;index" json:"placement_id"`
	StudentName string   `gorm:"not null" json:"student_name"`
	CompanyName string   `gorm:"type:varchar(255)" json:"company_name"`
	Package     *float64 `json:"package"`

	Placement Placement `gorm:"foreignKey:PlacementID" json:"-"`
}

// Recruiter is a hiring company shown on placement pages.
type Recruiter struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Industry string `gorm:"type:varchar(255)" json:"industry"`
	LogoURL  string `gorm:"type:varchar(1024)" json:"logo_url"`

	Placements []Placement `gorm:"many2many:placement_recruiters" json:"-"`
}

// RecruiterIndustry is the lookup list for recruiter industry tags.
type RecruiterIndustry struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (RecruiterIndustry) TableName() string {
	return "recruiter_industries"
}
