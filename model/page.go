package model

import (
	"time"

	"gorm.io/datatypes"
)

// Page types
const (
	PageTypeHome       = "HOME"
	PageTypeAbout      = "ABOUT"
	PageTypeColleges   = "COLLEGES"
	PageTypeCourses    = "COURSES"
	PageTypeFaculty    = "FACULTY"
	PageTypePlacements = "PLACEMENTS"
	PageTypeFacilities = "FACILITIES"
	PageTypeAdmissions = "ADMISSIONS"
	PageTypeContact    = "CONTACT"
	PageTypeStatic     = "STATIC"
)

// Template types
const (
	TemplateBlank          = "BLANK"
	TemplateHeroSection    = "HERO_SECTION"
	TemplateCoursesList    = "COURSES_LIST"
	TemplateFacultyList    = "FACULTY_LIST"
	TemplatePlacements     = "PLACEMENTS"
	TemplateFacilitiesList = "FACILITIES_LIST"
)

// Page is a CMS page. CollegeID is nil for global pages shared across the
// site; (college_id, slug) is unique so the same slug may exist once per
// college and once globally. ParentPageID links an inherited page back to
// the parent-college page it was cloned from.
type Page struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CollegeID     *uint     `gorm:"uniqueIndex:uq_pages_college_slug;index:ix_pages_college_active" json:"college_id"`
	Slug          string    `gorm:"uniqueIndex:uq_pages_college_slug;not null" json:"slug"`
	Title         string    `gorm:"not null" json:"title"`
	PageType      string    `gorm:"type:varchar(50);not null;default:'STATIC'" json:"page_type"`
	TemplateType  string    `gorm:"type:varchar(50)" json:"template_type"`
	ParentPageID  *uint     `gorm:"index:ix_pages_parent_id" json:"parent_page_id"`
	IsInheritable bool      `gorm:"default:false" json:"is_inheritable"`
	IsActive      bool      `gorm:"default:true;index:ix_pages_college_active" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	College        *College            `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	ParentPage     *Page               `gorm:"foreignKey:ParentPageID" json:"-"`
	SEO            *SEOMeta            `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"seo,omitempty"`
	Sections       []PageSection       `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	SharedSections []PageSharedSection `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"-"`
}

// SEOMeta carries per-page SEO metadata (zero or one row per page).
type SEOMeta struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	PageID           uint           `gorm:"uniqueIndex;not null" json:"page_id"`
	MetaTitle        string         `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription  string         `gorm:"type:varchar(1024)" json:"meta_description"`
	MetaKeywords     string         `gorm:"type:varchar(1024)" json:"meta_keywords"`
	CanonicalURL     string         `gorm:"type:varchar(1024)" json:"canonical_url"`
	OGTitle          string         `gorm:"type:varchar(255)" json:"og_title"`
	OGDescription    string         `gorm:"type:varchar(1024)" json:"og_description"`
	OGImage          string         `gorm:"type:varchar(1024)" json:"og_image"`
	SchemaJSON       datatypes.JSON `gorm:"type:jsonb" json:"schema_json,omitempty"`
	FocusKeyword     string         `gorm:"type:varchar(255)" json:"focus_keyword"`
	ReadabilityScore string         `gorm:"type:varchar(50)" json:"readability_score"`
	SEOScore         *int           `json:"seo_score"`
}

// Section types
const (
	SectionHero          = "HERO"
	SectionAbout         = "ABOUT"
	SectionStats         = "STATS"
	SectionCourses       = "COURSES"
	SectionFaculty       = "FACULTY"
	SectionPlacements    = "PLACEMENTS"
	SectionFacilities    = "FACILITIES"
	SectionTestimonials  = "TESTIMONIALS"
	SectionAchievements  = "ACHIEVEMENTS"
	SectionFAQ           = "FAQ"
	SectionForm          = "FORM"
	SectionMediaGallery  = "MEDIA_GALLERY"
	SectionText          = "TEXT"
	SectionCards         = "CARDS"
	SectionInfoBar       = "INFO_BAR"
	SectionAccordion     = "ACCORDION"
	SectionBadges        = "BADGES"
	SectionAccreditation = "ACCREDITATION"
)

// PageSection is a typed, orderable content block within a page. ExtraData
// holds type-specific fields that never got their own column; the hero
// columns were added later and take part in the hero image fallback chain.
type PageSection struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	PageID             uint              `gorm:"not null;index:ix_page_sections_page_sort" json:"page_id"`
	SectionType        string            `gorm:"type:varchar(50);not null" json:"section_type"`
	SectionTitle       string            `gorm:"type:varchar(255)" json:"section_title"`
	SectionSubtitle    string            `gorm:"type:varchar(255)" json:"section_subtitle"`
	SectionDescription string            `gorm:"type:text" json:"section_description"`
	SectionLink        string            `gorm:"type:varchar(1024)" json:"section_link"`
	BackgroundType     string            `gorm:"type:varchar(50);default:'none'" json:"background_type"`
	BackgroundColor    string            `gorm:"type:varchar(20)" json:"background_color"`
	BackgroundImage    string            `gorm:"type:varchar(1024)" json:"background_image"`
	BackgroundGradient string            `gorm:"type:varchar(255)" json:"background_gradient"`
	HeroImages         datatypes.JSON    `gorm:"type:jsonb" json:"hero_images,omitempty"`
	HeroImageURL       string            `gorm:"type:varchar(1024)" json:"hero_image_url"`
	HeroCTAText        string            `gorm:"type:varchar(255)" json:"hero_cta_text"`
	HeroCTALink        string            `gorm:"type:varchar(1024)" json:"hero_cta_link"`
	HeroStyle          string            `gorm:"type:varchar(50)" json:"hero_style"`
	HeroTextColor      string            `gorm:"type:varchar(50)" json:"hero_text_color"`
	HeroHeight         string            `gorm:"type:varchar(50)" json:"hero_height"`
	SortOrder          int               `gorm:"default:0;index:ix_page_sections_page_sort" json:"sort_order"`
	IsActive           bool              `gorm:"default:true" json:"is_active"`
	ExtraData          datatypes.JSONMap `gorm:"type:jsonb" json:"extra_data,omitempty"`

	// Relationships
	Page  Page          `gorm:"foreignKey:PageID" json:"-"`
	Items []SectionItem `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// SectionItem is one entry in a section's ordered item list. How its fields
// are read depends on the owning section's type (for STATS the title is the
// value and the subtitle its label, and so on).
type SectionItem struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	SectionID   uint              `gorm:"not null;index" json:"section_id"`
	Title       string            `gorm:"type:varchar(255)" json:"title"`
	Subtitle    string            `gorm:"type:varchar(255)" json:"subtitle"`
	Description string            `gorm:"type:text" json:"description"`
	ImageURL    string            `gorm:"type:varchar(1024)" json:"image_url"`
	VideoURL    string            `gorm:"type:varchar(1024)" json:"video_url"`
	CTAText     string            `gorm:"type:varchar(255)" json:"cta_text"`
	CTALink     string            `gorm:"type:varchar(1024)" json:"cta_link"`
	ExtraData   datatypes.JSONMap `gorm:"type:jsonb" json:"extra_data,omitempty"`
	SortOrder   int               `gorm:"default:0" json:"sort_order"`

	Section PageSection `gorm:"foreignKey:SectionID" json:"-"`
}
