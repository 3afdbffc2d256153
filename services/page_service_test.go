package services

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/cms-api/model"
)

func TestStandardPageCatalogue(t *testing.T) {
	require.Len(t, standardPages, 8)

	slugs := make(map[string]bool)
	for _, sp := range standardPages {
		assert.NotEmpty(t, sp.Slug)
		assert.Contains(t, sp.TitleFormat, "%s")
		assert.False(t, slugs[sp.Slug], "duplicate slug %q", sp.Slug)
		slugs[sp.Slug] = true
	}

	for _, slug := range []string{"home", "about", "courses", "faculty", "placements", "facilities", "admissions", "contact"} {
		assert.True(t, slugs[slug], "missing standard page %q", slug)
	}
}

func TestStandardPageTitleInterpolation(t *testing.T) {
	by := make(map[string]standardPage)
	for _, sp := range standardPages {
		by[sp.Slug] = sp
	}

	assert.Equal(t, "Woods College - Home", fmt.Sprintf(by["home"].TitleFormat, "Woods College"))
	assert.Equal(t, "About Woods College", fmt.Sprintf(by["about"].TitleFormat, "Woods College"))
	assert.Equal(t, "Programs at Woods College", fmt.Sprintf(by["courses"].TitleFormat, "Woods College"))
	assert.Equal(t, "Contact Woods College", fmt.Sprintf(by["contact"].TitleFormat, "Woods College"))
}

func TestStandardPageTemplates(t *testing.T) {
	templates := make(map[string]string)
	for _, sp := range standardPages {
		templates[sp.Slug] = sp.TemplateType
	}

	assert.Equal(t, model.TemplateHeroSection, templates["home"])
	assert.Equal(t, model.TemplateCoursesList, templates["courses"])
	assert.Equal(t, model.TemplateFacultyList, templates["faculty"])
	assert.Equal(t, model.TemplateFacilitiesList, templates["facilities"])
	assert.Equal(t, model.TemplateBlank, templates["about"])
}

func TestInheritPageRejectsNonInheritable(t *testing.T) {
	svc := NewPageService(nil)

	parent := model.Page{ID: 1, Slug: "home", IsInheritable: false}
	clone, err := svc.InheritPage(&parent, 2)
	assert.ErrorIs(t, err, ErrNotInheritable)
	assert.Nil(t, clone)
}

func TestInheritPageReturnsExistingClone(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPageService(db)

	rows := sqlmock.NewRows([]string{"id", "college_id", "slug", "parent_page_id"}).
		AddRow(10, 2, "about", 1)
	mock.ExpectQuery(`SELECT (.+) FROM "pages"`).WillReturnRows(rows)

	parent := model.Page{ID: 1, Slug: "about", Title: "About Us", IsInheritable: true}
	clone, err := svc.InheritPage(&parent, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(10), clone.ID)

	// No INSERT was issued for the repeat call
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInheritPageCreatesClone(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewPageService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "pages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "pages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	parent := model.Page{
		ID:            1,
		Slug:          "about",
		Title:         "About Us",
		PageType:      model.PageTypeAbout,
		IsInheritable: true,
		IsActive:      true,
	}
	clone, err := svc.InheritPage(&parent, 2)
	require.NoError(t, err)
	require.NotNil(t, clone)

	assert.Equal(t, uint(11), clone.ID)
	require.NotNil(t, clone.CollegeID)
	assert.Equal(t, uint(2), *clone.CollegeID)
	require.NotNil(t, clone.ParentPageID)
	assert.Equal(t, uint(1), *clone.ParentPageID)
	// The clone never inherits further
	assert.False(t, clone.IsInheritable)
	assert.Equal(t, "about", clone.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}
