package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/collegehub/cms-api/model"
)

func TestProjectSectionHeroImagePriority(t *testing.T) {
	section := model.PageSection{
		ID:          1,
		SectionType: model.SectionHero,
		ExtraData: datatypes.JSONMap{
			"images":         []interface{}{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"},
			"hero_image_url": "https://cdn.example/d.jpg",
		},
		HeroImages:      datatypes.JSON([]byte(`["https://cdn.example/b.jpg","https://cdn.example/c.jpg"]`)),
		HeroImageURL:    "https://cdn.example/a.jpg",
		BackgroundImage: "https://cdn.example/e.jpg",
	}

	out := ProjectSection(section, nil)
	payload, ok := out.Payload.(HeroPayload)
	require.True(t, ok)

	// Sources concatenate in priority order, duplicates dropped
	assert.Equal(t, []string{
		"https://cdn.example/a.jpg",
		"https://cdn.example/b.jpg",
		"https://cdn.example/c.jpg",
		"https://cdn.example/d.jpg",
		"https://cdn.example/e.jpg",
	}, payload.Images)
}

func TestProjectSectionHeroNoImages(t *testing.T) {
	out := ProjectSection(model.PageSection{ID: 2, SectionType: model.SectionHero}, nil)
	payload, ok := out.Payload.(HeroPayload)
	require.True(t, ok)

	// Empty, not nil, so the JSON field renders as []
	assert.NotNil(t, payload.Images)
	assert.Empty(t, payload.Images)
}

func TestProjectSectionHeroCTAPrecedence(t *testing.T) {
	section := model.PageSection{
		ID:          3,
		SectionType: model.SectionHero,
		HeroCTAText: "Apply via column",
		HeroCTALink: "/column",
		ExtraData: datatypes.JSONMap{
			"cta_text": "Apply via extra",
			"cta_link": "/extra",
		},
	}

	payload := ProjectSection(section, nil).Payload.(HeroPayload)
	assert.Equal(t, "Apply via extra", payload.CTAText)
	assert.Equal(t, "/extra", payload.CTALink)
}

func TestProjectSectionHeroCTAFromFirstItem(t *testing.T) {
	items := []model.SectionItem{
		{ID: 10, CTAText: "Apply Now", CTALink: "/apply", SortOrder: 0},
		{ID: 11, CTAText: "Other", CTALink: "/other", SortOrder: 1},
	}

	payload := ProjectSection(model.PageSection{ID: 4, SectionType: model.SectionHero}, items).Payload.(HeroPayload)
	assert.Equal(t, "Apply Now", payload.CTAText)
	assert.Equal(t, "/apply", payload.CTALink)
}

func TestProjectSectionHeroPartialCTAKeepsItemOut(t *testing.T) {
	section := model.PageSection{
		ID:          14,
		SectionType: model.SectionHero,
		HeroCTAText: "Apply Now",
	}
	items := []model.SectionItem{
		{ID: 10, CTAText: "Item text", CTALink: "/item-link", SortOrder: 0},
	}

	// The item CTA is a whole, not a per-field donor: with any section
	// CTA field set, the missing one stays empty
	payload := ProjectSection(section, items).Payload.(HeroPayload)
	assert.Equal(t, "Apply Now", payload.CTAText)
	assert.Equal(t, "", payload.CTALink)
}

func TestProjectSectionHeroTextColorFallback(t *testing.T) {
	section := model.PageSection{
		ID:              5,
		SectionType:     model.SectionHero,
		BackgroundColor: "#112233",
	}
	payload := ProjectSection(section, nil).Payload.(HeroPayload)
	assert.Equal(t, "#112233", payload.TextColor)

	section.HeroTextColor = "#ffffff"
	payload = ProjectSection(section, nil).Payload.(HeroPayload)
	assert.Equal(t, "#ffffff", payload.TextColor)
}

func TestProjectSectionInfoBarSplit(t *testing.T) {
	items := make([]model.SectionItem, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, model.SectionItem{
			ID:        uint(i + 1),
			Title:     "T",
			Subtitle:  "S",
			SortOrder: i,
		})
	}

	payload := ProjectSection(model.PageSection{ID: 6, SectionType: model.SectionInfoBar}, items).Payload.(InfoBarPayload)
	assert.Len(t, payload.Stats, 5)
	assert.Len(t, payload.Accreditations, 2)
}

func TestProjectSectionInfoBarEmpty(t *testing.T) {
	payload := ProjectSection(model.PageSection{ID: 7, SectionType: model.SectionInfoBar}, nil).Payload.(InfoBarPayload)
	assert.NotNil(t, payload.Stats)
	assert.NotNil(t, payload.Accreditations)
	assert.Empty(t, payload.Stats)
	assert.Empty(t, payload.Accreditations)
}

func TestProjectSectionStatsLabelFallback(t *testing.T) {
	items := []model.SectionItem{
		{ID: 1, Title: "5000+", Subtitle: "Students", SortOrder: 0},
		{ID: 2, Title: "98%", Description: "Placement Rate", SortOrder: 1},
	}

	payload := ProjectSection(model.PageSection{ID: 8, SectionType: model.SectionStats}, items).Payload.(StatsPayload)
	require.Len(t, payload.Stats, 2)
	assert.Equal(t, StatEntry{Value: "5000+", Label: "Students"}, payload.Stats[0])
	assert.Equal(t, StatEntry{Value: "98%", Label: "Placement Rate"}, payload.Stats[1])
}

func TestProjectSectionItemOrdering(t *testing.T) {
	items := []model.SectionItem{
		{ID: 3, Title: "third", SortOrder: 2},
		{ID: 2, Title: "second", SortOrder: 1},
		{ID: 5, Title: "tie-b", SortOrder: 0},
		{ID: 1, Title: "tie-a", SortOrder: 0},
	}

	payload := ProjectSection(model.PageSection{ID: 9, SectionType: model.SectionCards}, items).Payload.(CardsPayload)
	require.Len(t, payload.Items, 4)
	assert.Equal(t, "tie-a", payload.Items[0].Title)
	assert.Equal(t, "tie-b", payload.Items[1].Title)
	assert.Equal(t, "second", payload.Items[2].Title)
	assert.Equal(t, "third", payload.Items[3].Title)

	// Input slice must not be reordered
	assert.Equal(t, uint(3), items[0].ID)
	assert.Equal(t, uint(1), items[3].ID)
}

func TestProjectSectionTextItemOverride(t *testing.T) {
	section := model.PageSection{
		ID:                 10,
		SectionType:        model.SectionText,
		SectionTitle:       "Section title",
		SectionDescription: "Section body",
		SectionLink:        "/section-link",
	}
	items := []model.SectionItem{
		{ID: 1, Title: "Item title", CTAText: "Read more", SortOrder: 0},
	}

	payload := ProjectSection(section, items).Payload.(TextPayload)
	assert.Equal(t, "Item title", payload.Title)
	assert.Equal(t, "Section body", payload.Description)
	assert.Equal(t, "Read more", payload.CTAText)
	// No item link, so the section link applies
	assert.Equal(t, "/section-link", payload.CTALink)
}

func TestProjectSectionAccordion(t *testing.T) {
	items := []model.SectionItem{
		{ID: 7, Title: "How do I apply?", Description: "Online form.", SortOrder: 0},
		{ID: 8, Title: "Fees?", Description: "See brochure.", SortOrder: 1},
	}

	payload := ProjectSection(model.PageSection{ID: 11, SectionType: model.SectionAccordion}, items).Payload.(AccordionPayload)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, AccordionEntry{ID: 7, Title: "How do I apply?", Content: "Online form."}, payload.Items[0])
}

func TestProjectSectionAccreditationUsesBadges(t *testing.T) {
	items := []model.SectionItem{
		{ID: 1, Title: "NAAC A+", ImageURL: "https://cdn.example/naac.png", SortOrder: 0},
	}

	out := ProjectSection(model.PageSection{ID: 12, SectionType: model.SectionAccreditation}, items)
	payload, ok := out.Payload.(BadgesPayload)
	require.True(t, ok)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "NAAC A+", payload.Items[0].Title)
}

func TestProjectSectionUnknownTypeFallsBackToCards(t *testing.T) {
	items := []model.SectionItem{{ID: 1, Title: "Entry", SortOrder: 0}}
	out := ProjectSection(model.PageSection{ID: 13, SectionType: "SOMETHING_NEW"}, items)

	payload, ok := out.Payload.(CardsPayload)
	require.True(t, ok)
	assert.Len(t, payload.Items, 1)
	assert.Equal(t, "SOMETHING_NEW", out.SectionType)
}

func TestProjectSharedSection(t *testing.T) {
	shared := model.SharedSection{
		ID:           21,
		SectionType:  model.SectionStats,
		SectionTitle: "Group Numbers",
	}
	items := []model.SharedSectionItem{
		{ID: 1, Title: "12", Subtitle: "Campuses", SortOrder: 1},
		{ID: 2, Title: "60k", Subtitle: "Alumni", SortOrder: 0},
	}

	out := ProjectSharedSection(shared, items, 42)
	assert.Equal(t, uint(21), out.ID)
	assert.Equal(t, 42, out.SortOrder)
	assert.Equal(t, "Group Numbers", out.Title)

	payload, ok := out.Payload.(StatsPayload)
	require.True(t, ok)
	require.Len(t, payload.Stats, 2)
	assert.Equal(t, "60k", payload.Stats[0].Value)
	assert.Equal(t, "12", payload.Stats[1].Value)
}
