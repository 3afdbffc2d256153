package services

import (
	"encoding/json"
	"sort"

	"github.com/collegehub/cms-api/model"
)

// ProjectedSection is the public response shape of one content section.
// Payload carries the variant produced for the section's type tag.
type ProjectedSection struct {
	ID          uint        `json:"id"`
	SectionType string      `json:"section_type"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Description string      `json:"description,omitempty"`
	Background  Background  `json:"background"`
	SortOrder   int         `json:"sort_order"`
	Payload     interface{} `json:"data"`
}

// Background groups the generic styling fields shared by all variants.
type Background struct {
	Type     string `json:"type,omitempty"`
	Color    string `json:"color,omitempty"`
	Image    string `json:"image,omitempty"`
	Gradient string `json:"gradient,omitempty"`
}

// HeroPayload is the HERO variant
type HeroPayload struct {
	Images    []string `json:"images"`
	CTAText   string   `json:"cta_text,omitempty"`
	CTALink   string   `json:"cta_link,omitempty"`
	Style     string   `json:"style,omitempty"`
	TextColor string   `json:"text_color,omitempty"`
	Height    string   `json:"height,omitempty"`
}

// StatEntry is one value/label pair of the STATS and INFO_BAR variants
type StatEntry struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatsPayload is the STATS variant
type StatsPayload struct {
	Stats []StatEntry `json:"stats"`
}

// BadgeEntry is one entry of the BADGES, ACCREDITATION and INFO_BAR variants
type BadgeEntry struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// InfoBarPayload is the INFO_BAR variant: the first five items as stats,
// the remainder as accreditation badges.
type InfoBarPayload struct {
	Stats          []StatEntry  `json:"stats"`
	Accreditations []BadgeEntry `json:"accreditations"`
}

// TextPayload is the TEXT and ABOUT variant
type TextPayload struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	CTAText     string `json:"cta_text,omitempty"`
	CTALink     string `json:"cta_link,omitempty"`
}

// AccordionEntry is one expandable pair of the ACCORDION variant
type AccordionEntry struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AccordionPayload is the ACCORDION variant
type AccordionPayload struct {
	Items []AccordionEntry `json:"items"`
}

// BadgesPayload is the BADGES and ACCREDITATION variant
type BadgesPayload struct {
	Items []BadgeEntry `json:"items"`
}

// CardEntry is one entry of the generic variant
type CardEntry struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	CTAText     string `json:"cta_text,omitempty"`
	CTALink     string `json:"cta_link,omitempty"`
}

// CardsPayload is the generic variant used for every unrecognized type tag
type CardsPayload struct {
	Items []CardEntry `json:"items"`
}

const infoBarStatLimit = 5

// ProjectSection converts a stored section and its items into the
// type-specific response shape. Pure function: no I/O, inputs are not
// mutated. Items are ordered by sort_order with id breaking ties.
func ProjectSection(section model.PageSection, items []model.SectionItem) ProjectedSection {
	sorted := make([]model.SectionItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := ProjectedSection{
		ID:          section.ID,
		SectionType: section.SectionType,
		Title:       section.SectionTitle,
		Subtitle:    section.SectionSubtitle,
		Description: section.SectionDescription,
		Background: Background{
			Type:     section.BackgroundType,
			Color:    section.BackgroundColor,
			Image:    section.BackgroundImage,
			Gradient: section.BackgroundGradient,
		},
		SortOrder: section.SortOrder,
	}

	switch section.SectionType {
	case model.SectionHero:
		out.Payload = projectHero(section, sorted)
	case model.SectionStats:
		out.Payload = projectStats(sorted)
	case model.SectionInfoBar:
		out.Payload = projectInfoBar(sorted)
	case model.SectionText, model.SectionAbout:
		out.Payload = projectText(section, sorted)
	case model.SectionAccordion:
		out.Payload = projectAccordion(sorted)
	case model.SectionBadges, model.SectionAccreditation:
		out.Payload = BadgesPayload{Items: projectBadges(sorted)}
	default:
		out.Payload = projectCards(sorted)
	}

	return out
}

// ProjectSharedSection projects a shared section by mapping it onto the
// page-section shape; shared sections have no hero columns so only the
// extra_data-free variants apply.
func ProjectSharedSection(section model.SharedSection, items []model.SharedSectionItem, sortOrder int) ProjectedSection {
	mapped := make([]model.SectionItem, len(items))
	for i, it := range items {
		mapped[i] = model.SectionItem{
			ID:          it.ID,
			Title:       it.Title,
			Subtitle:    it.Subtitle,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			VideoURL:    it.VideoURL,
			CTAText:     it.CTAText,
			CTALink:     it.CTALink,
			ExtraData:   it.ExtraData,
			SortOrder:   it.SortOrder,
		}
	}
	return ProjectSection(model.PageSection{
		ID:              section.ID,
		SectionType:     section.SectionType,
		SectionTitle:    section.SectionTitle,
		SectionSubtitle: section.SectionSubtitle,
		SortOrder:       sortOrder,
	}, mapped)
}

// projectHero builds the hero payload. Image sources are probed in fixed
// priority order and concatenated with order-preserving de-duplication:
// extra_data["images"], the hero_images column, the hero_image_url column,
// extra_data["hero_image_url"], then the generic background image.
func projectHero(section model.PageSection, items []model.SectionItem) HeroPayload {
	var images []string
	seen := make(map[string]bool)
	add := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			images = append(images, url)
		}
	}

	if raw, ok := section.ExtraData["images"]; ok {
		for _, img := range toStringSlice(raw) {
			add(img)
		}
	}
	if len(section.HeroImages) > 0 {
		var cols []string
		if err := json.Unmarshal(section.HeroImages, &cols); err == nil {
			for _, img := range cols {
				add(img)
			}
		}
	}
	add(section.HeroImageURL)
	add(extraString(section.ExtraData, "hero_image_url"))
	add(section.BackgroundImage)

	ctaText := firstNonEmpty(extraString(section.ExtraData, "cta_text"), section.HeroCTAText)
	ctaLink := firstNonEmpty(extraString(section.ExtraData, "cta_link"), section.HeroCTALink)
	if ctaText == "" && ctaLink == "" && len(items) > 0 {
		ctaText = items[0].CTAText
		ctaLink = items[0].CTALink
	}

	if images == nil {
		images = []string{}
	}

	return HeroPayload{
		Images:    images,
		CTAText:   ctaText,
		CTALink:   ctaLink,
		Style:     firstNonEmpty(section.HeroStyle, extraString(section.ExtraData, "hero_style")),
		TextColor: firstNonEmpty(section.HeroTextColor, extraString(section.ExtraData, "hero_text_color"), section.BackgroundColor),
		Height:    firstNonEmpty(section.HeroHeight, extraString(section.ExtraData, "hero_height")),
	}
}

func projectStats(items []model.SectionItem) StatsPayload {
	stats := make([]StatEntry, 0, len(items))
	for _, it := range items {
		stats = append(stats, StatEntry{
			Value: it.Title,
			Label: firstNonEmpty(it.Subtitle, it.Description),
		})
	}
	return StatsPayload{Stats: stats}
}

func projectInfoBar(items []model.SectionItem) InfoBarPayload {
	payload := InfoBarPayload{
		Stats:          []StatEntry{},
		Accreditations: []BadgeEntry{},
	}
	for i, it := range items {
		if i < infoBarStatLimit {
			payload.Stats = append(payload.Stats, StatEntry{Value: it.Title, Label: it.Subtitle})
		} else {
			payload.Accreditations = append(payload.Accreditations, BadgeEntry{
				Title:       it.Title,
				Subtitle:    it.Subtitle,
				Description: it.Description,
				ImageURL:    it.ImageURL,
			})
		}
	}
	return payload
}

func projectText(section model.PageSection, items []model.SectionItem) TextPayload {
	payload := TextPayload{
		Title:       section.SectionTitle,
		Subtitle:    section.SectionSubtitle,
		Description: section.SectionDescription,
	}
	if len(items) > 0 {
		first := items[0]
		if first.Title != "" {
			payload.Title = first.Title
		}
		if first.Subtitle != "" {
			payload.Subtitle = first.Subtitle
		}
		if first.Description != "" {
			payload.Description = first.Description
		}
		payload.CTAText = first.CTAText
		payload.CTALink = first.CTALink
	}
	if payload.CTALink == "" {
		payload.CTALink = section.SectionLink
	}
	return payload
}

func projectAccordion(items []model.SectionItem) AccordionPayload {
	entries := make([]AccordionEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, AccordionEntry{
			ID:      it.ID,
			Title:   it.Title,
			Content: it.Description,
		})
	}
	return AccordionPayload{Items: entries}
}

func projectBadges(items []model.SectionItem) []BadgeEntry {
	entries := make([]BadgeEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, BadgeEntry{
			Title:       it.Title,
			Subtitle:    it.Subtitle,
			Description: it.Description,
			ImageURL:    it.ImageURL,
		})
	}
	return entries
}

func projectCards(items []model.SectionItem) CardsPayload {
	entries := make([]CardEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, CardEntry{
			ID:          it.ID,
			Title:       it.Title,
			Subtitle:    it.Subtitle,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			CTAText:     it.CTAText,
			CTALink:     it.CTALink,
		})
	}
	return CardsPayload{Items: entries}
}

// toStringSlice coerces a decoded JSON value into a string slice,
// skipping non-string members.
func toStringSlice(v interface{}) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, e := range vals {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func extraString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
