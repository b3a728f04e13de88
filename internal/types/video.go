package types

import (
	"strings"
	"time"
)

// WatchURLPrefix is the public watch page prefix for a video id.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// WatchURL returns the public watch page URL for a video.
func WatchURL(videoID string) string {
	return WatchURLPrefix + videoID
}

// CaptionSegment is one timed caption event.
type CaptionSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// WorkItem is one video's cleaned text flowing into the extraction stage.
type WorkItem struct {
	VideoID          string
	URL              string
	CleanDescription string
	CleanCaptions    string
	CaptionSegments  []CaptionSegment
}

// QualityReport summarizes how useful a cleaned text is for extraction.
type QualityReport struct {
	Length             int  `json:"length"`
	WordCount          int  `json:"word_count"`
	HasCookingKeywords bool `json:"has_cooking_keywords"`
	QualityScore       int  `json:"quality_score"`
}

// TextQuality holds the quality reports written by the cleaning stage.
type TextQuality struct {
	Description     QualityReport `json:"description"`
	Captions        QualityReport `json:"captions"`
	PreferredSource string        `json:"preferred_source"`
}

// Metadata carries per-stage timestamps and bookkeeping.
type Metadata struct {
	CollectedAt          *time.Time   `json:"collected_at,omitempty"`
	CleanedAt            *time.Time   `json:"cleaned_at,omitempty"`
	ExtractedAt          *time.Time   `json:"extracted_at,omitempty"`
	CaptionMethod        string       `json:"caption_method,omitempty"`
	CaptionSegmentsCount int          `json:"caption_segments_count"`
	TextQuality          *TextQuality `json:"text_quality,omitempty"`
	ExtractionRunID      string       `json:"extraction_run_id,omitempty"`
}

// VideoDocument is the JSON document stored per video.
//
// The text fields are pointers so that an empty cleaned string is still
// written: pending-stage selection relies on key presence, not content.
type VideoDocument struct {
	VideoID          string           `json:"video_id"`
	Title            string           `json:"title"`
	URL              string           `json:"url"`
	ImageURL         string           `json:"image_url"`
	RawDescription   *string          `json:"raw_description,omitempty"`
	RawCaptions      *string          `json:"raw_captions,omitempty"`
	CaptionsSegments []CaptionSegment `json:"captions_segments,omitempty"`
	CleanDescription *string          `json:"clean_description,omitempty"`
	CleanCaptions    *string          `json:"clean_captions,omitempty"`
	DishName         string           `json:"dish_name,omitempty"`
	Category         string           `json:"category,omitempty"`
	Ingredients      []Ingredient     `json:"ingredients,omitempty"`
	Recipe           []RecipeStep     `json:"recipe,omitempty"`
	Difficulty       string           `json:"difficulty,omitempty"`
	CookingTime      string           `json:"cooking_time,omitempty"`
	Metadata         Metadata         `json:"metadata"`
}

// IsCleaned reports whether both cleaned text fields are present.
func (d *VideoDocument) IsCleaned() bool {
	return d.CleanDescription != nil && d.CleanCaptions != nil
}

// IsExtracted reports whether the recipe fields are present.
func (d *VideoDocument) IsExtracted() bool {
	return d.DishName != "" && len(d.Ingredients) > 0 && len(d.Recipe) > 0
}

// WorkItem builds the extraction input for this document.
func (d *VideoDocument) WorkItem() WorkItem {
	item := WorkItem{
		VideoID:         d.VideoID,
		URL:             d.URL,
		CaptionSegments: d.CaptionsSegments,
	}
	if item.URL == "" {
		item.URL = WatchURL(d.VideoID)
	}
	if d.CleanDescription != nil {
		item.CleanDescription = strings.TrimSpace(*d.CleanDescription)
	}
	if d.CleanCaptions != nil {
		item.CleanCaptions = strings.TrimSpace(*d.CleanCaptions)
	}
	return item
}

// Finalize applies an extracted recipe and drops every raw and intermediate
// text field. The document must not be reused as extraction input afterwards.
func (d *VideoDocument) Finalize(recipe *ExtractedRecipe, runID string, at time.Time) {
	d.DishName = recipe.DishName
	d.Category = recipe.Category
	d.Ingredients = recipe.Ingredients
	d.Recipe = recipe.Recipe
	d.Difficulty = recipe.Difficulty
	d.CookingTime = recipe.CookingTime

	d.RawDescription = nil
	d.RawCaptions = nil
	d.CaptionsSegments = nil
	d.CleanDescription = nil
	d.CleanCaptions = nil

	extractedAt := at.UTC()
	d.Metadata.ExtractedAt = &extractedAt
	d.Metadata.ExtractionRunID = runID
}

// SkipRecord is an append-only note that a video was rejected.
type SkipRecord struct {
	VideoID   string    `json:"video_id"`
	Reason    string    `json:"reason"`
	URL       string    `json:"url"`
	SkippedAt time.Time `json:"skipped_at"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
