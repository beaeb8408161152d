// Package branding holds the static fallback tables for entity colors and
// images. The source data writes entity codes inconsistently ("REVI" and
// "REV'I" both occur), so every lookup goes through one shared normalization.
// Stored values always win; these tables are consulted only for missing data.
package branding

import (
	"strings"
	"unicode"

	"github.com/groupebh/gbh-backend/internal/models"
)

const (
	// FallbackColor is the final default when even the code is unknown.
	FallbackColor = "#1A1A2E"
	// FallbackImage is the final default asset.
	FallbackImage = "/static/img/default-hero.jpg"
)

var defaultColors = map[string]string{
	"RBF":    "#C74634",
	"RIC":    "#1F6FB2",
	"REVI":   "#2E8B57",
	"RBA":    "#D4A017",
	"GROUPE": "#1A1A2E",
}

var defaultImages = map[string]string{
	"RBF":    "/static/img/rbf-hero.jpg",
	"RIC":    "/static/img/ric-hero.jpg",
	"REVI":   "/static/img/revi-hero.jpg",
	"RBA":    "/static/img/rba-hero.jpg",
	"GROUPE": "/static/img/groupe-hero.jpg",
}

// Normalize folds an entity code for lookup: uppercase, every letter or
// digit kept, everything else (apostrophes, dashes, spaces) dropped.
func Normalize(code string) string {
	var b strings.Builder
	for _, r := range code {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// DefaultColor returns the brand color for an entity code.
func DefaultColor(code string) string {
	if c, ok := defaultColors[Normalize(code)]; ok {
		return c
	}
	return FallbackColor
}

// DefaultImage returns the hero image for an entity code.
func DefaultImage(code string) string {
	if img, ok := defaultImages[Normalize(code)]; ok {
		return img
	}
	return FallbackImage
}

// DisplayColor resolves the color to render for an entity: the stored
// primary color when present, the registry default otherwise.
func DisplayColor(e *models.BusinessEntity) string {
	if e == nil {
		return FallbackColor
	}
	if strings.TrimSpace(e.ColorPrimary) != "" {
		return e.ColorPrimary
	}
	return DefaultColor(e.Code)
}

// DisplayImage resolves the image to render for an entity.
func DisplayImage(e *models.BusinessEntity) string {
	if e == nil {
		return FallbackImage
	}
	if strings.TrimSpace(e.LogoURL) != "" {
		return e.LogoURL
	}
	return DefaultImage(e.Code)
}
