// Package sections builds the dynamic page sections (services, products,
// projects) rendered on entity pages. The grouping and truncation rules here
// are the contract the public pages rely on: categories in display order,
// empty categories dropped, uncategorized items shown only when no category
// has members, and hard display caps that surface a "+N autres" label rather
// than silently dropping items.
package sections

import (
	"fmt"
	"sort"

	"github.com/groupebh/gbh-backend/i18n"
	"github.com/groupebh/gbh-backend/internal/models"
)

type Kind string

const (
	KindServices Kind = "services"
	KindProducts Kind = "products"
	KindProjects Kind = "projects"
)

// EmptyMode picks the behavior when a section has no content: public
// marketing sections omit themselves, admin previews show a placeholder.
type EmptyMode string

const (
	OmitWhenEmpty        EmptyMode = "omit"
	PlaceholderWhenEmpty EmptyMode = "placeholder"
)

// Display caps. A category block shows at most CardCap cards; an equipment
// checklist inside a card shows at most EquipmentCap lines.
const (
	CardCap      = 8
	EquipmentCap = 5
)

type Config struct {
	Title    string
	Subtitle string
	ShowCTA  bool
	CTALabel string
	CTALink  string
	Limit    int // projects only; 0 = no limit
	OnEmpty  EmptyMode
	Lang     string
}

// Card is one rendered item, already flattened from its source model.
type Card struct {
	ID          uint   `json:"id"`
	CategoryID  *uint  `json:"categoryId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Meta        string `json:"meta,omitempty"` // prix, localisation, année...
}

// Group is one category block after filtering and truncation.
type Group struct {
	CategoryID *uint  `json:"categoryId,omitempty"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	Cards      []Card `json:"cards"`
	Total      int    `json:"total"`
	MoreLabel  string `json:"moreLabel,omitempty"`
}

type CTA struct {
	Label string `json:"label"`
	Link  string `json:"link,omitempty"` // empty => plain non-navigating button
}

type Section struct {
	Kind        Kind    `json:"kind"`
	EntityCode  string  `json:"entityCode,omitempty"`
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle,omitempty"`
	Color       string  `json:"color"`
	Groups      []Group `json:"groups"`
	Placeholder string  `json:"placeholder,omitempty"`
	CTA         *CTA    `json:"cta,omitempty"`
}

// GroupCards applies the grouping algorithm. Categories are walked in
// display order; a category keeps only cards whose CategoryID matches and is
// dropped when none do. Cards without a category form a final unnamed group
// that is returned only when no categorized group survived: grouped and
// uncategorized display are mutually exclusive, never merged. Cards whose
// category was deleted out from under them are different: they always stay
// visible, collected into a synthesized trailing bucket next to the
// categorized groups so no stored card ever disappears from the page.
func GroupCards(cards []Card, categories []models.Category) []Group {
	sorted := make([]models.Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	known := make(map[uint]bool, len(sorted))
	for _, cat := range sorted {
		known[cat.ID] = true
	}

	var groups []Group
	for _, cat := range sorted {
		var members []Card
		for _, c := range cards {
			if c.CategoryID != nil && *c.CategoryID == cat.ID {
				members = append(members, c)
			}
		}
		if len(members) == 0 {
			continue
		}
		catID := cat.ID
		groups = append(groups, Group{
			CategoryID: &catID,
			Name:       cat.Name,
			Color:      cat.Color,
			Cards:      members,
			Total:      len(members),
		})
	}

	var leftover []Card // nil or dangling category, in card order
	var dangling []Card
	for _, c := range cards {
		if c.CategoryID == nil {
			leftover = append(leftover, c)
		} else if !known[*c.CategoryID] {
			leftover = append(leftover, c)
			dangling = append(dangling, c)
		}
	}

	if len(groups) > 0 {
		if len(dangling) > 0 {
			groups = append(groups, Group{Cards: dangling, Total: len(dangling)})
		}
		return groups
	}
	if len(leftover) == 0 {
		return nil
	}
	return []Group{{Cards: leftover, Total: len(leftover)}}
}

// Truncate caps a group's cards and records the overflow in MoreLabel.
// Total keeps the untruncated count so nothing is silently dropped.
func Truncate(g Group, limit int, labelKey, lang string) Group {
	if limit <= 0 || len(g.Cards) <= limit {
		return g
	}
	hidden := len(g.Cards) - limit
	g.Cards = g.Cards[:limit]
	g.MoreLabel = fmt.Sprintf(i18n.T(lang, labelKey), hidden)
	return g
}

// TruncateEquipment caps an equipment checklist, returning the visible lines
// and a "+N autres équipements" label when lines overflow.
func TruncateEquipment(lines []string, lang string) ([]string, string) {
	if len(lines) <= EquipmentCap {
		return lines, ""
	}
	hidden := len(lines) - EquipmentCap
	return lines[:EquipmentCap], fmt.Sprintf(i18n.T(lang, "more_equipment"), hidden)
}
