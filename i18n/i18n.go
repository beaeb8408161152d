package i18n

import "strings"

// French is the site's primary language; English is a courtesy fallback.
const defaultLang = "fr"

var messages = map[string]map[string]string{
	"fr": {
		"required":          "Requis",
		"invalid_email":     "Adresse e-mail invalide",
		"too_long":          "Trop long",
		"not_an_image":      "Le fichier doit être une image",
		"image_too_large":   "L'image dépasse la taille maximale de 5 Mo",
		"no_messages":       "Aucun message pour le moment",
		"no_results":        "Aucun résultat",
		"more_equipment":    "+%d autres équipements",
		"more_items":        "+%d autres",
		"coming_soon":       "Contenu à venir",
		"others":            "Autres",
		"message_sent":      "Votre message a bien été envoyé",
		"invalid_login":     "Identifiants invalides",
		"saved":             "Enregistré",
		"deleted":           "Supprimé",
		"learn_more":        "En savoir plus",
		"our_services":      "Nos services",
		"our_products":      "Nos produits",
		"our_projects":      "Nos réalisations",
	},
	"en": {
		"required":        "Required",
		"invalid_email":   "Invalid email address",
		"too_long":        "Too long",
		"not_an_image":    "File must be an image",
		"image_too_large": "Image exceeds the 5 MB limit",
		"no_messages":     "No messages yet",
		"no_results":      "No results",
		"more_equipment":  "+%d more equipment items",
		"more_items":      "+%d more",
		"coming_soon":     "Coming soon",
		"others":          "Others",
		"message_sent":    "Your message has been sent",
		"invalid_login":   "Invalid credentials",
		"saved":           "Saved",
		"deleted":         "Deleted",
		"learn_more":      "Learn more",
		"our_services":    "Our services",
		"our_products":    "Our products",
		"our_projects":    "Our projects",
	},
}

// DetectLanguage picks fr or en from an Accept-Language header, defaulting to fr.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return defaultLang
	}
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.SplitN(tag, "-", 2)[0]
		if base == "en" {
			return "en"
		}
		if base == "fr" {
			return "fr"
		}
	}
	return defaultLang
}

// T translates code for lang. Unknown languages fall back to French;
// unknown codes fall back to the code itself so missing entries stay visible.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if lang != defaultLang {
		if s, ok := messages[defaultLang][code]; ok {
			return s
		}
	}
	return code
}
