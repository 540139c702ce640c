package renderer

import (
	"golang.org/x/text/language"

	"github.com/fallinov/prez-app/internal/domain/entities"
)

// labels are the interface strings baked into a generated document
type labels struct {
	Compare       string
	WatchVideo    string
	ScrollHint    string
	ContrastBadge string
	ContrastHint  string
	NotesHint     string
	SlideTitle    string
}

var supportedLanguages = []language.Tag{language.French, language.English}

var labelSets = []labels{
	{
		Compare:       "Comparaison de poids",
		WatchVideo:    "Voir la vidéo",
		ScrollHint:    "Défiler pour commencer",
		ContrastBadge: "Contraste élevé (C)",
		ContrastHint:  "Mode contraste élevé",
		NotesHint:     "Notes de l'orateur",
		SlideTitle:    "Slide",
	},
	{
		Compare:       "Size comparison",
		WatchVideo:    "Watch the video",
		ScrollHint:    "Scroll to begin",
		ContrastBadge: "High contrast (C)",
		ContrastHint:  "High contrast mode",
		NotesHint:     "Speaker notes",
		SlideTitle:    "Slide",
	},
}

var labelMatcher = language.NewMatcher(supportedLanguages)

// resolveLanguage returns the tag for <html lang> and the closest label set.
// Unparseable tags fall back to the default language.
func resolveLanguage(lang string) (string, labels) {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.MustParse(entities.DefaultLanguage)
	}

	_, index, _ := labelMatcher.Match(tag)
	return tag.String(), labelSets[index]
}
