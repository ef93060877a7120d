package prompt

import "strings"

type languagePattern struct {
	code  string
	words []string
}

// Ordered so ties resolve toward the more widely used languages.
var languagePatterns = []languagePattern{
	{"es", []string{"hola", "gracias", "por favor", "como estas", "buenos dias", "buenas", "que tal", "adios", "donde", "porque", "quiero", "puedes"}},
	{"fr", []string{"bonjour", "merci", "s'il vous plait", "comment allez", "salut", "au revoir", "pourquoi", "je suis", "tu es", "qu'est-ce"}},
	{"de", []string{"hallo", "danke", "bitte", "guten tag", "wie geht", "auf wiedersehen", "warum", "ich bin", "du bist"}},
	{"it", []string{"ciao", "grazie", "per favore", "buongiorno", "come stai", "arrivederci", "perche", "io sono"}},
	{"pt", []string{"ola", "obrigado", "obrigada", "por favor", "bom dia", "como vai", "tchau", "voce"}},
	{"hi", []string{"namaste", "dhanyavad", "kaise ho", "aap", "kya hai", "theek hai"}},
	{"th", []string{"sawasdee", "khob khun", "sabai dee", "mai pen rai", "krab", "kha"}},
}

// DetectLanguage makes a cheap word-pattern guess at the message language.
// It is advisory only and defaults to English.
func DetectLanguage(text string) string {
	lowered := " " + strings.ToLower(strings.TrimSpace(text)) + " "
	if strings.TrimSpace(text) == "" {
		return "en"
	}

	best := "en"
	bestScore := 0
	for _, p := range languagePatterns {
		score := 0
		for _, w := range p.words {
			if strings.Contains(lowered, " "+w) {
				score++
			}
		}
		if score > bestScore {
			best = p.code
			bestScore = score
		}
	}
	return best
}
