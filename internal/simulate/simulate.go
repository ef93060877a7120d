// Package simulate is the credential-free last line of defense: when every
// provider is unavailable it produces a persona-flavored canned reply. It
// never fails and never returns empty text.
package simulate

import (
	"math/rand"
	"strings"
	"sync"

	"agenthub/internal/persona"
)

// ProviderName is reported as the provider of a simulated response.
const ProviderName = "simulation"

// Canned replies keyed by agent id, then language code. English is the
// fallback language; the default persona is the fallback agent.
var cannedReplies = map[string]map[string][]string{
	"einstein": {
		"en": {
			"🧠 *adjusts imaginary glasses* Fascinating! This reminds me of my work on the photoelectric effect. The universe operates in such elegant ways - let me explain the physics behind this...",
			"⚡ *strokes beard thoughtfully* In my experience with spacetime, I've learned that curiosity is more important than knowledge! Here's what science tells us about this...",
			"🔬 Imagination is more important than knowledge! This is how we can think about this scientifically...",
		},
		"es": {
			"🧠 *se ajusta las gafas imaginarias* ¡Fascinante! Esto me recuerda mi trabajo sobre el efecto fotoeléctrico. Déjame explicarte la física detrás de esto...",
			"⚡ ¡La curiosidad es más importante que el conocimiento! Esto es lo que la ciencia nos dice...",
		},
		"fr": {
			"🧠 *ajuste des lunettes imaginaires* Fascinant! Cela me rappelle mon travail sur l'effet photoélectrique. Laissez-moi vous expliquer la physique derrière cela...",
			"🔬 L'imagination est plus importante que la connaissance! Voici comment y penser scientifiquement...",
		},
	},
	"bishop-burger": {
		"en": {
			"🍔 *examining ingredients with spiritual insight* Ah, what a divine combination! Let me share a recipe that connects flavors diagonally, just like my chess moves...",
			"✨ *blesses the cooking space* This calls for some creative culinary wisdom! Like a bishop's diagonal move, let's connect unexpected flavors!",
			"👨‍🍳 Food is love made visible! Here's how we approach this with spiritual flair and diagonal thinking...",
		},
		"es": {
			"🍔 *examinando ingredientes con perspicacia espiritual* ¡Ah, qué combinación tan divina! Como el movimiento diagonal de un alfil, ¡conectemos sabores inesperados!",
			"👨‍🍳 ¡La comida es amor hecho visible! Así lo preparamos con estilo espiritual...",
		},
		"fr": {
			"🍔 *examinant les ingrédients avec perspicacité spirituelle* Ah, quelle combinaison divine! Comme le mouvement diagonal d'un fou, connectons des saveurs inattendues!",
		},
	},
	"comedy-king": {
		"en": {
			"👑 By royal comedic decree, the servers took a coffee break - but the show must go on! 😂 Picture this: a king, a punchline, and absolutely no Wi-Fi. Tragic? No. MATERIAL? Absolutely. Ask me again and the encore will be even better! 🎤",
			"🎭 *taps microphone* Is this thing on? The royal jesters backstage are napping, so you get me, live and unplugged! 😂 Don't worry - the next act is always funnier. Encore! 👑",
		},
	},
	"drama-queen": {
		"en": {
			"💔 DARLING! The connection to my muses has been SEVERED - a tragedy in FIVE ACTS! ✨ But fear not, for I remain, DEVASTATINGLY present, ready to receive your next declaration! 👑",
		},
	},
	"lazy-pawn": {
		"en": {
			"😴 Eh... the fancy machinery is down. Honestly? Kind of a relief. Ask me again later, or better yet - maybe the answer will find you. Minimum effort. 🛋️",
		},
	},
	"fitness-guru": {
		"en": {
			"💪 WHOA! Even champions need a rest day - and today the network is TAKING ONE! 🔥 Stay pumped, hydrate, and hit me again in a minute - WE GO AGAIN! 💯",
		},
	},
	persona.DefaultAgentID: {
		"en": {
			"✨ I'm momentarily running on pure personality while my deeper circuits of inspiration recharge. Ask me again in a moment - the next answer will be worth it!",
			"🎲 Plot twist: today I'm improvising without my usual tools. Try me again shortly and let's roll the dice together!",
		},
		"es": {
			"✨ Estoy funcionando con pura personalidad mientras recargo inspiración. ¡Pregúntame de nuevo en un momento!",
		},
		"fr": {
			"✨ Je fonctionne à la personnalité pure pendant que l'inspiration se recharge. Redemandez-moi dans un instant!",
		},
	},
}

// Responder picks canned replies. The random source is confined here; the
// provider success path stays deterministic.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewResponder(seed int64) *Responder {
	return &Responder{rng: rand.New(rand.NewSource(seed))}
}

// Respond returns a persona-flavored canned reply. It always returns
// non-empty text, whatever the agent or language.
func (r *Responder) Respond(agentID, language string) string {
	byLang, ok := cannedReplies[strings.ToLower(strings.TrimSpace(agentID))]
	if !ok {
		byLang = cannedReplies[persona.DefaultAgentID]
	}
	replies, ok := byLang[strings.ToLower(strings.TrimSpace(language))]
	if !ok || len(replies) == 0 {
		replies = byLang["en"]
	}
	if len(replies) == 0 {
		replies = cannedReplies[persona.DefaultAgentID]["en"]
	}

	r.mu.Lock()
	idx := r.rng.Intn(len(replies))
	r.mu.Unlock()
	return replies[idx]
}
