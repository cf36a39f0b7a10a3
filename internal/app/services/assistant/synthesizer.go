// Package assistant synthesizes chat replies for the simulated backend
// without calling a real model.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/EquiStack/barn_client/internal/app/domain/chat"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/storage"
	"github.com/EquiStack/barn_client/pkg/logger"
)

// KeywordGroup maps a set of trigger keywords to a reply template. Groups are
// tested in slice order and the first match wins, so the reply for a fixed
// message is reproducible.
type KeywordGroup struct {
	Name     string
	Keywords []string
	Template string
}

// DefaultGroups returns the builtin keyword table. Order is part of the
// contract: quantity phrasing is checked before the broader feeding terms so
// "how much hay" resolves to the quantity template.
func DefaultGroups() []KeywordGroup {
	return []KeywordGroup{
		{
			Name:     "feeding-quantity",
			Keywords: []string{"how much", "how many"},
			Template: "A typical adult horse eats 1.5-2.5% of its body weight in forage per day. For an average 500 kg horse that is roughly 10-12 kg of hay daily, split across feedings.",
		},
		{
			Name:     "feeding",
			Keywords: []string{"feed", "hay", "grain", "diet", "nutrition"},
			Template: "Forage should be the foundation of the diet: free-choice hay or pasture, clean water, and a salt block. Introduce grain gradually and only as workload requires.",
		},
		{
			Name:     "health",
			Keywords: []string{"health", "sick", "vet", "lame", "colic", "injury"},
			Template: "Watch appetite, manure, and attitude daily; check temperature if anything seems off. Anything involving colic signs or acute lameness warrants a call to your veterinarian.",
		},
		{
			Name:     "training",
			Keywords: []string{"train", "exercise", "ride", "riding", "lunge"},
			Template: "Build fitness gradually: consistent short sessions beat occasional long ones. Always start with a walking warm-up and finish with a cool-down.",
		},
		{
			Name:     "about",
			Keywords: []string{"tell me about", "what is", "describe"},
			Template: "Here is what I know from the records on file. Ask about feeding, health, or training for more specific guidance.",
		},
	}
}

// Synthesizer produces deterministic assistant replies. It is a pure function
// of the latest user message and the optional horse context.
type Synthesizer struct {
	groups []KeywordGroup
	horses storage.HorseStore
	log    *logger.Logger
}

// New creates a synthesizer over the given keyword table. A nil or empty
// table falls back to DefaultGroups; horses may be nil when no entity context
// is available.
func New(groups []KeywordGroup, horses storage.HorseStore, log *logger.Logger) *Synthesizer {
	if len(groups) == 0 {
		groups = DefaultGroups()
	}
	if log == nil {
		log = logger.NewDefault("assistant")
	}
	return &Synthesizer{groups: groups, horses: horses, log: log}
}

// Reply answers the most recent user message. If horseID resolves in the
// store, the reply is prefixed with a context clause derived from the horse's
// descriptive fields.
func (s *Synthesizer) Reply(ctx context.Context, messages []chat.Message, horseID string) chat.Reply {
	latest := chat.LatestUserMessage(messages)

	var prefix string
	if horseID != "" && s.horses != nil {
		if h, err := s.horses.GetHorse(ctx, horseID); err == nil {
			prefix = contextPrefix(h)
		} else {
			s.log.Debugf("chat context horse %s not resolved: %v", horseID, err)
		}
	}

	return chat.Reply{Response: prefix + s.selectTemplate(latest)}
}

func (s *Synthesizer) selectTemplate(message string) string {
	text := strings.ToLower(message)
	for _, group := range s.groups {
		for _, kw := range group.Keywords {
			if strings.Contains(text, kw) {
				return group.Template
			}
		}
	}
	return "I can help with feeding, health, training, and scheduling questions about your horses. What would you like to know?"
}

func contextPrefix(h horse.Horse) string {
	return fmt.Sprintf("Regarding %s (%s, %s): ", h.Name, h.Breed, h.AgeDisplay)
}
