package waio

import "strings"

// PreferenceProfile describes which schema categories and attributes a bot
// prioritizes.
type PreferenceProfile struct {
	Categories []string `yaml:"categories"`
	Attributes []string `yaml:"attributes"`

	// HeuristicPenalty scales heuristic matches. Currently always 1.0.
	HeuristicPenalty float64 `yaml:"heuristicPenalty"`
}

// ProfileTable maps bots to preference profiles. It is read-only after
// construction and safe for concurrent use.
type ProfileTable struct {
	profiles map[Bot]PreferenceProfile
	fallback PreferenceProfile
}

// NewProfileTable returns a table over the given profiles. Bots missing from
// the map resolve to fallback.
func NewProfileTable(profiles map[Bot]PreferenceProfile, fallback PreferenceProfile) *ProfileTable {
	t := &ProfileTable{
		profiles: make(map[Bot]PreferenceProfile, len(profiles)),
		fallback: normalizeProfile(fallback),
	}
	for bot, p := range profiles {
		t.profiles[bot] = normalizeProfile(p)
	}
	return t
}

// DefaultProfileTable returns the built-in priority matrix.
func DefaultProfileTable() *ProfileTable {
	return NewProfileTable(map[Bot]PreferenceProfile{
		BotGPTBot: {
			Categories: []string{"FAQPage", "Article", "Product"},
			Attributes: []string{"mainEntity", "acceptedAnswer"},
		},
		BotClaudeBot: {
			Categories: []string{"Article", "FAQPage", "Review"},
			Attributes: []string{"author", "datePublished"},
		},
		BotPerplexity: {
			Categories: []string{"Article", "FAQPage", "Review"},
			Attributes: []string{"citation", "breadcrumb"},
		},
		BotGoogleExtended: {
			Categories: []string{"FAQPage", "Article", "Review", "Product"},
		},
		BotBingbot: {
			Categories: []string{"Product", "LocalBusiness", "Review"},
			Attributes: []string{"offers", "price"},
		},
		BotGooglebot:   {},
		BotChatGPTUser: {},
		BotYouBot:      {},
		BotMeta:        {},
	}, PreferenceProfile{})
}

// Profile returns the profile for a bot, or the fallback profile when the
// bot is unknown.
func (t *ProfileTable) Profile(bot Bot) PreferenceProfile {
	if p, ok := t.profiles[bot]; ok {
		return p
	}
	return t.fallback
}

// Modifier returns the cognitive speedup multiplier for structured data
// found on a page. Values above 1.0 mean the bot gets through the page
// faster. Returns EINVALID for an unknown mode.
func (t *ProfileTable) Modifier(bot Bot, mode ComparisonMode, found []Attr) (float64, error) {
	mm, ok := modeModifiers[mode]
	if !ok {
		return 0, Errorf(EINVALID, "invalid comparison mode %q", string(mode))
	}

	modifier := mm.base
	if t.prefers(bot, found) {
		modifier *= mm.preferred
	}
	return modifier, nil
}

// prefers reports whether any of the bot's categories appears in the
// names or values of the found attributes.
func (t *ProfileTable) prefers(bot Bot, found []Attr) bool {
	if len(found) == 0 {
		return false
	}

	names := make([]string, 0, len(found))
	values := make([]string, 0, len(found))
	for _, a := range found {
		names = append(names, a.Name)
		values = append(values, a.Value)
	}
	joinedNames := strings.ToLower(strings.Join(names, " "))
	joinedValues := strings.ToLower(strings.Join(values, " "))

	for _, category := range t.Profile(bot).Categories {
		c := strings.ToLower(category)
		if c == "" {
			continue
		}
		if strings.Contains(joinedNames, c) || strings.Contains(joinedValues, c) {
			return true
		}
	}
	return false
}

func normalizeProfile(p PreferenceProfile) PreferenceProfile {
	if p.HeuristicPenalty == 0 {
		p.HeuristicPenalty = 1.0
	}
	p.Categories = append([]string(nil), p.Categories...)
	p.Attributes = append([]string(nil), p.Attributes...)
	return p
}
