package waio

import "strings"

// Bot identifies a simulated crawler.
type Bot string

// Supported bots.
const (
	BotGPTBot         Bot = "GPTBot"
	BotClaudeBot      Bot = "ClaudeBot"
	BotChatGPTUser    Bot = "ChatGPT-User"
	BotGooglebot      Bot = "Googlebot"
	BotGoogleExtended Bot = "Google-Extended"
	BotBingbot        Bot = "Bingbot"
	BotPerplexity     Bot = "PerplexityBot"
	BotYouBot         Bot = "YouBot"
	BotMeta           Bot = "MetaBot"
)

// DefaultBot is used when no bot is specified.
const DefaultBot = BotGPTBot

// BotConfig describes how a bot fetches pages.
type BotConfig struct {
	Bot       Bot    `json:"bot"`
	UserAgent string `json:"userAgent"`

	// Dynamic bots render JavaScript in a headless browser.
	Dynamic bool `json:"dynamic"`

	// Headers are sent in addition to User-Agent.
	Headers map[string]string `json:"headers,omitempty"`
}

// Description returns a short description of the fetch strategy.
func (c BotConfig) Description() string {
	if c.Dynamic {
		return "JavaScript-enabled crawler"
	}
	return "Static HTML crawler"
}

// RequestHeaders returns all headers the bot sends, User-Agent included.
func (c BotConfig) RequestHeaders() map[string]string {
	headers := make(map[string]string, len(c.Headers)+1)
	headers["User-Agent"] = c.UserAgent
	for k, v := range c.Headers {
		headers[k] = v
	}
	return headers
}

const (
	acceptHTML      = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptHTMLImage = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
)

var botConfigs = []BotConfig{
	{
		Bot:       BotGPTBot,
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; GPTBot/1.2; +https://openai.com/gptbot)",
		Headers: map[string]string{
			"Accept":          acceptHTML,
			"Accept-Language": "en-US,en;q=0.5",
			"Accept-Encoding": "gzip, deflate, br",
			"Connection":      "keep-alive",
		},
	},
	{
		Bot:       BotClaudeBot,
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; ClaudeBot/1.0; +https://www.anthropic.com/claude-bot)",
		Headers: map[string]string{
			"Accept":          acceptHTML,
			"Accept-Language": "en-US,en;q=0.5",
			"Accept-Encoding": "gzip, deflate, br",
		},
	},
	{
		Bot:       BotChatGPTUser,
		UserAgent: "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; ChatGPT-User/1.0; +https://openai.com/bot)",
		Dynamic:   true,
		Headers: map[string]string{
			"Accept":          acceptHTMLImage,
			"Accept-Language": "en-US,en;q=0.9",
		},
	},
	{
		Bot:       BotGooglebot,
		UserAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		Headers: map[string]string{
			"Accept":          acceptHTML,
			"Accept-Encoding": "gzip, deflate",
		},
	},
	{
		Bot:       BotGoogleExtended,
		UserAgent: "Mozilla/5.0 (Linux; Android 6.0.1; Nexus 5X Build/MMB29P) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/W.X.Y.Z Mobile Safari/537.36 (compatible; Google-Extended)",
		Headers: map[string]string{
			"Accept":          acceptHTML,
			"Accept-Encoding": "gzip, deflate",
		},
	},
	{
		Bot:       BotBingbot,
		UserAgent: "Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)",
		Headers: map[string]string{
			"Accept": acceptHTML,
		},
	},
	{
		Bot:       BotPerplexity,
		UserAgent: "Mozilla/5.0 (compatible; PerplexityBot/1.0; +https://www.perplexity.ai/proximity)",
		Headers: map[string]string{
			"Accept": acceptHTML,
		},
	},
	{
		Bot:       BotYouBot,
		UserAgent: "Mozilla/5.0 (compatible; YouBot/1.0; +https://you.com/static/gethelp/developers/bot)",
	},
	{
		Bot:       BotMeta,
		UserAgent: "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
	},
}

// Bots returns the configuration of every supported bot.
func Bots() []BotConfig {
	out := make([]BotConfig, len(botConfigs))
	copy(out, botConfigs)
	return out
}

// LookupBot returns the configuration for a bot.
func LookupBot(b Bot) (BotConfig, bool) {
	for _, c := range botConfigs {
		if c.Bot == b {
			return c, true
		}
	}
	return BotConfig{}, false
}

// ParseBot resolves a bot name case-insensitively.
// Returns EINVALID for unknown bots.
func ParseBot(s string) (BotConfig, error) {
	for _, c := range botConfigs {
		if strings.EqualFold(string(c.Bot), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	names := make([]string, 0, len(botConfigs))
	for _, c := range botConfigs {
		names = append(names, string(c.Bot))
	}
	return BotConfig{}, Errorf(EINVALID, "invalid bot type %q, available: %s", s, strings.Join(names, ", "))
}
