package chat

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
	"github.com/yojanadost/yojana/internal/usecase/pipeline"
)

// Rule names reported with every reply.
const (
	RuleEmpty    = "empty"
	RuleLoading  = "loading"
	RuleCategory = "category"
	RuleGreeting = "greeting"
	RuleHelp     = "help"
	RuleThanks   = "thanks"
	RuleSearch   = "search"
	RuleRemote   = "remote"
	RuleFallback = "fallback"
)

const (
	emptyText       = "Please enter a query."
	loadingText     = "I'm still loading scheme data. Please try again in a moment."
	unavailableText = "Smart assistant is currently unavailable. Please try again later."
	greetingText    = "Hello! I'm here to help you find government schemes. You can ask me about schemes for farmers, education, women, health, business, housing, or any other category you're interested in."
	thanksText      = "You're welcome! Feel free to ask if you need more information about any government schemes."
	helpText        = "I can help you find government schemes based on your needs. Try asking about:\n" +
		"- Schemes for farmers\n" +
		"- Education benefits\n" +
		"- Women empowerment programs\n" +
		"- Health schemes\n" +
		"- Business loans\n" +
		"- Housing schemes\n" +
		"- Employment programs\n\n" +
		"What would you like to know more about?"
)

// categoryAlias maps message keywords to a dataset category. Order is significant.
type categoryAlias struct {
	category string
	keywords []string
}

var categoryAliases = []categoryAlias{
	{"Agriculture", []string{"farmer", "kisan", "krishi", "agriculture"}},
	{"Education", []string{"education", "student", "scholarship"}},
	{"Women", []string{"women", "female", "mahila", "ladies"}},
	{"Health", []string{"health", "medical", "hospital", "insurance"}},
	{"Business", []string{"business", "loan", "startup"}},
	{"Pension", []string{"pension", "elderly"}},
	{"Housing", []string{"housing", "home", "awas", "pmay"}},
	{"Employment", []string{"employment", "job"}},
	{"Rural", []string{"rural"}},
	{"Digital", []string{"digital"}},
}

var (
	greetingWords = []string{"hello", "hi", "hey", "namaste"}
	helpWords     = []string{"help"}
	thanksWords   = []string{"thank", "thanks"}
)

// turn is one message with the dataset snapshot it is answered against.
type turn struct {
	raw     string
	folded  string
	words   []string
	schemes []scheme.Scheme
	loaded  bool
	found   []scheme.Scheme
}

// Reply is the agent's answer to one message.
type Reply struct {
	Text    string
	Rule    string
	Schemes []scheme.Scheme
	Link    string
}

// rule is one entry of the ordered rule table. The first matching rule answers.
type rule struct {
	name    string
	match   func(t *turn) bool
	respond func(ctx context.Context, t *turn) Reply
}

func (a *Agent) rules() []rule {
	rules := []rule{
		{RuleEmpty, func(t *turn) bool { return t.folded == "" }, textReply(RuleEmpty, emptyText)},
		{RuleCategory, matchesCategory, a.respondCategory},
		{RuleGreeting, hasWord(greetingWords), textReply(RuleGreeting, greetingText)},
		{RuleHelp, hasWord(helpWords), textReply(RuleHelp, helpText)},
		{RuleThanks, hasWord(thanksWords), textReply(RuleThanks, thanksText)},
		{RuleSearch, a.matchesSearch, a.respondSearch},
	}
	if a.remote != nil {
		rules = append(rules, rule{RuleRemote, func(*turn) bool { return true }, a.respondRemote})
	}
	return append(rules, rule{RuleFallback, func(*turn) bool { return true }, a.respondFallback})
}

func textReply(name, text string) func(context.Context, *turn) Reply {
	return func(context.Context, *turn) Reply {
		return Reply{Text: text, Rule: name}
	}
}

func hasWord(words []string) func(t *turn) bool {
	return func(t *turn) bool {
		for _, w := range t.words {
			if slices.Contains(words, w) {
				return true
			}
		}
		return false
	}
}

func matchesCategory(t *turn) bool {
	_, ok := matchAlias(t.folded)
	return ok
}

func matchAlias(folded string) (string, bool) {
	for _, alias := range categoryAliases {
		for _, kw := range alias.keywords {
			if strings.Contains(folded, kw) {
				return alias.category, true
			}
		}
	}
	return "", false
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (a *Agent) respondCategory(_ context.Context, t *turn) Reply {
	if !t.loaded {
		return Reply{Text: loadingText, Rule: RuleLoading}
	}
	category, _ := matchAlias(t.folded)

	var found []scheme.Scheme
	for _, s := range t.schemes {
		if strings.EqualFold(s.Category(), category) {
			found = append(found, s)
		}
	}

	link := "/schemes?category=" + url.QueryEscape(category)
	if len(found) == 0 {
		return Reply{
			Text: fmt.Sprintf("I couldn't find specific schemes for %s. However, I can help you search for other categories. "+
				"Try asking about farmers, education, women, health, business, housing, or employment schemes.", category),
			Rule: RuleCategory,
			Link: link,
		}
	}
	return a.listReply(RuleCategory, fmt.Sprintf("I found %d schemes for %s:", len(found), category), found, link)
}

// chatSearchFields are the fields the search rule matches.
var chatSearchFields = []query.Field{query.FieldTitle, query.FieldDescription, query.FieldKeywords}

// matchesSearch records substring matches in dataset order.
func (a *Agent) matchesSearch(t *turn) bool {
	if !t.loaded {
		return true
	}
	p, err := pipeline.New(t.schemes, pipeline.WithSearchFields(chatSearchFields...))
	if err != nil {
		return false
	}
	p.SetSearchTerm(t.raw)
	t.found = p.Matching()
	return len(t.found) > 0
}

func (a *Agent) respondSearch(_ context.Context, t *turn) Reply {
	if !t.loaded {
		return Reply{Text: loadingText, Rule: RuleLoading}
	}
	link := "/schemes?search=" + url.QueryEscape(t.raw)
	return a.listReply(RuleSearch, fmt.Sprintf("I found %d schemes matching %q:", len(t.found), t.raw), t.found, link)
}

func (a *Agent) listReply(name, header string, found []scheme.Scheme, link string) Reply {
	shown := found[:min(len(found), a.maxListed)]

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for i, s := range shown {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title())
		if s.Description() != "" {
			b.WriteString(s.Description())
			b.WriteString("\n")
		}
		if lvl := s.Details().Level; lvl != "" {
			fmt.Fprintf(&b, "Level: %s\n", lvl)
		}
		b.WriteString("\n")
	}
	if rest := len(found) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "And %d more schemes available. ", rest)
	}
	fmt.Fprintf(&b, "View all: %s", link)

	return Reply{Text: b.String(), Rule: name, Schemes: slices.Clone(shown), Link: link}
}

func (a *Agent) respondRemote(ctx context.Context, t *turn) Reply {
	text, err := a.remote.Reply(ctx, t.raw)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty remote reply")
	}
	if err != nil {
		a.logger.Warn("remote chat responder failed", zap.Error(err))
		return Reply{Text: unavailableText, Rule: RuleRemote}
	}
	return Reply{Text: strings.TrimSpace(text), Rule: RuleRemote}
}

func (a *Agent) respondFallback(_ context.Context, t *turn) Reply {
	if !t.loaded {
		return Reply{Text: loadingText, Rule: RuleLoading}
	}
	var categories []string
	for _, s := range t.schemes {
		if s.Category() != "" && !slices.Contains(categories, s.Category()) {
			categories = append(categories, s.Category())
		}
	}
	text := fmt.Sprintf("I couldn't find schemes matching %q.", t.raw)
	if len(categories) > 0 {
		text += " Try asking about specific categories like " + strings.Join(categories, ", ") + "."
	}
	return Reply{Text: text, Rule: RuleFallback}
}
