package waio

import (
	"fmt"
	"slices"
	"strings"
)

// Score weights for structured selection.
const (
	ScoreScopeMain   = 50
	ScoreCritical    = 100
	ScoreMatchDirect = 100
	ScoreMatchEntity = 50
)

// MatchKind tags how a candidate matched its field.
type MatchKind int

// Match kinds.
const (
	// DirectMatch means the element carries the field's own attribute.
	DirectMatch MatchKind = iota + 1

	// EntityTypeMatch means the element's entity type names the field.
	EntityTypeMatch
)

// Candidate is a possible value for a field found during selection.
type Candidate struct {
	Value  string
	Score  int
	Reason string
	Kind   MatchKind
}

// Explain formats the candidate for diagnostics.
func (c Candidate) Explain() string {
	return fmt.Sprintf("%s (Score: %d)", c.Reason, c.Score)
}

// fieldRule describes how elements are matched to one field.
type fieldRule struct {
	field Field

	// direct attributes in order of preference.
	direct []string

	// keywords matched as substrings of the entity type.
	keywords     []string
	entityReason string
}

var fieldRules = []fieldRule{
	{
		field:        FieldTitle,
		direct:       []string{AttrTitle},
		keywords:     []string{"Title"},
		entityReason: "Entity Type match (Title)",
	},
	{
		field:        FieldSummary,
		direct:       []string{AttrSummary, AttrDescription},
		keywords:     []string{"Summary", "Description"},
		entityReason: "Entity Type match (Summary/Desc)",
	},
	{
		field:        FieldMainContent,
		direct:       []string{AttrContent, AttrMain, AttrArticle},
		keywords:     []string{"Article", "Main", "Content"},
		entityReason: "Entity Type match (Article/Main)",
	},
}

// match returns the candidate the element contributes to the rule's field.
// A direct attribute pre-empts an entity type match.
func (r fieldRule) match(e *AnnotatedElement, base int) (Candidate, bool) {
	for _, name := range r.direct {
		if _, ok := e.Attr(name); !ok {
			continue
		}
		return Candidate{
			Value:  e.value(name),
			Score:  base + ScoreMatchDirect,
			Reason: "Direct " + name,
			Kind:   DirectMatch,
		}, true
	}

	entityType, ok := e.Attr(AttrEntityType)
	if !ok {
		return Candidate{}, false
	}
	for _, kw := range r.keywords {
		if strings.Contains(entityType, kw) {
			return Candidate{
				Value:  e.value(AttrEntityType),
				Score:  base + ScoreMatchEntity,
				Reason: r.entityReason,
				Kind:   EntityTypeMatch,
			}, true
		}
	}
	return Candidate{}, false
}

// value returns the trimmed attribute value, or the element text when the
// attribute is empty. Entity-type matches take the entity type itself.
func (e *AnnotatedElement) value(name string) string {
	v, _ := e.Attr(name)
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return e.Text
}

// BaseScore returns the scope and importance score of an element.
func BaseScore(e *AnnotatedElement) int {
	score := 0
	if e.InMain {
		score += ScoreScopeMain
	}
	if v, _ := e.Attr(AttrImportance); v == ImportanceCritical || e.InCritical {
		score += ScoreCritical
	}
	return score
}

// Candidates returns the candidate pool of every core field. Pools are in
// document order.
func Candidates(elements []AnnotatedElement) map[Field][]Candidate {
	pools := make(map[Field][]Candidate, len(fieldRules))
	for i := range elements {
		e := &elements[i]
		base := BaseScore(e)
		for _, rule := range fieldRules {
			c, ok := rule.match(e, base)
			if !ok || c.Value == "" {
				continue
			}
			pools[rule.field] = append(pools[rule.field], c)
		}
	}
	return pools
}

// Select picks the winning candidate of every field that has one.
// The highest score wins; on equal scores the candidate that appears
// first in the document wins.
func Select(elements []AnnotatedElement) map[Field]Candidate {
	winners := make(map[Field]Candidate)
	for field, pool := range Candidates(elements) {
		if len(pool) == 0 {
			continue
		}
		ranked := slices.Clone(pool)
		slices.SortStableFunc(ranked, func(a, b Candidate) int {
			return b.Score - a.Score
		})
		winners[field] = ranked[0]
	}
	return winners
}

// FoundAttributes returns every marker-prefixed attribute on the elements,
// in document order. The importance attribute is not included.
func FoundAttributes(elements []AnnotatedElement) []Attr {
	var found []Attr
	for _, e := range elements {
		for _, a := range e.Attrs {
			if strings.HasPrefix(a.Name, MarkerPrefix) {
				found = append(found, a)
			}
		}
	}
	return found
}
