package htmlquery

import (
	"github.com/antchfx/xpath"
	"github.com/fwojciec/waio"
)

// Queries used by the scanner.
const (
	// MarkerQuery matches elements with any data-ai-* attribute.
	MarkerQuery = `//*[@*[starts-with(name(), "data-ai-")]]`

	// AnnotatedQuery also matches elements carrying only data-importance.
	AnnotatedQuery = `//*[@*[starts-with(name(), "data-ai-") or name() = "data-importance"]]`

	// MainScopeQuery matches primary-content containers.
	MainScopeQuery = `//main | //article | //*[@data-ai-entity-type="Main"] | //*[@data-ai-intent="article"]`

	// CriticalScopeQuery matches containers marked critical.
	CriticalScopeQuery = `//*[@data-importance="critical"]`
)

var (
	markerExpr    = xpath.MustCompile(MarkerQuery)
	annotatedExpr = xpath.MustCompile(AnnotatedQuery)
	mainExpr      = xpath.MustCompile(MainScopeQuery)
	criticalExpr  = xpath.MustCompile(CriticalScopeQuery)
)

// Ensure Scanner implements waio.MarkerScanner at compile time.
var _ waio.MarkerScanner = (*Scanner)(nil)

// Scanner finds structured markers using XPath queries.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Detect reports whether any element carries a data-ai-* attribute.
func (s *Scanner) Detect(rawHTML string) (bool, error) {
	tree, err := Parse(rawHTML)
	if err != nil {
		return false, err
	}
	return len(tree.query(markerExpr)) > 0, nil
}

// Scan returns every annotated element in document order with its scope
// flags resolved.
func (s *Scanner) Scan(rawHTML string) ([]waio.AnnotatedElement, error) {
	tree, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	nodes := tree.query(annotatedExpr)
	if len(nodes) == 0 {
		return nil, nil
	}

	mainScope := tree.within(mainExpr)
	criticalScope := tree.within(criticalExpr)

	elements := make([]waio.AnnotatedElement, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, waio.AnnotatedElement{
			Tag:        n.Data,
			Attrs:      Attrs(n),
			Text:       TextContent(n),
			InMain:     mainScope.Contains(n),
			InCritical: criticalScope.Contains(n),
		})
	}
	return elements, nil
}
