// internal/css/css.go
package css

import (
	"fmt"
	"strings"
)

// Property is a CSS property name (e.g. "display").
type Property string

// Value is a raw CSS value (e.g. "none", "120px").
type Value string

// Declaration is a single 'property: value' pair.
type Declaration struct {
	Property  Property
	Value     Value
	Important bool
}

// RuleSet is a set of declarations applied by one or more selector groups.
type RuleSet struct {
	SelectorGroups []SelectorGroup
	Declarations   []Declaration
}

// StyleSheet is the parsed form of one CSS source.
type StyleSheet struct {
	Rules []RuleSet
}

// SelectorGroup is a comma-separated list of selectors ("h1, h2 .title").
type SelectorGroup []ComplexSelector

// ComplexSelector is a sequence of simple selectors joined by combinators
// ("div > p").
type ComplexSelector struct {
	Selectors []SimpleSelectorWithCombinator
}

// SimpleSelectorWithCombinator pairs a simple selector with the combinator
// that precedes it.
type SimpleSelectorWithCombinator struct {
	Combinator     Combinator
	SimpleSelector SimpleSelector
}

// SimpleSelector is one compound of tag name, ID, and classes.
type SimpleSelector struct {
	TagName string
	ID      string
	Classes []string
}

// Combinator relates a simple selector to the one before it.
type Combinator int

const (
	CombinatorNone       Combinator = iota // first selector in a sequence
	CombinatorDescendant                   // whitespace
	CombinatorChild                        // >
)

// Specificity returns the (id, class, type) counts for a complex selector.
// Comma-separated groups are scored per matching complex selector, not per
// group.
func (cs ComplexSelector) Specificity() (int, int, int) {
	a, b, c := 0, 0, 0
	for _, s := range cs.Selectors {
		sa, sb, sc := s.SimpleSelector.Specificity()
		a += sa
		b += sb
		c += sc
	}
	return a, b, c
}

// Specificity returns the (id, class, type) counts for one simple selector.
func (s SimpleSelector) Specificity() (a, b, c int) {
	if s.ID != "" {
		a = 1
	}
	b = len(s.Classes)
	if s.TagName != "" && s.TagName != "*" {
		c = 1
	}
	return a, b, c
}

// IsValid reports whether the selector has at least one component.
func (s SimpleSelector) IsValid() bool {
	return s.TagName != "" || s.ID != "" || len(s.Classes) > 0
}

// Parser holds the state of the CSS parser. The parser is tolerant: at-rules,
// unknown selectors, and malformed declarations are skipped, never fatal.
type Parser struct {
	input string
	pos   int
}

func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse consumes the whole input and returns a StyleSheet.
func (p *Parser) Parse() StyleSheet {
	var rules []RuleSet
	for {
		p.consumeWhitespace()
		if p.eof() {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}
		if p.currentChar() == '@' {
			p.skipAtRule()
			continue
		}

		selectorGroups := p.parseSelectorGroups()
		if len(selectorGroups) == 0 {
			p.skipTo('{')
			if !p.eof() && p.currentChar() == '{' {
				p.skipBlock('{', '}')
			}
			continue
		}

		declarations, err := p.parseDeclarations()
		if err != nil {
			continue
		}
		if len(declarations) > 0 {
			rules = append(rules, RuleSet{SelectorGroups: selectorGroups, Declarations: declarations})
		}
	}
	return StyleSheet{Rules: rules}
}

// parseSelectorGroups parses a comma-separated list of complex selectors.
func (p *Parser) parseSelectorGroups() []SelectorGroup {
	var group SelectorGroup
	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '{' {
			break
		}
		complex := p.parseComplexSelector()
		if len(complex.Selectors) > 0 {
			group = append(group, complex)
		}

		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '{' {
			break
		}
		if p.currentChar() == ',' {
			p.consumeChar()
			continue
		}
		break
	}
	if len(group) > 0 {
		return []SelectorGroup{group}
	}
	return nil
}

// parseComplexSelector parses a run of simple selectors and combinators.
// Sibling combinators (+, ~) are not supported; a selector using them is
// skipped as unparseable rather than mis-matched.
func (p *Parser) parseComplexSelector() ComplexSelector {
	var complexSelector ComplexSelector
	combinator := CombinatorNone

	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '{' || p.currentChar() == ',' {
			break
		}

		simple, err := p.parseSimpleSelector()
		if err != nil {
			// Consume the offending character so the scan always advances.
			p.consumeChar()
			p.skipTo(' ', '>', ',', '{')
			continue
		}
		if simple.IsValid() {
			complexSelector.Selectors = append(complexSelector.Selectors, SimpleSelectorWithCombinator{
				Combinator:     combinator,
				SimpleSelector: simple,
			})
		}

		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '{' || p.currentChar() == ',' {
			break
		}

		if p.currentChar() == '>' {
			combinator = CombinatorChild
			p.consumeChar()
		} else {
			combinator = CombinatorDescendant
		}
	}
	return complexSelector
}

// parseSimpleSelector parses one compound like div#id.class1.class2.
func (p *Parser) parseSimpleSelector() (SimpleSelector, error) {
	selector := SimpleSelector{}

	if !p.eof() {
		ch := p.currentChar()
		if ch == '*' {
			p.consumeChar()
			selector.TagName = "*"
		} else if isIdentifierStart(ch) {
			selector.TagName = strings.ToLower(p.parseIdentifier())
		}
	}

loop:
	for !p.eof() {
		switch p.currentChar() {
		case '#':
			p.consumeChar()
			selector.ID = p.parseIdentifier()
		case '.':
			p.consumeChar()
			selector.Classes = append(selector.Classes, p.parseIdentifier())
		default:
			break loop
		}
	}

	if !selector.IsValid() && selector.TagName != "*" {
		return selector, fmt.Errorf("invalid simple selector")
	}
	return selector, nil
}

// parseDeclarations parses the content within { ... }.
func (p *Parser) parseDeclarations() ([]Declaration, error) {
	p.consumeWhitespace()
	if p.eof() || p.currentChar() != '{' {
		return nil, fmt.Errorf("expected '{' at start of declarations")
	}
	p.consumeChar()

	var declarations []Declaration
	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '}' {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}

		property, value, important := p.parseDeclaration()
		if property != "" && value != "" {
			declarations = append(declarations, Declaration{
				Property:  Property(strings.ToLower(property)),
				Value:     Value(value),
				Important: important,
			})
		}
	}

	if !p.eof() && p.currentChar() == '}' {
		p.consumeChar()
	}
	return declarations, nil
}

// parseDeclaration parses a single 'property: value;' pair.
func (p *Parser) parseDeclaration() (prop, val string, important bool) {
	if !isIdentifierStart(p.currentChar()) {
		p.skipTo(';', '}')
		if !p.eof() && p.currentChar() == ';' {
			p.consumeChar()
		}
		return
	}
	prop = p.parseIdentifier()
	p.consumeWhitespace()

	if p.eof() || p.currentChar() != ':' {
		p.skipTo(';', '}')
		if !p.eof() && p.currentChar() == ';' {
			p.consumeChar()
		}
		return
	}
	p.consumeChar()
	p.consumeWhitespace()

	val = p.parseValue()

	if strings.HasSuffix(strings.ToLower(val), "!important") {
		important = true
		val = strings.TrimSpace(val[:len(val)-len("!important")])
	}

	p.consumeWhitespace()
	if !p.eof() && p.currentChar() == ';' {
		p.consumeChar()
	}
	return
}

// parseValue reads a CSS value until a delimiter, skipping over quoted
// strings and parenthesized terms like url(...).
func (p *Parser) parseValue() string {
	start := p.pos
	for !p.eof() {
		ch := p.currentChar()
		if ch == ';' || ch == '}' {
			break
		}
		if ch == '"' || ch == '\'' {
			p.skipQuotedString(ch)
			continue
		}
		if ch == '(' {
			p.skipBlock('(', ')')
			continue
		}
		p.pos++
	}
	return strings.TrimSpace(p.input[start:p.pos])
}

// --- Lexer helpers ---

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) currentChar() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) consumeChar() byte {
	ch := p.currentChar()
	if !p.eof() {
		p.pos++
	}
	return ch
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() && isWhitespace(p.currentChar()) {
		p.pos++
	}
}

func (p *Parser) startsWith(s string) bool {
	if p.pos+len(s) > len(p.input) {
		return false
	}
	return p.input[p.pos:p.pos+len(s)] == s
}

func (p *Parser) skipComment() {
	p.pos += 2
	end := strings.Index(p.input[p.pos:], "*/")
	if end == -1 {
		p.pos = len(p.input)
	} else {
		p.pos += end + 2
	}
}

func (p *Parser) skipTo(targets ...byte) {
	for !p.eof() {
		ch := p.currentChar()
		for _, target := range targets {
			if ch == target {
				return
			}
		}
		p.pos++
	}
}

// skipBlock consumes a balanced open..close run. The opening delimiter must
// still be the current character.
func (p *Parser) skipBlock(open, close byte) {
	depth := 0
	for !p.eof() {
		c := p.consumeChar()
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

func (p *Parser) skipQuotedString(quote byte) {
	p.consumeChar()
	for !p.eof() {
		ch := p.consumeChar()
		if ch == '\\' {
			p.consumeChar()
		} else if ch == quote {
			return
		}
	}
}

func (p *Parser) skipAtRule() {
	p.consumeChar()
	_ = p.parseIdentifier()
	p.consumeWhitespace()
	for !p.eof() {
		ch := p.currentChar()
		if ch == '{' {
			p.skipBlock('{', '}')
			return
		}
		if ch == ';' {
			p.consumeChar()
			return
		}
		p.pos++
	}
}

func (p *Parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isIdentifierChar(p.currentChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}

func isIdentifierChar(ch byte) bool {
	return isIdentifierStart(ch) || (ch >= '0' && ch <= '9')
}
