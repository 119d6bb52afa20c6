package directive

// Parser parses one trimmed header line.
//
//	directive := '@' ident (ws+ pair)* ws* EOF
//	pair      := ident ws* '=' ws* value
//	ident     := [A-Za-z_][A-Za-z0-9_]*
//	value     := (any char except space, tab, newline)+
type Parser struct {
	input string
	pos   int
}

// NewParser creates a parser for the input line.
func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse parses the full input into a Directive. The whole line must match.
func (p *Parser) Parse() (*Directive, error) {
	if p.peek() != '@' {
		return nil, missingMarker(p.input)
	}
	p.pos++

	name, err := p.parseIdent("directive name")
	if err != nil {
		return nil, err
	}
	d := &Directive{Name: name}

	for {
		sep := p.skipWhitespace()
		if p.eof() {
			break
		}
		if sep == 0 {
			return nil, malformed(p.input, p.pos, "whitespace")
		}

		pair, err := p.parsePair()
		if err != nil {
			return nil, err
		}
		d.Pairs = append(d.Pairs, pair)
	}

	return d, nil
}

// parsePair parses key ws* '=' ws* value.
func (p *Parser) parsePair() (Pair, error) {
	key, err := p.parseIdent("key")
	if err != nil {
		return Pair{}, err
	}

	p.skipWhitespace()
	if p.peek() != '=' {
		return Pair{}, malformed(p.input, p.pos, "'='")
	}
	p.pos++
	p.skipWhitespace()

	start := p.pos
	for !p.eof() && isValueChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return Pair{}, malformed(p.input, p.pos, "value for "+key)
	}

	return Pair{Key: key, Value: p.input[start:p.pos]}, nil
}

// parseIdent reads an identifier; what names the role for the error message.
func (p *Parser) parseIdent(what string) (string, error) {
	start := p.pos
	if p.eof() || !isLetter(p.input[p.pos]) {
		return "", malformed(p.input, start, what)
	}
	for !p.eof() && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos], nil
}

// skipWhitespace advances past spaces and tabs and returns how many it skipped.
func (p *Parser) skipWhitespace() int {
	start := p.pos
	for !p.eof() && isBlank(p.input[p.pos]) {
		p.pos++
	}
	return p.pos - start
}

func (p *Parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}
