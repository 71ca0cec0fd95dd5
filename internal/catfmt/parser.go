package catfmt

// Parser builds Value trees out of a Tokenizer's token stream: number,
// string, and boolean literals, `[ ... ]` arrays, and `{ key value; ... }`
// hashes. Key/value pairs inside a hash may be separated by whitespace
// alone; a trailing `;` is accepted but not required.
type Parser struct {
	tok *Tokenizer
}

// NewParser wraps tok for value parsing.
func NewParser(tok *Tokenizer) *Parser {
	return &Parser{tok: tok}
}

// ReadValue parses one value starting at the tokenizer's current
// position (the caller must have already called NextToken to position
// it on the value's first token). It returns nil if the current token
// cannot start a value.
func (p *Parser) ReadValue() *Value {
	switch p.tok.TokenType() {
	case TokenNumber:
		return &Value{kind: NumberValue, number: p.tok.NumberValue()}

	case TokenString:
		return &Value{kind: StringValue, str: p.tok.StringValue()}

	case TokenName:
		switch p.tok.NameValue() {
		case "true":
			return &Value{kind: BooleanValue, boule: true}
		case "false":
			return &Value{kind: BooleanValue, boule: false}
		default:
			// Bare identifiers that aren't booleans are treated as
			// single-element strings (e.g. an enum-like property value).
			return &Value{kind: StringValue, str: p.tok.NameValue()}
		}

	case TokenBeginArray:
		return p.readArray()

	case TokenBeginGroup:
		return p.readHash()

	default:
		return nil
	}
}

func (p *Parser) readArray() *Value {
	var elems []*Value
	for p.tok.NextToken() != TokenEndArray {
		if p.tok.TokenType() == TokenEnd {
			break
		}
		if v := p.ReadValue(); v != nil {
			elems = append(elems, v)
		}
	}
	return &Value{kind: ArrayValue, array: elems}
}

func (p *Parser) readHash() *Value {
	hash := NewHash()
	for {
		tt := p.tok.NextToken()
		if tt == TokenEndGroup || tt == TokenEnd {
			break
		}
		if tt != TokenName {
			continue
		}
		key := p.tok.NameValue()

		p.tok.NextToken()
		value := p.ReadValue()
		if value != nil {
			hash.Set(key, value)
		}
	}
	return &Value{kind: HashValue, hash: hash}
}
