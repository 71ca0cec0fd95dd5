package catfmt

import "fmt"

// DSOTextRecord is one parsed dsc record: `<ObjectType> [<number>] "<name>" { ... }`.
type DSOTextRecord struct {
	ObjectType    string
	CatalogNumber uint32
	HasNumber     bool
	Names         []string
	Properties    *Hash
	Line          int
}

// ParseDSC reads every record from a dsc token stream, applying the
// same per-record error tolerance as ParseSTC.
func ParseDSC(tok *Tokenizer, onError func(line int, err error)) []DSOTextRecord {
	parser := NewParser(tok)
	var records []DSOTextRecord

	for tok.NextToken() != TokenEnd {
		line := tok.LineNumber()

		if tok.TokenType() != TokenName {
			if onError != nil {
				onError(line, fmt.Errorf("%w: expected object type", ErrMalformedRecord))
			}
			skipToEndOfRecord(tok)
			continue
		}
		objType := tok.NameValue()
		tok.NextToken()

		var catalogNumber uint32
		hasNumber := false
		if tok.TokenType() == TokenNumber {
			catalogNumber = uint32(tok.NumberValue())
			hasNumber = true
			tok.NextToken()
		}

		if tok.TokenType() != TokenString {
			if onError != nil {
				onError(line, fmt.Errorf("%w: expected name string", ErrMalformedRecord))
			}
			skipToEndOfRecord(tok)
			continue
		}
		names := splitNames(tok.StringValue())
		tok.NextToken()

		if tok.TokenType() != TokenBeginGroup {
			if onError != nil {
				onError(line, fmt.Errorf("%w: expected property block", ErrMalformedRecord))
			}
			continue
		}

		value := parser.ReadValue()
		if value == nil || value.Kind() != HashValue {
			if onError != nil {
				onError(line, fmt.Errorf("%w: bad property block", ErrMalformedRecord))
			}
			continue
		}

		records = append(records, DSOTextRecord{
			ObjectType:    objType,
			CatalogNumber: catalogNumber,
			HasNumber:     hasNumber,
			Names:         names,
			Properties:    value.hash,
			Line:          line,
		})
	}

	return records
}
