package catfmt

import (
	"fmt"
	"strings"
)

// Disposition selects how a text-catalog record is merged into an
// already-accumulating database: Add creates or (if the number already
// exists) replaces; Replace always creates-or-replaces; Modify requires
// an existing record and updates only the fields present in the block.
type Disposition int

const (
	Add Disposition = iota
	Replace
	Modify
)

func (d Disposition) String() string {
	switch d {
	case Replace:
		return "Replace"
	case Modify:
		return "Modify"
	default:
		return "Add"
	}
}

// StarTextRecord is one parsed stc record.
type StarTextRecord struct {
	Disposition   Disposition
	IsBarycenter  bool
	CatalogNumber uint32 // zero if omitted; see HasNumber
	HasNumber     bool
	Names         []string
	Properties    *Hash
	Line          int
}

// ParseSTC reads every record from an stc token stream. Malformed
// records are reported through onError (if non-nil) and skipped so one
// bad record does not abort the rest of the file.
func ParseSTC(tok *Tokenizer, onError func(line int, err error)) []StarTextRecord {
	parser := NewParser(tok)
	var records []StarTextRecord

	for tok.NextToken() != TokenEnd {
		line := tok.LineNumber()

		disposition := Add
		if tok.TokenType() == TokenName {
			switch tok.NameValue() {
			case "Modify":
				disposition = Modify
				tok.NextToken()
			case "Replace":
				disposition = Replace
				tok.NextToken()
			case "Add":
				disposition = Add
				tok.NextToken()
			}
		}

		isBarycenter := false
		if tok.TokenType() == TokenName {
			switch tok.NameValue() {
			case "Star":
				tok.NextToken()
			case "Barycenter":
				isBarycenter = true
				tok.NextToken()
			}
		}

		var catalogNumber uint32
		hasNumber := false
		if tok.TokenType() == TokenNumber {
			catalogNumber = uint32(tok.NumberValue())
			hasNumber = true
			tok.NextToken()
		}

		var names []string
		if tok.TokenType() == TokenString {
			names = splitNames(tok.StringValue())
			tok.NextToken()
		}

		if !hasNumber && len(names) == 0 {
			if onError != nil {
				onError(line, fmt.Errorf("%w: record has neither catalog number nor name", ErrMalformedRecord))
			}
			skipToEndOfRecord(tok)
			continue
		}

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

		records = append(records, StarTextRecord{
			Disposition:   disposition,
			IsBarycenter:  isBarycenter,
			CatalogNumber: catalogNumber,
			HasNumber:     hasNumber,
			Names:         names,
			Properties:    value.hash,
			Line:          line,
		})
	}

	return records
}

// splitNames splits a colon-delimited name string, matching the
// "name1:name2:..." convention used by both stc records and name files.
func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ":") {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// skipToEndOfRecord advances past a malformed record's property block
// (if any) so parsing can resume at the next record.
func skipToEndOfRecord(tok *Tokenizer) {
	if tok.TokenType() != TokenBeginGroup {
		return
	}
	depth := 1
	for depth > 0 {
		switch tok.NextToken() {
		case TokenBeginGroup:
			depth++
		case TokenEndGroup:
			depth--
		case TokenEnd:
			return
		}
	}
}
