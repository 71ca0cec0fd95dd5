package catfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// NameRecord is one line of a name file: a catalog number and the
// colon-delimited names attached to it.
type NameRecord struct {
	CatalogNumber uint32
	Names         []string
}

// ReadNames parses the name-file format: one record per line,
// "<u32> <name1>[:<name2>...]", with blank lines and lines starting
// with '#' ignored. Lines that don't start with a parseable number are
// reported via onError (if non-nil) and skipped, matching the
// per-record accumulate error policy.
func ReadNames(r io.Reader, onError func(line int, err error)) ([]NameRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []NameRecord
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.SplitN(trimmed, " ", 2)
		catalogNumber, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			if onError != nil {
				onError(lineNo, err)
			}
			continue
		}

		var names []string
		if len(fields) == 2 {
			for _, name := range strings.Split(strings.TrimSpace(fields[1]), ":") {
				if name != "" {
					names = append(names, name)
				}
			}
		}

		records = append(records, NameRecord{CatalogNumber: uint32(catalogNumber), Names: names})
	}

	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}
