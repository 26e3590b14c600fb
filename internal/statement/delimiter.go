package statement

import (
	"bufio"
	"io"
	"strings"
)

// CandidateDelimiters are tried in order; earlier entries win ties.
var CandidateDelimiters = []rune{',', ';', '\t', '|'}

const utf8BOM = "\ufeff"

// SniffDelimiter picks the candidate delimiter that occurs most often outside
// quotes in the first non-empty line. It falls back to ','.
func SniffDelimiter(sample string) rune {
	line := firstNonEmptyLine(sample)
	best, bestCount := ',', 0
	for _, candidate := range CandidateDelimiters {
		if n := countUnquoted(line, candidate); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func firstNonEmptyLine(sample string) string {
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimPrefix(sample, utf8BOM)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return ""
}

func countUnquoted(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			count++
		}
	}
	return count
}

// readSample reads up to n bytes for sniffing and returns a reader that
// replays them before the rest of r.
func readSample(r io.Reader, n int) (string, io.Reader, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	sample := buf[:read]
	return string(sample), io.MultiReader(strings.NewReader(string(sample)), r), nil
}
