package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/internal/logging"
)

// ReadGlosses reads "lemma<TAB>gloss" lines. Comment lines start with '#'.
// Lines without a tab are skipped with a warning; a later line for the same
// lemma wins.
func ReadGlosses(r io.Reader, path string) (map[string]string, error) {
	glosses := make(map[string]string)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lemma, gloss, ok := strings.Cut(line, "\t")
		if !ok {
			logging.SourceError(path, lineNo, fmt.Errorf("missing tab separator"))
			continue
		}
		lemma, gloss = strings.TrimSpace(lemma), strings.TrimSpace(gloss)
		if lemma != "" && gloss != "" {
			glosses[lemma] = gloss
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading glosses %s: %w", path, err)
	}
	return glosses, nil
}
