// assets/embed.go
//
// Embedded word lists shipped with the server:
//   - start.txt:      candidate root words for new games.
//   - dictionary.txt: words accepted as "real" by the default dictionary.
//
// Blank lines and lines starting with '#' are skipped; words are lowercased.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

// ReadLines parses a newline-delimited word list.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// StartList returns the embedded root word list.
func StartList() ([]string, error) {
	return readLines("start.txt")
}

// DictionaryList returns the embedded dictionary word list.
func DictionaryList() ([]string, error) {
	return readLines("dictionary.txt")
}
