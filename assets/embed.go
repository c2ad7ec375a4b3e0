package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt pairs.txt blocked.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AllowedList is the embedded default dictionary fallback.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}

// PairsList holds "start,target" puzzle pairs, one per line.
func PairsList() ([]string, error) {
	return readLines("pairs.txt")
}

// BlockedList is the embedded default profanity block list.
func BlockedList() ([]string, error) {
	return readLines("blocked.txt")
}
