// Package filter classifies chat text as allowed or disallowed.
package filter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	goaway "github.com/TwiN/go-away"
	"golang.org/x/text/unicode/norm"
)

// Filter decides whether a message may be stored.
type Filter interface {
	IsAllowed(text string) bool
}

// Profanity is a Filter backed by a profanity dictionary. It is immutable
// after construction and safe for concurrent use.
type Profanity struct {
	detector *goaway.ProfanityDetector
}

// Options extends the built-in dictionary.
type Options struct {
	ExtraWords []string
	WordsFile  string
}

// NewProfanity builds the filter from the default dictionary plus opts.
// A configured words file that cannot be read is an error.
func NewProfanity(log *slog.Logger, opts Options) (*Profanity, error) {
	words := slices.Clone(goaway.DefaultProfanities)
	words = appendWords(words, opts.ExtraWords)

	if opts.WordsFile != "" {
		f, err := os.Open(opts.WordsFile)
		if err != nil {
			return nil, fmt.Errorf("open words file: %w", err)
		}
		defer f.Close()
		fileWords, err := ReadWords(f)
		if err != nil {
			return nil, fmt.Errorf("read words file: %w", err)
		}
		words = appendWords(words, fileWords)
	}

	detector := goaway.NewProfanityDetector().
		WithSanitizeLeetSpeak(true).
		WithSanitizeSpecialCharacters(true).
		WithSanitizeAccents(true).
		WithCustomDictionary(words, goaway.DefaultFalsePositives, goaway.DefaultFalseNegatives)

	if log != nil {
		log.With(slog.String("component", "filter")).Info("profanity filter loaded", slog.Int("words", len(words)))
	}
	return &Profanity{detector: detector}, nil
}

// IsAllowed reports whether text contains no dictionary entry.
func (p *Profanity) IsAllowed(text string) bool {
	return !p.detector.IsProfane(norm.NFC.String(text))
}

// ReadWords parses a word list: one entry per line, blank lines and lines
// starting with '#' are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func appendWords(dst, src []string) []string {
	for _, w := range src {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || slices.Contains(dst, w) {
			continue
		}
		dst = append(dst, w)
	}
	return dst
}

// AllowAll is a Filter that accepts everything.
type AllowAll struct{}

// IsAllowed always returns true.
func (AllowAll) IsAllowed(string) bool { return true }
