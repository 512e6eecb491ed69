package lexio

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

const bom = "\uFEFF"

// ParseResult holds the non-blank lines of one or more files.
type ParseResult struct {
	Lines []string
	Stats Stats
}

// Stats holds reader statistics for logging.
type Stats struct {
	Files       int
	TotalLines  int
	BlankLines  int
	ParsedLines int
}

// ReadLines reads every path in order. Lines are trimmed of surrounding
// whitespace; blank lines are skipped and counted.
func ReadLines(paths ...string) (ParseResult, error) {
	var result ParseResult
	for _, path := range paths {
		if err := readFile(path, &result); err != nil {
			return ParseResult{}, err
		}
		result.Stats.Files++
	}
	return result, nil
}

func readFile(path string, result *ParseResult) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}

		line = strings.TrimSpace(line)
		if line == "" {
			result.Stats.BlankLines++
			continue
		}
		result.Lines = append(result.Lines, line)
		result.Stats.ParsedLines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// ReadLexicon reads syllabified words, one per line, split on delim.
func ReadLexicon(delim string, paths ...string) (domain.Lexicon, Stats, error) {
	res, err := ReadLines(paths...)
	if err != nil {
		return nil, Stats{}, err
	}
	lex, err := domain.ParseLexicon(res.Lines, delim)
	if err != nil {
		return nil, res.Stats, err
	}
	return lex, res.Stats, nil
}

// ReadVocabulary reads one configuration per line. Duplicates are dropped
// and file order is kept.
func ReadVocabulary(path string) (domain.Vocabulary, error) {
	res, err := ReadLines(path)
	if err != nil {
		return domain.Vocabulary{}, err
	}
	if len(res.Lines) == 0 {
		return domain.Vocabulary{}, domain.NewValidationError("vocabulary", fmt.Sprintf("%s has no configurations", path))
	}
	return domain.NewVocabulary(res.Lines...), nil
}

// WriteLines writes lines to path, one per line, creating parent directories.
func WriteLines(path string, lines []string) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Checksum returns the hex BLAKE2b-256 digest of lines joined by newlines.
// Two lexicons with the same entries in the same order share a checksum.
func Checksum(lines []string) string {
	sum := blake2b.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}
