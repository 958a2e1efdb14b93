// Package questions owns the assessment question bank: the embedded seed
// file, its import and the age-filtered loader sessions start from.
package questions

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/soulsense/internal/store"
)

// Age bounds applied when a bank entry omits them.
const (
	DefaultAgeMin = 0
	DefaultAgeMax = 120
)

// versionKey is the meta key holding the installed bank version.
const versionKey = "question_bank_version"

//go:embed bank.yaml
var seedYAML []byte

// Question is one assessment item. Immutable once loaded.
type Question struct {
	ID      int
	Text    string
	Tooltip string
	AgeMin  int
	AgeMax  int
}

// BankFile is the YAML layout of a question bank.
type BankFile struct {
	Version   string      `yaml:"version"`
	Questions []BankEntry `yaml:"questions"`
}

// BankEntry is one question as written in YAML. Age bounds are optional.
type BankEntry struct {
	ID      int    `yaml:"id"`
	Text    string `yaml:"text"`
	Tooltip string `yaml:"tooltip,omitempty"`
	AgeMin  *int   `yaml:"age_min,omitempty"`
	AgeMax  *int   `yaml:"age_max,omitempty"`
}

// ErrInvalidBank is returned for a bank file that fails validation.
var ErrInvalidBank = errors.New("invalid question bank")

// Parse decodes and validates a bank file.
func Parse(r io.Reader) (*BankFile, error) {
	bf := &BankFile{}
	if err := yaml.NewDecoder(r).Decode(bf); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if err := bf.validate(); err != nil {
		return nil, err
	}
	return bf, nil
}

// ParseFile reads a bank file from disk.
func ParseFile(path string) (*BankFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Seed returns the bank embedded in the binary.
func Seed() *BankFile {
	bf, err := Parse(bytes.NewReader(seedYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded question bank: %v", err))
	}
	return bf
}

func (bf *BankFile) validate() error {
	if bf.Version != "" && !semver.IsValid(bf.Version) {
		return fmt.Errorf("%w: version %q is not semver", ErrInvalidBank, bf.Version)
	}
	if len(bf.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	seen := make(map[int]bool, len(bf.Questions))
	for i, e := range bf.Questions {
		if e.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidBank, i+1)
		}
		if e.ID <= 0 {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidBank, i+1)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidBank, e.ID)
		}
		seen[e.ID] = true
		q := e.question()
		if q.AgeMin > q.AgeMax {
			return fmt.Errorf("%w: question %d has age_min %d > age_max %d", ErrInvalidBank, e.ID, q.AgeMin, q.AgeMax)
		}
	}
	return nil
}

func (e BankEntry) question() Question {
	q := Question{ID: e.ID, Text: e.Text, Tooltip: e.Tooltip, AgeMin: DefaultAgeMin, AgeMax: DefaultAgeMax}
	if e.AgeMin != nil {
		q.AgeMin = *e.AgeMin
	}
	if e.AgeMax != nil {
		q.AgeMax = *e.AgeMax
	}
	return q
}

func (bf *BankFile) records() []store.QuestionRecord {
	out := make([]store.QuestionRecord, len(bf.Questions))
	for i, e := range bf.Questions {
		q := e.question()
		out[i] = store.QuestionRecord{ID: q.ID, Text: q.Text, Tooltip: q.Tooltip, AgeMin: q.AgeMin, AgeMax: q.AgeMax}
	}
	return out
}

// Bank loads questions from the store.
type Bank struct {
	repo store.QuestionRepo
	meta store.MetaRepo
}

// NewBank creates a Bank over the given repositories.
func NewBank(repo store.QuestionRepo, meta store.MetaRepo) *Bank {
	return &Bank{repo: repo, meta: meta}
}

// EnsureSeeded installs the embedded bank when the store is empty or holds
// an older version. It reports whether the bank was (re)installed.
func (b *Bank) EnsureSeeded(ctx context.Context) (bool, error) {
	seed := Seed()

	installed, err := b.meta.Get(ctx, versionKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("read bank version: %w", err)
	}
	n, err := b.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 && !needsUpgrade(installed, seed.Version) {
		return false, nil
	}

	if err := b.Install(ctx, seed); err != nil {
		return false, err
	}
	slog.Info("question bank seeded", "version", seed.Version, "previous", installed, "count", len(seed.Questions))
	return true, nil
}

// CustomVersion marks an installed bank imported by the user without a
// version. EnsureSeeded leaves it in place.
const CustomVersion = "custom"

// Install replaces the stored bank with bf and records its version.
func (b *Bank) Install(ctx context.Context, bf *BankFile) error {
	if err := b.repo.Replace(ctx, bf.records()); err != nil {
		return fmt.Errorf("install question bank: %w", err)
	}
	version := bf.Version
	if version == "" {
		version = CustomVersion
	}
	if err := b.meta.Set(ctx, versionKey, version); err != nil {
		return fmt.Errorf("record bank version: %w", err)
	}
	return nil
}

// Load returns up to count questions suitable for age (nil = all ages),
// ordered by id. A count of 0 returns every match.
func (b *Bank) Load(ctx context.Context, age *int, count int) ([]Question, error) {
	recs, err := b.repo.Load(ctx, age, count)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	out := make([]Question, len(recs))
	for i, r := range recs {
		out[i] = Question{ID: r.ID, Text: r.Text, Tooltip: r.Tooltip, AgeMin: r.AgeMin, AgeMax: r.AgeMax}
	}
	return out, nil
}

// needsUpgrade reports whether candidate is a newer bank than installed.
// An installed version that is not semver, such as a user import, is kept.
func needsUpgrade(installed, candidate string) bool {
	if !semver.IsValid(candidate) {
		return false
	}
	if installed == "" {
		return true
	}
	if !semver.IsValid(installed) {
		return false
	}
	return semver.Compare(candidate, installed) > 0
}
