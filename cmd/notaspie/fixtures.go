package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"gopkg.in/yaml.v3"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/pkg/checker"
	"github.com/notaspie/notaspie/pkg/corrector"
	"github.com/notaspie/notaspie/pkg/models"
)

const fixtureFile = "correction_fixtures.yaml"

// PlantedMistakes maps each mistake planted in fixture texts to its
// correction.
var PlantedMistakes = map[string]string{
	"dont": "doesn't",
	"cant": "can't",
	"isnt": "isn't",
	"wont": "won't",
}

// Fixture is a text with planted mistakes and the text a checker that finds
// all of them should produce. Mistakes inside quotations and footnote
// definitions are expected to survive.
type Fixture struct {
	Language string `yaml:"language"`
	Text     string `yaml:"text"`
	Expected string `yaml:"expected"`
}

type Fixtures struct {
	Model string    `yaml:"model"`
	Rows  []Fixture `yaml:"rows"`
}

// GenerateFixtures writes count fixture texts to outputDir and returns the
// path of the file.
func GenerateFixtures(count int, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "./"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create %s: %w", outputDir, err)
	}

	fixtures := Fixtures{Model: "Fixture", Rows: make([]Fixture, count)}
	for i := range fixtures.Rows {
		fixtures.Rows[i] = newFixture(i + 1)
	}

	data, err := yaml.Marshal(&fixtures)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, fixtureFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func newFixture(n int) Fixture {
	mistakes := make([]string, 0, len(PlantedMistakes))
	for m := range PlantedMistakes {
		mistakes = append(mistakes, m)
	}
	sort.Strings(mistakes)

	mistake := mistakes[gofakeit.Number(0, len(mistakes)-1)]
	subject := gofakeit.FirstName()
	lead := gofakeit.Sentence(gofakeit.Number(4, 10))

	var text, expected strings.Builder
	text.WriteString(lead + " " + subject + " " + mistake + " know.")
	expected.WriteString(lead + " " + subject + " " + PlantedMistakes[mistake] + " know.")

	if gofakeit.Bool() {
		quote := fmt.Sprintf(` They said "it %s matter" twice.`, mistake)
		text.WriteString(quote)
		expected.WriteString(quote)
	}

	if gofakeit.Bool() {
		marker := fmt.Sprintf("[^%d]", n)
		definition := fmt.Sprintf("\n\n%s: %s %s care.", marker, gofakeit.Sentence(5), mistake)
		text.WriteString(marker + definition)
		expected.WriteString(marker + definition)
	}

	return Fixture{Language: "en-US", Text: text.String(), Expected: expected.String()}
}

// LoadFixtures reads a fixture file written by GenerateFixtures.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("invalid fixture file %s: %w", path, err)
	}
	return &fixtures, nil
}

// RunFixtures corrects every fixture in path with the configured checker
// and reports the ones whose result differs from what was expected.
func RunFixtures(ctx context.Context, cfg *config.Config, path string, w io.Writer) error {
	fixtures, err := LoadFixtures(path)
	if err != nil {
		return err
	}
	failed, err := runFixtures(ctx, checker.NewClient(cfg.Checker), cfg, fixtures, w)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures differ", failed, len(fixtures.Rows))
	}
	return nil
}

func runFixtures(
	ctx context.Context,
	grammarChecker models.Checker,
	cfg *config.Config,
	fixtures *Fixtures,
	w io.Writer,
) (int, error) {
	c := corrector.New(grammarChecker, corrector.OptionsFromConfig(cfg))

	failed := 0
	for i, f := range fixtures.Rows {
		result, err := c.CorrectText(ctx, f.Text, corrector.Options{Language: f.Language})
		if err != nil {
			return failed, err
		}
		if result.Text == f.Expected {
			fmt.Fprintf(w, "fixture %d: ok\n", i+1)
			continue
		}
		failed++
		fmt.Fprintf(w, "fixture %d: differs\n  got:  %q\n  want: %q\n", i+1, result.Text, f.Expected)
	}
	return failed, nil
}
