// Package corrector drives a correction request through footnote
// extraction, span protection, chunking, grammar checking and merging, and
// assembles the result.
package corrector

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/chunker"
	"github.com/notaspie/notaspie/pkg/footnotes"
	"github.com/notaspie/notaspie/pkg/merge"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/protect"
)

type Corrector struct {
	checker   models.Checker
	chunker   models.Chunker
	protector models.Protector
	merger    models.Merger
	extractor func(models.InputKind) (footnotes.Extractor, error)
	defaults  Options
}

type Option func(*Corrector)

// WithProtector replaces the protector built from the default options.
func WithProtector(p models.Protector) Option {
	return func(c *Corrector) { c.protector = p }
}

// WithMerger replaces the merger built from the default options.
func WithMerger(m models.Merger) Option {
	return func(c *Corrector) { c.merger = m }
}

func WithChunker(ch models.Chunker) Option {
	return func(c *Corrector) { c.chunker = ch }
}

// New creates a Corrector calling checker. defaults apply to every request
// and are completed with built-in values where zero.
func New(checker models.Checker, defaults Options, opts ...Option) *Corrector {
	if defaults.Language == "" {
		defaults.Language = "es"
	}
	if defaults.OverlapPolicy == "" {
		defaults.OverlapPolicy = models.OverlapLastWriteWins
	}
	if defaults.QuoteMode == "" {
		defaults.QuoteMode = protect.QuoteMask
	}
	c := &Corrector{
		checker:   checker,
		chunker:   chunker.New(),
		protector: protect.New(defaults.QuoteMode, defaults.QuoteStyles),
		merger:    merge.New(defaults.OverlapPolicy),
		extractor: footnotes.For,
		defaults:  defaults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CorrectText corrects markdown or plain text. Footnote definitions are
// left out of the check and put back in place afterwards.
func (c *Corrector) CorrectText(
	ctx context.Context,
	text string,
	opts Options,
) (*models.CorrectionResult, error) {
	return c.Correct(ctx, models.Source{Kind: models.InputMarkdown, Text: text}, opts)
}

// CorrectDocument corrects the paragraphs of doc in place. Footnote content
// is not checked and not rewritten.
func (c *Corrector) CorrectDocument(
	ctx context.Context,
	doc models.Document,
	opts Options,
) (*models.CorrectionResult, error) {
	return c.Correct(ctx, models.Source{Kind: models.InputDocument, Document: doc}, opts)
}

// request holds the collaborators resolved for one call.
type request struct {
	opts      Options
	language  models.Language
	protector models.Protector
	merger    models.Merger
	log       *logrus.Entry
}

// Correct runs the whole pipeline for src. A chunk the grammar checker fails
// on is kept as it was and reported in the result's warnings; only bad input,
// cancellation and failures to write the document abort the request.
func (c *Corrector) Correct(
	ctx context.Context,
	src models.Source,
	opts Options,
) (*models.CorrectionResult, error) {
	req, err := c.newRequest(opts)
	if err != nil {
		return nil, err
	}

	extractor, err := c.extractor(src.Kind)
	if err != nil {
		return nil, err
	}
	ext, err := extractor.Extract(src)
	if err != nil {
		return nil, err
	}

	masked, restore := req.protector.Protect(ext.Body)
	chunks := c.chunker.Chunk(masked, req.opts.MaxWords)

	result := &models.CorrectionResult{Warnings: []string{}}
	result.Stats.Chunks = len(chunks)

	// Spans are found on the whole body so a chunk cut through a quote
	// still sees it.
	guard := req.protector.Guard(masked)

	corrected, err := c.checkChunks(ctx, req, chunks, guard, result)
	if err != nil {
		return nil, err
	}

	paragraphs := chunker.Paragraphs(corrected)
	for i := range paragraphs {
		paragraphs[i] = req.protector.Restore(paragraphs[i], restore)
	}
	body := strings.Join(paragraphs, "\n")
	if missing := req.protector.Missing(body, restore); len(missing) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%d protected passages could not be restored: %s",
			len(missing), strings.Join(missing, ", "),
		))
	}

	result.Text = extractor.Reintegrate(ext, body)
	result.Definitions = ext.Definitions()
	result.Footnotes = ext.Notes

	if src.Kind == models.InputDocument {
		if len(src.Document.Paragraphs()) == 0 {
			paragraphs = []string{}
		} else if err := src.Document.ReplaceParagraphs(paragraphs); err != nil {
			return nil, err
		}
		result.Paragraphs = paragraphs
	}

	req.log.Infof(
		"corrected %d chunks: %d edits applied, %d skipped, %d check failures",
		result.Stats.Chunks, result.Stats.Applied, result.Stats.Skipped, result.Stats.ServiceFailures,
	)

	return result, nil
}

func (c *Corrector) newRequest(opts Options) (*request, error) {
	opts, err := withDefaults(opts, c.defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to merge correction options: %w", err)
	}
	if !opts.OverlapPolicy.Valid() {
		return nil, models.NewInputError(fmt.Sprintf("unknown overlap policy %q", opts.OverlapPolicy), nil)
	}
	lang, err := models.ParseLanguage(opts.Language)
	if err != nil {
		return nil, err
	}

	req := &request{
		opts:      opts,
		language:  lang,
		protector: c.protector,
		merger:    c.merger,
		log:       internal.RequestLogger(uuid.NewString(), lang.Code),
	}
	if opts.OverlapPolicy != c.defaults.OverlapPolicy {
		req.merger = merge.New(opts.OverlapPolicy)
	}
	if opts.QuoteMode != c.defaults.QuoteMode || !slices.Equal(opts.QuoteStyles, c.defaults.QuoteStyles) {
		req.protector = protect.New(opts.QuoteMode, opts.QuoteStyles)
	}
	return req, nil
}

// chunkOutcome is what checking a single chunk produced.
type chunkOutcome struct {
	text    string
	called  bool
	failed  bool
	warning string
	applied int
	skipped int
}

// checkChunks checks and merges every chunk, at most opts.Concurrency at a
// time. Corrected chunks are returned in their original order.
func (c *Corrector) checkChunks(
	ctx context.Context,
	req *request,
	chunks []models.Chunk,
	guard models.ProtectedSpans,
	result *models.CorrectionResult,
) ([]models.Chunk, error) {
	outcomes := make([]chunkOutcome, len(chunks))
	guards := chunkGuards(chunks, guard)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.opts.Concurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			outcome, err := c.checkChunk(gctx, req, chunk, guards[i])
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corrected := make([]models.Chunk, len(chunks))
	for i, o := range outcomes {
		corrected[i] = chunks[i]
		corrected[i].Text = o.text
		if o.called {
			result.Stats.ServiceCalls++
		}
		if o.failed {
			result.Stats.ServiceFailures++
			result.Warnings = append(result.Warnings, o.warning)
		}
		result.Stats.Applied += o.applied
		result.Stats.Skipped += o.skipped
	}
	return corrected, nil
}

// chunkGuards moves the body's protected spans into each chunk's own offsets.
func chunkGuards(chunks []models.Chunk, spans models.ProtectedSpans) []models.Guard {
	guards := make([]models.Guard, len(chunks))
	start := 0
	for i, chunk := range chunks {
		end := start + utf8.RuneCountInString(chunk.Text)
		guards[i] = spans.Window(start, end)
		start = end + utf8.RuneCountInString(chunk.Separator)
	}
	return guards
}

func (c *Corrector) checkChunk(
	ctx context.Context,
	req *request,
	chunk models.Chunk,
	guard models.Guard,
) (chunkOutcome, error) {
	if strings.TrimSpace(chunk.Text) == "" {
		return chunkOutcome{text: chunk.Text}, nil
	}

	resp, err := c.checker.Check(ctx, models.CheckRequest{
		Text:        chunk.Text,
		Language:    req.language.Code,
		EnabledOnly: req.opts.EnabledOnly,
	})
	if err != nil {
		if ctx.Err() != nil {
			return chunkOutcome{}, ctx.Err()
		}
		req.log.Warnf("grammar check failed for paragraph %d: %s", chunk.SourceParagraphIndex+1, err)
		return chunkOutcome{
			text:   chunk.Text,
			called: true,
			failed: true,
			warning: fmt.Sprintf(
				"paragraph %d was left uncorrected: %s",
				chunk.SourceParagraphIndex+1, err,
			),
		}, nil
	}

	merged := req.merger.MergeMatches(chunk.Text, resp.Matches, guard)

	req.log.Debugf(
		"paragraph %d: %d matches, %d applied",
		chunk.SourceParagraphIndex+1, len(resp.Matches), merged.Applied,
	)

	return chunkOutcome{
		text:    merged.Text,
		called:  true,
		applied: merged.Applied,
		skipped: merged.Skipped,
	}, nil
}
