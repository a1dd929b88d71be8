package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/pkg/checker"
	"github.com/notaspie/notaspie/pkg/corrector"
	"github.com/notaspie/notaspie/pkg/docx"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/render"
)

const (
	FormatText = "text"
	FormatHTML = "html"
	FormatDOCX = "docx"
)

var correctFlags struct {
	input       string
	output      string
	language    string
	format      string
	maxWords    int
	superscript bool
}

var correctCmd = &cobra.Command{
	Use:   "correct",
	Short: "Correct a text, markdown or DOCX file",
	Example: `  notaspie correct --input essay.docx --output essay_corrected.docx --language es
  notaspie correct --input notes.md --format html --output notes.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error configuring notaspie: %w", err)
		}
		config.SetLogLevel(cfg)

		data, err := os.ReadFile(correctFlags.input)
		if err != nil {
			return models.NewInputError("cannot read input", err)
		}

		var out bytes.Buffer
		result, err := CorrectFile(cmd.Context(), checker.NewClient(cfg.Checker), cfg, CorrectFileRequest{
			Filename:    correctFlags.input,
			Data:        data,
			Format:      correctFlags.format,
			Superscript: correctFlags.superscript,
			Options: corrector.Options{
				Language: correctFlags.language,
				MaxWords: correctFlags.maxWords,
			},
		}, &out)
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			log.Warn(w)
		}
		log.Infof(
			"%d corrections applied, %d skipped",
			result.Stats.Applied, result.Stats.Skipped,
		)

		return writeOutput(correctFlags.output, out.Bytes(), correctFlags.format == FormatDOCX)
	},
}

func init() {
	correctCmd.Flags().StringVarP(&correctFlags.input, "input", "i", "", "file to correct")
	correctCmd.Flags().StringVarP(&correctFlags.output, "output", "o", "", "output file (default stdout)")
	correctCmd.Flags().StringVarP(&correctFlags.language, "language", "l", "", "language name or code (default correction.language)")
	correctCmd.Flags().StringVarP(&correctFlags.format, "format", "f", "", "output format: text, html or docx (default docx for DOCX input, text otherwise)")
	correctCmd.Flags().IntVar(&correctFlags.maxWords, "max-words", 0, "words per checker call (default correction.max_words)")
	correctCmd.Flags().BoolVar(&correctFlags.superscript, "superscript", false, "write numeric footnote markers as superscripts in text output")
	_ = correctCmd.MarkFlagRequired("input")
}

type CorrectFileRequest struct {
	Filename string
	Data     []byte
	// Format is the output format. Empty picks docx for DOCX input and text
	// otherwise.
	Format      string
	Superscript bool
	Options     corrector.Options
}

// CorrectFile corrects a file and writes it to w in the requested format.
func CorrectFile(
	ctx context.Context,
	grammarChecker models.Checker,
	cfg *config.Config,
	req CorrectFileRequest,
	w io.Writer,
) (*models.CorrectionResult, error) {
	isDOCX := strings.EqualFold(filepath.Ext(req.Filename), ".docx")
	format := req.Format
	if format == "" {
		format = FormatText
		if isDOCX {
			format = FormatDOCX
		}
	}
	switch format {
	case FormatText, FormatHTML:
	case FormatDOCX:
		if !isDOCX {
			return nil, models.NewInputError("docx output needs a .docx input", nil)
		}
	default:
		return nil, models.NewInputError(fmt.Sprintf("unknown output format %q", format), nil)
	}

	c := corrector.New(grammarChecker, corrector.OptionsFromConfig(cfg))

	if !isDOCX {
		result, err := c.CorrectText(ctx, string(req.Data), req.Options)
		if err != nil {
			return nil, err
		}
		if format == FormatHTML {
			err = render.Source(w, models.Source{Kind: models.InputMarkdown, Text: result.Text})
		} else {
			err = writeText(w, result.Text, req.Superscript)
		}
		return result, err
	}

	out, result, err := c.CorrectDOCX(ctx, req.Data, cfg.Document.RewriteUnchanged, req.Options)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatDOCX:
		_, err = w.Write(out)
	case FormatHTML:
		var doc *docx.Document
		doc, err = docx.Open(out)
		if err == nil {
			err = render.Source(w, models.Source{Kind: models.InputDocument, Document: doc})
		}
	default:
		err = writeText(w, result.Text, req.Superscript)
	}
	return result, err
}

func writeText(w io.Writer, text string, superscript bool) error {
	if superscript {
		text = render.PlainText(text)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// writeOutput writes data to path, or to stdout when path is empty. Binary
// output is not written to a terminal.
func writeOutput(path string, data []byte, binary bool) error {
	if path == "" {
		if binary {
			if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
				return models.NewInputError("refusing to write a DOCX file to the terminal, use --output", nil)
			}
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return models.NewSaveError("cannot write output", err)
	}
	log.Infof("Wrote %s", path)
	return nil
}
