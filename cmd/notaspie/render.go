package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notaspie/notaspie/pkg/docx"
	"github.com/notaspie/notaspie/pkg/models"
	"github.com/notaspie/notaspie/pkg/render"
)

var renderFlags struct {
	input  string
	output string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an HTML preview of a markdown or DOCX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(renderFlags.input)
		if err != nil {
			return models.NewInputError("cannot read input", err)
		}
		out, err := RenderFile(renderFlags.input, data)
		if err != nil {
			return err
		}
		return writeOutput(renderFlags.output, out, false)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.input, "input", "i", "", "file to render")
	renderCmd.Flags().StringVarP(&renderFlags.output, "output", "o", "", "output file (default stdout)")
	_ = renderCmd.MarkFlagRequired("input")
}

// RenderFile returns the HTML preview of a file.
func RenderFile(filename string, data []byte) ([]byte, error) {
	src := models.Source{Kind: models.InputMarkdown, Text: string(data)}
	if strings.EqualFold(filepath.Ext(filename), ".docx") {
		doc, err := docx.Open(data)
		if err != nil {
			return nil, err
		}
		src = models.Source{Kind: models.InputDocument, Document: doc}
	}

	var buf bytes.Buffer
	if err := render.Source(&buf, src); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
