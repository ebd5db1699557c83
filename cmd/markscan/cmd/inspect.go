package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Yara1604/InnovNation-Hackathon/internal/document"
	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
)

func newInspectCommand() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "inspect <document.docx>",
		Short: "List the paragraphs and highlight colours of a DOCX document",
		Long: `Read a DOCX document and print one line per paragraph with its highlight
colour, followed by per-colour totals.

Examples:
  markscan inspect notes.docx
  markscan inspect notes.docx --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paras, err := document.Read(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "json":
				if paras == nil {
					paras = []document.Paragraph{}
				}
				b, err := json.MarshalIndent(paras, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode paragraphs: %w", err)
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			case "text", "":
				counts := make(map[highlight.Color]int, 3)
				for i, p := range paras {
					counts[p.Color]++
					mark := "-"
					if p.Color != highlight.None {
						mark = p.Color.String()
					}
					if _, err := fmt.Fprintf(out, "%3d [%s] %s\n", i+1, mark, strings.TrimRight(p.Text, " ")); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintf(out, "Paragraphs: %d (%d yellow, %d green, %d plain)\n",
					len(paras), counts[highlight.Yellow], counts[highlight.Green], counts[highlight.None])
				return err
			default:
				return fmt.Errorf("invalid output format: %s (must be one of: text, json)", format)
			}
		},
	}
	c.Flags().StringVar(&format, "format", "text", "output format (text, json)")
	return c
}
