package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/proxygen/internal/decklist"
	"github.com/ramonehamilton/proxygen/internal/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		out      string
		format   string
		maxCards int
	)

	cmd := &cobra.Command{
		Use:   "render [decklist-file]",
		Short: "Render a decklist to a printable HTML page",
		Long: `Render reads a decklist from a file, or from stdin when the file is
omitted or "-", and writes the resulting proxies.

Examples:
  proxygen render deck.txt --out proxies.html
  pbpaste | proxygen render --format text
  proxygen render deck.txt --format list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "html", "text", "list":
			default:
				return fmt.Errorf("unknown format %q (want html, text or list)", format)
			}

			text, err := readDecklist(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			store, err := loadStore(cmd.Context(), a.cfg.Dataset, a.logger)
			if err != nil {
				return err
			}

			limit := a.cfg.Decklist.MaxTotalCount
			if cmd.Flags().Changed("max-cards") {
				limit = maxCards
			}

			entries, err := decklist.ParseDecklist(store, text, limit)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return writeEntries(cmd.OutOrStdout(), format, entries)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := writeEntries(f, format, entries); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html, text or list")
	cmd.Flags().IntVar(&maxCards, "max-cards", 0, "card limit, 0 for the built-in ceiling (default from config)")
	return cmd
}

func writeEntries(w io.Writer, format string, entries []decklist.Entry) error {
	switch format {
	case "text":
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%dx\n%s\n", e.Count, render.Text(e.Entity)); err != nil {
				return err
			}
		}
		return nil
	case "list":
		_, err := io.WriteString(w, render.TextList(entries))
		return err
	}
	return render.Document(w, entries)
}

func readDecklist(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read decklist: %w", err)
	}
	return string(data), nil
}
