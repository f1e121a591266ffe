package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/mdagest/internal/config"
	"github.com/dgallion1/mdagest/internal/mda"
	"github.com/dgallion1/mdagest/internal/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mdagest",
		Short: "Extract the MD&A section from Chinese annual reports",
		Long: `mdagest locates the Management Discussion & Analysis section
(管理层讨论与分析) in annual reports and writes it out as plain text.

The table of contents is tried first; when it does not lead to the
section, header keywords near section numerals are used instead.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(extractCmd())
	root.AddCommand(keywordsCmd())
	return root
}

// fileResult is one line of extract output.
type fileResult struct {
	File     string `json:"file"`
	Strategy string `json:"strategy,omitempty"`
	Length   int    `json:"length"`
	Reason   string `json:"reason,omitempty"`
	Error    string `json:"error,omitempty"`
	Output   string `json:"output,omitempty"`
	MDA      string `json:"mda,omitempty"`
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract MD&A text from report files",
		Long: `Extract the MD&A section from one or more report files.

Supported formats: TXT, MD, HTML, PDF, DOCX

Example:
  mdagest extract 2023-annual.pdf
  mdagest extract --out-dir mda/ reports/*.pdf
  mdagest extract --json --keywords-file keywords.yaml report.docx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keywords, _ := cmd.Flags().GetString("keywords")
			keywordsFile, _ := cmd.Flags().GetString("keywords-file")
			outDir, _ := cmd.Flags().GetString("out-dir")
			asJSON, _ := cmd.Flags().GetBool("json")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			pdftotext, _ := cmd.Flags().GetBool("pdftotext")

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			if keywords != "" && keywordsFile != "" {
				return fmt.Errorf("--keywords and --keywords-file are mutually exclusive")
			}
			if keywordsFile != "" {
				pattern, err := config.LoadKeywords(keywordsFile)
				if err != nil {
					return err
				}
				keywords = pattern
			}
			if err := mda.ValidateKeywords(keywords); err != nil {
				return err
			}
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}

			opts := parser.Options{PdftotextFallback: pdftotext}
			results := make([]fileResult, len(args))

			var g errgroup.Group
			g.SetLimit(concurrency)
			for i, path := range args {
				g.Go(func() error {
					results[i] = extractFile(path, keywords, outDir, opts)
					return nil
				})
			}
			_ = g.Wait()

			failed := 0
			out := cmd.OutOrStdout()
			for _, r := range results {
				switch {
				case r.Error != "":
					failed++
					log.Error("extract failed", "file", r.File, "error", r.Error)
				case r.Length == 0:
					log.Warn("mda not found", "file", r.File, "reason", r.Reason)
				default:
					log.Info("mda extracted", "file", r.File, "strategy", r.Strategy, "length", r.Length, "output", r.Output)
				}
				if err := writeResult(out, r, asJSON, outDir != ""); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().String("keywords", "", "Header keywords regexp (default: built-in catalog)")
	cmd.Flags().String("keywords-file", "", "YAML keyword catalog")
	cmd.Flags().String("out-dir", "", "Write each MD&A to <out-dir>/<name>.mda.txt")
	cmd.Flags().Bool("json", false, "Print one JSON line per file")
	cmd.Flags().Int("concurrency", 4, "Number of files processed in parallel")
	cmd.Flags().Bool("pdftotext", false, "Fall back to pdftotext for PDFs without extractable text")

	return cmd
}

func extractFile(path, keywords, outDir string, opts parser.Options) fileResult {
	r := fileResult{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	text, err := parser.ReportText(data, filepath.Base(path), opts)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	res := mda.ExtractDetailed(text, keywords)
	r.Strategy = string(res.Strategy)
	if !res.Found() {
		if res.Err != nil {
			r.Reason = res.Err.Error()
		}
		return r
	}
	r.Length = utf8.RuneCountInString(res.Text)
	r.MDA = res.Text

	if outDir != "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".mda.txt"
		r.Output = filepath.Join(outDir, name)
		if err := os.WriteFile(r.Output, []byte(res.Text), 0o644); err != nil {
			r.Error = fmt.Sprintf("write output: %s", err)
			r.Output = ""
		}
	}
	return r
}

func writeResult(w io.Writer, r fileResult, asJSON, wroteFile bool) error {
	if wroteFile {
		r.MDA = ""
	}
	if asJSON {
		line, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(line))
		return err
	}
	if wroteFile || r.MDA == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "==> %s <==\n%s\n", r.File, r.MDA)
	return err
}

func keywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Print the MD&A header keyword catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			keywordsFile, _ := cmd.Flags().GetString("keywords-file")

			phrases := strings.Split(mda.DefaultKeywords, "|")
			if keywordsFile != "" {
				cat, err := config.ReadKeywordCatalog(keywordsFile)
				if err != nil {
					return err
				}
				if _, err := cat.Pattern(); err != nil {
					return fmt.Errorf("%s: %w", keywordsFile, err)
				}
				phrases = phrases[:0]
				for _, k := range cat.Keywords {
					if k = strings.TrimSpace(k); k != "" {
						phrases = append(phrases, k)
					}
				}
			}

			out := cmd.OutOrStdout()
			for _, p := range phrases {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().String("keywords-file", "", "YAML keyword catalog (default: built-in catalog)")
	return cmd
}
