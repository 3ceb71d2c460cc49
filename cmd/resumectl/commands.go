package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"portfolio-resume/internal/model"
	"portfolio-resume/internal/usecase"
	"portfolio-resume/internal/wizard"
	infra "portfolio-resume/pkg/infrastructure"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Validate, preview and render resume documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newValidateCmd(), newPreviewCmd(), newRenderCmd(), newTemplatesCmd())
	return root
}

// loadResume reads a resume JSON file, checking it against the schema first.
func loadResume(path string) (model.ResumeData, error) {
	var data model.ResumeData
	b, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := model.ValidateSchemaJSON(b); err != nil {
		return data, err
	}
	data = model.NewResumeData()
	if err := json.Unmarshal(b, &data); err != nil {
		return data, fmt.Errorf("decode %s: %w", path, err)
	}
	return data, nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json>",
		Short: "Check a resume file against the schema and the export rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadResume(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			err = model.Validate(data)
			var verr *model.ValidationErrors
			if errors.As(err, &verr) {
				for _, s := range model.SectionOrder {
					if msg, ok := verr.Sections[s]; ok {
						fmt.Fprintf(out, "%-10s %s\n", s, msg)
					}
				}
				return fmt.Errorf("%d section(s) incomplete", len(verr.Sections))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func newPreviewCmd() *cobra.Command {
	var tplID, output string
	cmd := &cobra.Command{
		Use:   "preview <file.json>",
		Short: "Render the on-screen preview HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadResume(args[0])
			if err != nil {
				return err
			}
			tpl, err := model.LookupTemplate(model.TemplateID(tplID))
			if err != nil {
				return err
			}
			html, err := usecase.RenderPreview(data, tpl)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, []byte(html))
		},
	}
	cmd.Flags().StringVar(&tplID, "template", string(model.DefaultTemplate), "template id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var tplID, dir, chromePath string
	cmd := &cobra.Command{
		Use:   "render <file.json>",
		Short: "Render the resume to PDF with headless Chrome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadResume(args[0])
			if err != nil {
				return err
			}
			d := wizard.NewDraft("")
			d.Data = data
			if err := d.SelectTemplate(model.TemplateID(tplID)); err != nil {
				return err
			}
			if chromePath == "" {
				chromePath = os.Getenv("CHROME_PATH")
			}

			log := newLogger(cmd.ErrOrStderr())
			exp := usecase.NewExporter(infra.NewChromedpRenderer(chromePath), nil, usecase.WithLogger(log))
			res, err := exp.Export(context.Background(), d)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(dir, res.FileName)
			if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(res.PDF))
			return nil
		},
	}
	cmd.Flags().StringVar(&tplID, "template", string(model.DefaultTemplate), "template id")
	cmd.Flags().StringVarP(&dir, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&chromePath, "chrome", "", "Chrome binary (defaults to CHROME_PATH)")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the template presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, t := range model.Templates() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Description)
			}
			return w.Flush()
		},
	}
}

// newLogger logs text to terminals and JSON everywhere else.
func newLogger(w io.Writer) *slog.Logger {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return slog.New(slog.NewTextHandler(w, nil))
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

func writeOutput(stdout io.Writer, path string, b []byte) error {
	if path == "" {
		_, err := stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
