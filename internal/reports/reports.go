package reports

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/speakeasy-api/textmerge/internal/charm/styles"
	"github.com/speakeasy-api/textmerge/internal/merging"
	"github.com/speakeasy-api/textmerge/internal/utils"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var Formats = []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatTOML)}

// Report describes the outcome of a merge run.
type Report struct {
	Summary merging.Summary       `json:"summary" yaml:"summary" toml:"summary"`
	Files   []merging.MergeResult `json:"files" yaml:"files" toml:"files"`
}

func New(results []merging.MergeResult) Report {
	return Report{Summary: merging.Summarize(results), Files: results}
}

// Encode writes the report to w in the given format.
func Encode(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, RenderText(r))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(r)
	default:
		return fmt.Errorf("unsupported report format %q, expected one of %s", format, strings.Join(Formats, ", "))
	}
}

func RenderText(r Report) string {
	var sb strings.Builder

	for _, f := range r.Files {
		sb.WriteString(renderFile(f))
		sb.WriteString("\n")
	}

	summary := styles.Emphasized.Render(r.Summary.String())
	switch {
	case r.Summary.Failed > 0:
		summary = styles.Error.Render(r.Summary.String())
	case r.Summary.Conflicts > 0:
		summary = styles.Warning.Render(r.Summary.String())
	}
	sb.WriteString(summary)
	sb.WriteString("\n")

	return sb.String()
}

func renderFile(f merging.MergeResult) string {
	var (
		glyph string
		style lipgloss.Style
	)

	switch {
	case f.Error != nil:
		glyph, style = "✖", styles.Error
	case f.Status == merging.MergeStatusConflict:
		glyph, style = "!", styles.Warning
	case f.Status == merging.MergeStatusBinary || f.Status == merging.MergeStatusSkipped:
		glyph, style = "-", styles.Dimmed
	default:
		glyph, style = "✔", styles.Success
	}

	status := strings.ToLower(string(f.Status))
	if f.Error != nil {
		status = f.Error.Error()
	}

	line := fmt.Sprintf("%s %s %s", style.Render(glyph), f.Path, styles.DimmedItalic.Render("("+status+")"))

	details := []string{}
	for i, c := range f.Conflicts {
		start, end := c.MergedSpan()
		details = append(details, fmt.Sprintf("conflict %d: base line %d, merged lines %d-%d, remote %d / local %d lines",
			i+1, c.BaseLine+1, start+1, max(start+1, end), len(c.Remote), len(c.Local)))
	}
	if len(details) == 0 {
		return line
	}

	return line + "\n" + styles.LeftBorder(styles.Colors.Yellow).MarginLeft(2).Render(strings.Join(details, "\n"))
}

type ReportResult struct {
	Message   string
	LocalPath string
	Digest    string
	Format    Format
}

// Save writes an encoded report under dir, named by the digest of its content.
func Save(dir string, format Format, r Report) (ReportResult, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, format, r); err != nil {
		return ReportResult{}, err
	}

	sum := md5.Sum(buf.Bytes())
	digest := hex.EncodeToString(sum[:])

	ext := string(format)
	if format == FormatText || format == "" {
		ext = "txt"
	}
	path := filepath.Join(dir, fmt.Sprintf("merge-report-%s.%s", digest, ext))
	if err := utils.CreateDirectory(path); err != nil {
		return ReportResult{}, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return ReportResult{}, err
	}

	return ReportResult{
		Message:   fmt.Sprintf("Merge report written to: %s", path),
		LocalPath: path,
		Digest:    digest,
		Format:    format,
	}, nil
}
