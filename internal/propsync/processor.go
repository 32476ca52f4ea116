package propsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"propsync/internal/filewalker"
	"propsync/internal/linestore"
	"propsync/internal/parser"

	"github.com/rs/zerolog/log"
)

// ErrOutOfSync is returned by Check when a translation misses base keys.
var ErrOutOfSync = errors.New("translations are missing keys")

// Status describes what happened to one translation file.
type Status string

const (
	StatusSynced      Status = "synced"
	StatusUnchanged   Status = "unchanged"
	StatusWouldChange Status = "would-change"
	StatusSkipped     Status = "skipped"
)

// FileResult is the outcome for one translation file.
type FileResult struct {
	Path     string   `json:"path"`
	Status   Status   `json:"status"`
	Missing  []string `json:"missing,omitempty"`
	Obsolete []string `json:"obsolete,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// Report collects the results of one directory run.
type Report struct {
	Dir   string       `json:"dir"`
	Base  string       `json:"base"`
	Files []FileResult `json:"files"`
}

// OutOfSync reports whether any processed file misses base keys.
func (r *Report) OutOfSync() bool {
	for _, f := range r.Files {
		if f.Status != StatusSkipped && len(f.Missing) > 0 {
			return true
		}
	}
	return false
}

// Options configure a Processor.
type Options struct {
	Prefix string
	Suffix string
	// CommentPrefixes default to parser.DefaultCommentPrefixes when nil.
	CommentPrefixes []string
	// DryRun computes results without writing any file.
	DryRun bool
}

// Processor brings every translation file of a directory in line with
// its base file.
type Processor struct {
	walker *filewalker.Walker
	parser *parser.Parser
	sync   *Synchronizer
	dryRun bool
}

// NewProcessor creates a Processor.
func NewProcessor(opts Options) *Processor {
	if opts.Prefix == "" && opts.Suffix == "" {
		opts.Prefix = filewalker.DefaultPrefix
		opts.Suffix = filewalker.DefaultSuffix
	}
	if opts.CommentPrefixes == nil {
		opts.CommentPrefixes = parser.DefaultCommentPrefixes
	}

	p := parser.NewParser(opts.CommentPrefixes...)
	return &Processor{
		walker: filewalker.NewWalker(opts.Prefix, opts.Suffix),
		parser: p,
		sync:   NewSynchronizer(p),
		dryRun: opts.DryRun,
	}
}

// Process synchronizes the translation files in dir against baseName.
//
// Files are handled one at a time in name order. A file that is not valid
// UTF-8 is skipped and left untouched. Any other read or write failure
// stops the run and is returned together with the results gathered so far.
// The base file is only read.
func (p *Processor) Process(ctx context.Context, dir, baseName string) (*Report, error) {
	return p.run(ctx, dir, baseName, !p.dryRun)
}

// Check reports missing and obsolete keys without writing anything. It
// returns ErrOutOfSync if any translation misses base keys.
func (p *Processor) Check(ctx context.Context, dir, baseName string) (*Report, error) {
	report, err := p.run(ctx, dir, baseName, false)
	if err != nil {
		return report, err
	}
	if report.OutOfSync() {
		return report, ErrOutOfSync
	}
	return report, nil
}

func (p *Processor) run(ctx context.Context, dir, baseName string, write bool) (*Report, error) {
	report := &Report{Dir: dir, Base: baseName}

	baseLines, err := linestore.ReadLines(filepath.Join(dir, baseName))
	if err != nil {
		return report, fmt.Errorf("load base file: %w", err)
	}
	baseProps := p.parser.Parse(baseLines)

	entries, err := p.walker.Walk(dir, baseName)
	if err != nil {
		return report, err
	}

	log.Info().
		Str("dir", dir).
		Str("base", baseName).
		Int("keys", len(baseProps)).
		Int("files", len(entries)).
		Msg("Synchronizing translations")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := p.processFile(entry, baseProps, baseLines, write)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, result)
	}

	return report, nil
}

func (p *Processor) processFile(entry filewalker.FileEntry, baseProps parser.Properties, baseLines []string, write bool) (FileResult, error) {
	result := FileResult{Path: entry.Path}

	raw, lines, err := linestore.ReadFile(entry.Path)
	if errors.Is(err, linestore.ErrDecode) {
		log.Warn().Err(err).Str("file", entry.Name).Msg("Skipping undecodable file")
		result.Status = StatusSkipped
		result.Reason = err.Error()
		return result, nil
	}
	if err != nil {
		return result, err
	}

	targetProps := p.parser.Parse(lines)
	result.Missing, result.Obsolete = Diff(baseProps, targetProps)

	synced := p.sync.Sync(baseProps, targetProps, baseLines)
	changed := !bytes.Equal(raw, linestore.Render(synced))

	switch {
	case !write && changed:
		result.Status = StatusWouldChange
	case !write:
		result.Status = StatusUnchanged
	default:
		if err := linestore.WriteLines(entry.Path, synced); err != nil {
			return result, err
		}
		result.Status = StatusSynced
		if !changed {
			result.Status = StatusUnchanged
		}
	}

	log.Info().
		Str("file", entry.Name).
		Str("status", string(result.Status)).
		Int("missing", len(result.Missing)).
		Int("obsolete", len(result.Obsolete)).
		Msg("Processed translation file")

	return result, nil
}
