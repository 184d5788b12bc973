package emitter

import (
	"context"
	"fmt"
	"io"

	pongo2 "github.com/flosch/pongo2/v6"

	"github.com/awantoch/eepromgen/blob"
	"github.com/awantoch/eepromgen/constants"
	"github.com/awantoch/eepromgen/logger"
)

// IOError reports an input that could not be read. It aborts the whole run.
type IOError struct {
	Ref string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Ref, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Options configures an Emitter. Zero values select the defaults.
type Options struct {
	// Prefix is prepended to every identifier.
	Prefix string
	// Qualifier replaces "static const uint8_t".
	Qualifier string
	// BytesPerLine is how many literals go on each line (16).
	BytesPerLine int
	// Template replaces the declaration template (pongo2 syntax). It sees
	// name, data, size, path, qualifier and per_line.
	Template string
}

// Emitter turns input blobs into array declarations.
type Emitter struct {
	source    blob.Source
	prefix    string
	qualifier string
	perLine   int
	tmpl      *pongo2.Template
}

func New(source blob.Source, opts Options) (*Emitter, error) {
	e := &Emitter{
		source:    source,
		prefix:    opts.Prefix,
		qualifier: constants.DefaultQualifier,
		perLine:   constants.DefaultBytesPerLine,
	}
	if opts.Qualifier != "" {
		e.qualifier = opts.Qualifier
	}
	if opts.BytesPerLine > 0 {
		e.perLine = opts.BytesPerLine
	}
	tmpl, err := compileTemplate(opts.Template)
	if err != nil {
		return nil, err
	}
	e.tmpl = tmpl
	return e, nil
}

// Declaration renders the declaration for data as read from ref.
func (e *Emitter) Declaration(ref string, data []byte) (string, error) {
	if data == nil {
		data = []byte{}
	}
	out, err := e.tmpl.Execute(pongo2.Context{
		"name":      Identifier(ref, e.prefix),
		"data":      data,
		"size":      len(data),
		"path":      ref,
		"qualifier": e.qualifier,
		"per_line":  e.perLine,
	})
	if err != nil {
		return "", fmt.Errorf("render declaration for %s: %w", ref, err)
	}
	return out, nil
}

// Emit writes one declaration per ref to w, in order. Each input is read in
// full before anything is written for it, so the first unreadable input
// stops the run with only the earlier declarations written.
func (e *Emitter) Emit(ctx context.Context, w io.Writer, refs []string) error {
	for _, ref := range refs {
		data, err := e.source.Get(ctx, ref)
		if err != nil {
			return &IOError{Ref: ref, Err: err}
		}
		decl, err := e.Declaration(ref, data)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, decl); err != nil {
			return fmt.Errorf("write declaration for %s: %w", ref, err)
		}
		logger.Debug("emitted %s (%d bytes) from %s", Identifier(ref, e.prefix), len(data), ref)
	}
	return nil
}
