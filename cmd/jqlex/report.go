package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/nihei9/jqlex/config"
	"github.com/nihei9/jqlex/diag"
	"github.com/nihei9/jqlex/lexer"
)

var errRejected = errors.New("the query was rejected")

type checkResult struct {
	OK         bool             `json:"ok"`
	Tokens     int              `json:"tokens"`
	Diagnostic *diag.Diagnostic `json:"diagnostic,omitempty"`
	Message    string           `json:"message,omitempty"`
}

type reporter struct {
	w        io.Writer
	renderer *diag.Renderer
	format   string
}

// check tokenizes a query and writes the outcome. It returns errRejected when the query has a lexical error, and
// any other error as it is.
func (r *reporter) check(src string) error {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		var dErr *diag.Error
		if !errors.As(err, &dErr) {
			return err
		}
		if err := r.writeDiagnostic(src, dErr.Diagnostic); err != nil {
			return err
		}
		return errors.Wrap(errRejected, dErr.Error())
	}

	// The EOF token isn't counted.
	n := len(toks) - 1
	if r.format == config.FormatJSON {
		return r.writeJSON(&checkResult{
			OK:     true,
			Tokens: n,
		})
	}
	_, err = fmt.Fprintf(r.w, "ok: %v tokens\n", n)
	return err
}

// tokens writes the tokens of a query, or the diagnostic when the query has a lexical error.
func (r *reporter) tokens(src string) error {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		var dErr *diag.Error
		if !errors.As(err, &dErr) {
			return err
		}
		if err := r.writeDiagnostic(src, dErr.Diagnostic); err != nil {
			return err
		}
		return errors.Wrap(errRejected, dErr.Error())
	}

	if r.format == config.FormatJSON {
		return r.writeJSON(toks)
	}
	for _, tok := range toks {
		if _, err := fmt.Fprintln(r.w, tok); err != nil {
			return err
		}
	}
	return nil
}

func (r *reporter) writeDiagnostic(src string, d diag.Diagnostic) error {
	msg := r.renderer.Render(d)
	if r.format == config.FormatJSON {
		return r.writeJSON(&checkResult{
			OK:         false,
			Diagnostic: &d,
			Message:    msg,
		})
	}
	if _, err := fmt.Fprintln(r.w, msg); err != nil {
		return err
	}
	if ex := diag.Excerpt(src, d); ex != "" {
		if _, err := fmt.Fprintln(r.w, ex); err != nil {
			return err
		}
	}
	return nil
}

func (r *reporter) writeJSON(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	_, err = fmt.Fprintln(r.w, string(b))
	return err
}
