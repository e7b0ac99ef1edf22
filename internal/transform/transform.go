// Package transform drives the extraction fixpoint loop: extract regions,
// lex, parse, and render each one independently, splice the generated calls
// back into the text, and repeat until a sweep changes nothing. Generated
// text can itself expose regions the original scan could not see, which is
// why a single pass is not enough.
package transform

import (
	"github.com/conneroisu/tagforge/internal/extractor"
	"github.com/conneroisu/tagforge/internal/lexer"
	"github.com/conneroisu/tagforge/internal/parser"
	"github.com/conneroisu/tagforge/internal/renderer"
)

// Outcome is the per-match record in a run's report. Err is nil exactly when
// the match was transformed and spliced.
type Outcome struct {
	Original  string
	Generated string
	Err       error
}

// Success reports whether the match transformed cleanly.
func (o Outcome) Success() bool {
	return o.Err == nil
}

// Report accumulates per-match outcomes across all passes of one run. It is
// never mutated after the run ends.
type Report struct {
	Outcomes []Outcome
	Passes   int
}

// Succeeded counts matches that transformed cleanly.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Success() {
			n++
		}
	}
	return n
}

// Failed counts matches that were left untouched.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Result is the final output of one run.
type Result struct {
	Output string
	Report Report
}

// Transform runs the fixpoint loop over src until a pass finds no regions or
// makes no progress. Failures are caught at match granularity: a failed
// match keeps its original text in the output and never aborts siblings or
// later passes.
func Transform(src string, cfg renderer.Config) *Result {
	return run(src, extractor.Extract(src), cfg)
}

// TransformMatches is Transform with a caller-supplied match list for the
// first pass, bypassing re-extraction. The matches must have been extracted
// from src itself.
func TransformMatches(src string, matches []extractor.Match, cfg renderer.Config) *Result {
	return run(src, matches, cfg)
}

func run(src string, matches []extractor.Match, cfg renderer.Config) *Result {
	result := &Result{Output: src}

	for len(matches) > 0 {
		result.Report.Passes++

		spliced, progressed := splicePass(result.Output, matches, cfg, &result.Report)
		result.Output = spliced

		if !progressed {
			// Every remaining match failed; re-extracting would find
			// the same regions forever.
			break
		}

		matches = extractor.Extract(result.Output)
	}

	return result
}

// splicePass transforms each match of one pass independently and rebuilds
// the buffer left to right. Reconstruction in original match order makes the
// cumulative offset correction implicit: source positions are consumed
// against the pre-splice snapshot while output grows separately.
func splicePass(src string, matches []extractor.Match, cfg renderer.Config, report *Report) (string, bool) {
	var out []byte
	cursor := 0
	progressed := false

	for _, m := range matches {
		generated, err := transformMatch(m, cfg)
		if err != nil {
			report.Outcomes = append(report.Outcomes, Outcome{Original: m.FullExpression, Err: err})
			continue
		}

		report.Outcomes = append(report.Outcomes, Outcome{Original: m.FullExpression, Generated: generated})

		out = append(out, src[cursor:m.Start]...)
		out = append(out, generated...)
		cursor = m.End
		progressed = true
	}

	if !progressed {
		return src, false
	}

	out = append(out, src[cursor:]...)
	return string(out), true
}

// transformMatch runs the lex, parse, render pipeline on one region.
func transformMatch(m extractor.Match, cfg renderer.Config) (string, error) {
	tokens, err := lexer.Tokenize(m.Content)
	if err != nil {
		return "", err
	}

	el, err := parser.Parse(tokens)
	if err != nil {
		return "", err
	}

	return renderer.Render(el, cfg, 0)
}
