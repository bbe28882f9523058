// Package validate checks generated dashboards and rules against the set
// of metrics the trade engine actually exports, so a renamed metric fails
// the build instead of silently producing an empty panel.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Dashboard validates every panel query in a built dashboard: the PromQL
// must parse and every referenced metric must be known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				checkPanel(&p.RowPanel.Panels[i], known, &res)
			}
		}
		if p.Panel != nil {
			checkPanel(p.Panel, known, &res)
		}
	}
	return res
}

// Exprs validates a set of bare PromQL expressions, as used by recording
// and alert rules.
func Exprs(exprs []string, known map[string]bool) Result {
	var res Result
	for _, expr := range exprs {
		checkExpr(expr, "rule", known, &res)
	}
	return res
}

func checkPanel(p *dashboard.Panel, known map[string]bool, res *Result) {
	title := "untitled"
	if p.Title != nil && *p.Title != "" {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", title))
		return
	}

	for _, target := range p.Targets {
		expr, err := targetExpr(target)
		if err != nil {
			res.Errors = append(res.Errors,
				fmt.Sprintf("panel %q: extracting query: %v", title, err))
			continue
		}
		if expr == "" {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("panel %q has a target with no expression", title))
			continue
		}
		checkExpr(expr, "panel "+title, known, res)
	}
}

// targetExpr pulls the expr field out of a dataquery without depending on
// the concrete query type.
func targetExpr(target any) (string, error) {
	raw, err := json.Marshal(target)
	if err != nil {
		return "", err
	}
	var q struct {
		Expr string `json:"expr"`
	}
	if err := json.Unmarshal(raw, &q); err != nil {
		return "", err
	}
	return q.Expr, nil
}

func checkExpr(expr, where string, known map[string]bool, res *Result) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors,
			fmt.Sprintf("%s: invalid PromQL %q: %v", where, expr, err))
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})
}

// knownMetric checks a metric name, accepting the histogram series
// suffixes for any known histogram base name.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
