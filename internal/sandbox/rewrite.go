package sandbox

import "strings"

// Rule rewrites one call pattern the model is known to emit that matplotlib
// does not accept. Rules are literal substring replacements applied in order.
type Rule struct {
	Pattern     string
	Replacement string
}

// rewriteRules is the compatibility table. Extend it when a new bad pattern
// shows up in generated scripts; keep entries literal, not general-purpose
// code transformation.
var rewriteRules = []Rule{
	// LaTeX macro matplotlib's mathtext does not know.
	{`\implies`, `\Rightarrow`},
	// Axis-limit shorthand on axes handles; only the set_ form exists.
	{"ax.xlim(", "ax.set_xlim("},
	{"ax.ylim(", "ax.set_ylim("},
	{"ax_linear.xlim(", "ax_linear.set_xlim("},
	{"ax_linear.ylim(", "ax_linear.set_ylim("},
	{"ax_log.xlim(", "ax_log.set_xlim("},
	{"ax_log.ylim(", "ax_log.set_ylim("},
}

// Rewrite applies the compatibility table to generated diagram source.
func Rewrite(code string) string {
	for _, r := range rewriteRules {
		code = strings.ReplaceAll(code, r.Pattern, r.Replacement)
	}
	return code
}
