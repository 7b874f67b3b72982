package markup

import "strings"

type mathSymbol struct {
	command string
	symbol  string
}

// mathSymbols is applied in order. A command that is a prefix of another
// must come after it.
var mathSymbols = []mathSymbol{
	{`\rightarrow`, "→"},
	{`\Rightarrow`, "⇒"},
	{`\leftarrow`, "←"},
	{`\Leftarrow`, "⇐"},
	{`\approx`, "≈"},
	{`\infty`, "∞"},
	{`\times`, "×"},
	{`\sqrt`, "√"},
	{`\cdot`, "*"},
	{`\leq`, "≤"},
	{`\geq`, "≥"},
	{`\neq`, "≠"},
	{`\div`, "÷"},
	{`\sim`, "∼"},
	{`\pm`, "±"},
}

var mathLeftovers = strings.NewReplacer(
	"{", "",
	"}", "",
	"_", "",
	`\`, "",
)

// TranslateMath rewrites the body of an inline math span (without its \( \)
// delimiters) into plain text. Only the symbols in mathSymbols are known;
// other commands keep their name and lose the backslash, so \frac{a}{b}
// comes out as "fracab".
func TranslateMath(body string) string {
	for _, m := range mathSymbols {
		body = strings.ReplaceAll(body, m.command, m.symbol)
	}
	body = mathLeftovers.Replace(body)
	return strings.Join(strings.Fields(body), "")
}
