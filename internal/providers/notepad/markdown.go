package notepad

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	bulletItem  = regexp.MustCompile(`^\s*-\s+`)
	orderedItem = regexp.MustCompile(`^\s*\d+\.\s+`)
	quoteLine   = regexp.MustCompile(`^>\s?`)
	headingLine = regexp.MustCompile(`^(#{1,6})\s`)

	inlineRules = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\*\*(.*?)\*\*`), "<strong>$1</strong>"},
		{regexp.MustCompile(`__(.*?)__`), "<strong>$1</strong>"},
		{regexp.MustCompile(`\*(.*?)\*`), "<em>$1</em>"},
		{regexp.MustCompile(`_(.*?)_`), "<em>$1</em>"},
		{regexp.MustCompile("`([^`]+)`"), "<code>$1</code>"},
		{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), `<a href="$2">$1</a>`},
	}
)

// Render converts the small markdown dialect of the notepad to HTML:
// headings, bullet and numbered lists, block quotes, fenced code, and
// inline bold, italic, code and links. Text is escaped before inline
// markup is applied. The output is not sanitized; see Provider.Preview.
func Render(text string) string {
	if text == "" {
		return ""
	}

	var (
		out    []string
		inCode bool
		list   string
	)
	closeList := func() {
		if list != "" {
			out = append(out, "</"+list+">")
			list = ""
		}
	}
	openList := func(tag string) {
		if list != tag {
			closeList()
			list = tag
			out = append(out, "<"+tag+">")
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "```") {
			if inCode {
				out = append(out, "</code></pre>")
			} else {
				out = append(out, "<pre><code>")
			}
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, html.EscapeString(line)+"\n")
			continue
		}

		switch {
		case bulletItem.MatchString(line):
			openList("ul")
			out = append(out, "<li>"+inline(bulletItem.ReplaceAllString(line, ""))+"</li>")
			continue
		case orderedItem.MatchString(line):
			openList("ol")
			out = append(out, "<li>"+inline(orderedItem.ReplaceAllString(line, ""))+"</li>")
			continue
		}
		closeList()

		switch {
		case quoteLine.MatchString(line):
			out = append(out, "<blockquote>"+inline(quoteLine.ReplaceAllString(line, ""))+"</blockquote>")
		case headingLine.MatchString(line):
			level := strconv.Itoa(len(headingLine.FindStringSubmatch(line)[1]))
			out = append(out, "<h"+level+">"+inline(headingLine.ReplaceAllString(line, ""))+"</h"+level+">")
		case strings.TrimSpace(line) == "":
			out = append(out, "<p></p>")
		default:
			out = append(out, "<p>"+inline(line)+"</p>")
		}
	}

	closeList()
	if inCode {
		out = append(out, "</code></pre>")
	}
	return strings.Join(out, "\n")
}

func inline(text string) string {
	out := html.EscapeString(text)
	for _, rule := range inlineRules {
		out = rule.re.ReplaceAllString(out, rule.repl)
	}
	return out
}
