package preprocess

import (
	"regexp"
	"strings"
)

// Run normalizes raw source text so the analyzer can work line by line
// with no multi-line lookahead: comments are stripped, repeat/volta
// bracket markers are joined onto the line of the content they bracket,
// and blank lines are collapsed (a section boundary keeps a doubled
// blank line as its separator). Run is total; anything malformed is
// passed through for the analyzer to reject with a location.
func Run(text string) string {
	text = stripBlockComments(text)
	lines := strings.Split(text, "\n")
	lines = stripLineComments(lines)
	lines = joinBrackets(lines)
	lines = normalizeBlankLines(lines)
	return strings.Join(lines, "\n")
}

var blockMarker = regexp.MustCompile(`'''|"""`)

func stripBlockComments(text string) string {
	var b strings.Builder
	for {
		open := blockMarker.FindStringIndex(text)
		if open == nil {
			b.WriteString(text)
			return b.String()
		}
		marker := text[open[0]:open[1]]
		b.WriteString(text[:open[0]])
		rest := text[open[1]:]
		close := strings.Index(rest, marker)
		if close < 0 {
			// unterminated block comment swallows the remainder
			return b.String()
		}
		text = rest[close+len(marker):]
	}
}

func stripLineComments(lines []string) []string {
	res := make([]string, 0, len(lines))
	for _, line := range lines {
		res = append(res, cutComment(line))
	}
	return res
}

// cutComment drops a "#" or "//" comment. The marker only counts at the
// start of the line or after whitespace, so tokens like "C#m" survive.
func cutComment(line string) string {
	for i := 0; i < len(line); i++ {
		atMarker := line[i] == '#' || strings.HasPrefix(line[i:], "//")
		if atMarker && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}

var (
	voltaOpen  = regexp.MustCompile(`^\{\d+$`)
	voltaClose = regexp.MustCompile(`^(\d+)\}$`)
)

// joinBrackets rewrites bracket markers that sit on their own line onto
// the adjacent content line with a single space of separation: an
// opener ("{" or "{n") prefixes the next content line, a closer ("}" or
// "n}") suffixes the previous one. Closers are canonicalized to "}n".
func joinBrackets(lines []string) []string {
	var res []string
	var pending string // opener waiting for its content line
	lastContent := -1  // index in res of the last non-blank line

	flushPending := func() {
		if pending != "" {
			res = append(res, pending)
			lastContent = len(res) - 1
			pending = ""
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			res = append(res, "")
		case line == "{" || voltaOpen.MatchString(line):
			flushPending()
			pending = line
		case line == "}":
			flushPending()
			if lastContent >= 0 {
				res[lastContent] += " }"
			} else {
				res = append(res, line)
				lastContent = len(res) - 1
			}
		case voltaClose.MatchString(line):
			flushPending()
			num := voltaClose.FindStringSubmatch(line)[1]
			if lastContent >= 0 {
				res[lastContent] += " }" + num
			} else {
				res = append(res, "}"+num)
				lastContent = len(res) - 1
			}
		default:
			if pending != "" {
				line = pending + " " + line
				pending = ""
			}
			res = append(res, line)
			lastContent = len(res) - 1
		}
	}
	flushPending()
	return res
}

func isSectionHeader(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

// normalizeBlankLines collapses runs of blank lines to a single blank
// line, except around a section header where exactly two mark the
// section boundary. Leading and trailing blanks are dropped.
func normalizeBlankLines(lines []string) []string {
	var res []string
	blanks := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			blanks++
			continue
		}
		if len(res) > 0 {
			switch {
			case isSectionHeader(line) || isSectionHeader(res[len(res)-1]):
				res = append(res, "", "")
			case blanks > 0:
				res = append(res, "")
			}
		}
		res = append(res, line)
		blanks = 0
	}
	return res
}
