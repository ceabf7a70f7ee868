package analyze

import (
	"regexp"
	"strings"

	"github.com/tabscribe/tabscribe/model"
)

// Run tokenizes preprocessed text into a RawScore: metadata, sections,
// and per-bar tokens with repeat/volta flags. Bracket balance across
// bars and all musical range checks are the validator's job; Run only
// rejects constructs that cannot be tokenized at all.
func Run(text string) (*RawScore, error) {
	raw := &RawScore{Metadata: make(map[string]string)}

	var current *RawSection
	currentVolta := 0 // 0 means no volta bracket is open

	flush := func() {
		if current != nil {
			raw.Sections = append(raw.Sections, *current)
		}
	}

	for i, line := range strings.Split(text, "\n") {
		lineNum := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "$") {
			key, value, err := parseMetadataLine(line, lineNum)
			if err != nil {
				return nil, err
			}
			if _, seen := raw.Metadata[key]; !seen {
				raw.Keys = append(raw.Keys, key)
			}
			raw.Metadata[key] = value
			continue
		}

		if name, ok, err := parseSectionHeader(line, lineNum); err != nil {
			return nil, err
		} else if ok {
			flush()
			current = &RawSection{Name: name, Line: lineNum}
			currentVolta = 0
			continue
		}

		if current == nil {
			current = &RawSection{IsDefault: true, Line: lineNum}
		}
		bar, err := parseBarLine(line, lineNum, &currentVolta)
		if err != nil {
			return nil, err
		}
		current.Bars = append(current.Bars, bar)
	}
	flush()
	return raw, nil
}

var metadataLine = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)\s*=\s*"([^"]*)"$`)

func parseMetadataLine(line string, lineNum int) (string, string, error) {
	m := metadataLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", errAt(lineNum, "Invalid metadata format: %s", line)
	}
	return m[1], m[2], nil
}

var sectionHeader = regexp.MustCompile(`^\[([^\[\]]*)\]$`)

// parseSectionHeader reports whether the line is a section header. A
// bracketed name is only a header when it is the entire line; "[Am]"
// followed by notes is a chord symbol inside a bar.
func parseSectionHeader(line string, lineNum int) (string, bool, error) {
	m := sectionHeader.FindStringSubmatch(line)
	if m == nil {
		if strings.HasPrefix(line, "[") && !strings.Contains(line, "]") && !strings.Contains(line, " ") {
			return "", false, errAt(lineNum, "Unterminated section header: %s", line)
		}
		return "", false, nil
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false, errAt(lineNum, "Empty section name")
	}
	return name, true, nil
}

var (
	voltaEndSuffix   = regexp.MustCompile(`\s+\}(\d+)$`)
	voltaEndInline   = regexp.MustCompile(`\s+(\d+)\}$`)
	voltaStartPrefix = regexp.MustCompile(`^\{(\d+)\s+`)
	bareVoltaOpen    = regexp.MustCompile(`^\{\d+$`)
)

// parseBarLine peels bracket markers off one bar line and tokenizes the
// remaining content. The preprocessor has already joined every marker
// onto its content line, so no lookahead is needed; *openVolta carries
// the active volta number between bars of the same section.
func parseBarLine(line string, lineNum int, openVolta *int) (RawBar, error) {
	bar := RawBar{Line: lineNum}
	endNum := 0

	// closers first; a volta close may itself be followed by a repeat
	// close ("... }2 }")
	for {
		if strings.HasSuffix(line, " }") {
			bar.RepeatEnd = true
			line = strings.TrimSpace(strings.TrimSuffix(line, " }"))
			continue
		}
		m := voltaEndSuffix.FindStringSubmatch(line)
		if m == nil {
			// closer as written in source, before canonicalization
			m = voltaEndInline.FindStringSubmatch(line)
		}
		if m != nil {
			bar.VoltaEnd = true
			endNum = atoi(m[1])
			line = strings.TrimSpace(line[:len(line)-len(m[0])])
			continue
		}
		break
	}

	if strings.HasPrefix(line, "{ ") || line == "{" {
		bar.RepeatStart = true
		line = strings.TrimSpace(strings.TrimPrefix(line, "{"))
	}
	if m := voltaStartPrefix.FindStringSubmatch(line); m != nil {
		if *openVolta != 0 {
			return bar, errAt(lineNum, "Volta bracket %s opened inside volta bracket %d", m[1], *openVolta)
		}
		bar.VoltaStart = true
		*openVolta = atoi(m[1])
		line = strings.TrimSpace(line[len(m[0]):])
	} else if bareVoltaOpen.MatchString(line) {
		// "{n" with nothing after it: the bracket closed before any
		// content
		return bar, errAt(lineNum, "Empty volta bracket")
	}

	switch {
	case bar.VoltaEnd && *openVolta == 0:
		return bar, errAt(lineNum, "Volta end without a matching volta start")
	case bar.VoltaEnd:
		if *openVolta != endNum {
			return bar, errAt(lineNum, "Mismatched volta bracket numbers")
		}
		bar.VoltaNumber = endNum
		*openVolta = 0
	case *openVolta != 0:
		// opening bar of the bracket, or a bar inside a multi-bar one
		bar.VoltaNumber = *openVolta
	}

	if line == "" {
		if bar.VoltaStart || bar.VoltaEnd {
			return bar, errAt(lineNum, "Empty volta bracket")
		}
		return bar, errAt(lineNum, "Empty repeat bracket")
	}

	tokens, err := tokenizeBar(line, lineNum)
	if err != nil {
		return bar, err
	}
	bar.Tokens = tokens
	return bar, nil
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// tokenizeBar splits bar content into note, rest, voicing and
// chord-symbol tokens and tags tuplet membership. It records the tuplet
// count only; duration arithmetic happens downstream.
func tokenizeBar(content string, lineNum int) ([]Token, error) {
	words, err := splitWords(content, lineNum)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	tupletFrom := -1

	for _, w := range words {
		switch {
		case w == "[":
			if tupletFrom >= 0 {
				return nil, errAt(lineNum, "Nested tuplet bracket")
			}
			tupletFrom = len(tokens)
		case strings.HasPrefix(w, "]"):
			count := atoiOk(w[1:])
			if count < 2 {
				return nil, errAt(lineNum, "Invalid tuplet marker %q", w)
			}
			if tupletFrom < 0 {
				return nil, errAt(lineNum, "Tuplet close without open")
			}
			if tupletFrom == len(tokens) {
				return nil, errAt(lineNum, "Empty tuplet bracket")
			}
			for i := tupletFrom; i < len(tokens); i++ {
				tokens[i].Tuplet = count
			}
			tupletFrom = -1
		default:
			tok, err := classifyWord(w, lineNum)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}
	if tupletFrom >= 0 {
		return nil, errAt(lineNum, "Unterminated tuplet bracket")
	}
	return tokens, nil
}

// splitWords separates on whitespace, keeping a parenthesized voicing
// (with its ":duration" suffix) as a single word and a lone "[" or
// "]n" as tuplet markers.
func splitWords(content string, lineNum int) ([]string, error) {
	var words []string
	i := 0
	for i < len(content) {
		for i < len(content) && content[i] == ' ' {
			i++
		}
		if i >= len(content) {
			break
		}
		start := i
		if content[i] == '(' {
			depth := 0
			for i < len(content) {
				if content[i] == '(' {
					depth++
				} else if content[i] == ')' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
				i++
			}
			if depth != 0 {
				return nil, errAt(lineNum, "Unterminated voicing parenthesis")
			}
			// optional ":duration" attached to the closing parenthesis
			for i < len(content) && content[i] != ' ' {
				i++
			}
		} else {
			for i < len(content) && content[i] != ' ' {
				i++
			}
		}
		words = append(words, content[start:i])
	}
	return words, nil
}

var (
	restToken = regexp.MustCompile(`^r:?(\d{1,2}\.?)?$`)
	noteToken = regexp.MustCompile(`^(?:(\d+)-)?(\d+|[xX])(?::(\d{1,2}\.?))?$`)
)

func classifyWord(w string, lineNum int) (Token, error) {
	tok := Token{Text: w, Line: lineNum}

	switch {
	case strings.HasPrefix(w, "@"):
		name := w[1:]
		if name == "" {
			return tok, errAt(lineNum, "Empty chord name")
		}
		tok.Kind = TokenChord
		tok.Chord = name
		return tok, nil

	case strings.HasPrefix(w, "["):
		if !strings.HasSuffix(w, "]") || len(w) < 3 {
			return tok, errAt(lineNum, "Malformed chord symbol %q", w)
		}
		tok.Kind = TokenChord
		tok.Chord = w[1 : len(w)-1]
		return tok, nil

	case strings.HasPrefix(w, "("):
		return classifyVoicing(w, lineNum)

	case restToken.MatchString(w):
		tok.Kind = TokenRest
		tok.Duration = restToken.FindStringSubmatch(w)[1]
		return tok, nil
	}

	m := noteToken.FindStringSubmatch(w)
	if m == nil {
		return tok, errAt(lineNum, "Malformed note token %q", w)
	}
	tok.Kind = TokenNote
	tok.String = m[1]
	tok.Fret = m[2]
	tok.Duration = m[3]
	if tok.Duration != "" {
		if _, err := model.ParseDuration(tok.Duration); err != nil {
			return tok, errAt(lineNum, "Invalid duration in %q", w)
		}
	}
	return tok, nil
}

func classifyVoicing(w string, lineNum int) (Token, error) {
	tok := Token{Kind: TokenVoicing, Text: w, Line: lineNum}

	end := strings.LastIndex(w, ")")
	inner := strings.TrimSpace(w[1:end])
	if inner == "" {
		return tok, errAt(lineNum, "Empty voicing")
	}
	if rest := w[end+1:]; rest != "" {
		if !strings.HasPrefix(rest, ":") {
			return tok, errAt(lineNum, "Malformed voicing %q", w)
		}
		tok.Duration = rest[1:]
		if _, err := model.ParseDuration(tok.Duration); err != nil {
			return tok, errAt(lineNum, "Invalid duration in %q", w)
		}
	}

	for _, member := range strings.Fields(inner) {
		if strings.Contains(member, ":") {
			return tok, errAt(lineNum, "Voicing notes share the group duration, %q has its own", member)
		}
		m := noteToken.FindStringSubmatch(member)
		if m == nil {
			return tok, errAt(lineNum, "Malformed note token %q", member)
		}
		if m[1] == "" {
			return tok, errAt(lineNum, "Voicing note %q needs an explicit string", member)
		}
		tok.Group = append(tok.Group, Token{
			Kind:   TokenNote,
			Text:   member,
			String: m[1],
			Fret:   m[2],
			Line:   lineNum,
		})
	}
	return tok, nil
}

func atoiOk(s string) int {
	if s == "" {
		return -1
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}
