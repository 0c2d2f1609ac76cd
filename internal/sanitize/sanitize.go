// Package sanitize guarantees that no code-shaped content reaches the
// user. Stage one strips well-formed markdown fences and inline spans;
// stage two is a residual heuristic that catches unfenced code by looking
// structurally code-like, accepting false positives in exchange for a
// hard guarantee.
package sanitize

import (
	"regexp"
	"strings"
)

// Placeholders substituted for removed content. The heuristic stages mask
// these out so a sanitized text is a fixed point of Sanitize.
const (
	FencedPlaceholder  = "[code omitted — EduTutor does not provide code]"
	InlinePlaceholder  = "[code omitted]"
	RemovedPlaceholder = "[content removed: code-like output]"
)

var (
	// Fenced code block: triple-backtick pair, content may span lines.
	fencedRe = regexp.MustCompile("(?s)```.*?```")
	// Inline backtick span.
	inlineRe = regexp.MustCompile("`[^`]+`")

	// Structural punctuation that marks a line as code-shaped.
	structuralRe = regexp.MustCompile(`[{};()<>:=\[\]]`)
	// Rebuild drop set. Deliberately omits the colon so prose like
	// "Definition: ..." survives the rebuild that its colon triggered.
	rebuildPunctRe = regexp.MustCompile(`[{};()<>=\[\]]`)
	// Keywords that disqualify a line during the rebuild.
	keywordRe = regexp.MustCompile(`(?i)\b(return|yield|import|from|def|class)\b`)

	// Structural patterns that flag the whole text as code-like.
	codeLikeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*def\s+\w+\(`),
		regexp.MustCompile(`(?m)^\s*class\s+\w+\s*:`),
		regexp.MustCompile(`(?i)\bfor\s+\w+\s+in\s+`),
		regexp.MustCompile(`(?i)\bwhile\s+.*:`),
		regexp.MustCompile(`(?i)\breturn\b`),
	}

	placeholderReplacer = strings.NewReplacer(
		FencedPlaceholder, "",
		InlinePlaceholder, "",
		RemovedPlaceholder, "",
	)
)

// punctRatioThreshold is the fraction of non-blank lines containing
// structural punctuation above which text is treated as code.
const punctRatioThreshold = 0.35

// maxLineLen drops absurdly long lines during the rebuild.
const maxLineLen = 300

// StripCodeBlocks replaces fenced code blocks and inline backtick spans
// with fixed placeholders. Any orphan fence delimiter left over (an
// unclosed block) is replaced too, so the output never contains one.
func StripCodeBlocks(text string) string {
	text = fencedRe.ReplaceAllString(text, FencedPlaceholder)
	// Inline spans to a fixed point: replacing a span can pair up
	// previously unpaired backticks around it.
	for {
		next := inlineRe.ReplaceAllString(text, InlinePlaceholder)
		if next == text {
			break
		}
		text = next
	}
	text = strings.ReplaceAll(text, "```", FencedPlaceholder)
	return text
}

// DetectCodeLike reports whether text still looks structurally like code.
// Placeholder text inserted by StripCodeBlocks is ignored.
func DetectCodeLike(text string) bool {
	masked := placeholderReplacer.Replace(text)

	var lines []string
	for _, ln := range strings.Split(masked, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return false
	}

	punct := 0
	for _, ln := range lines {
		if structuralRe.MatchString(ln) {
			punct++
		}
	}
	if float64(punct)/float64(len(lines)) > punctRatioThreshold {
		return true
	}

	for _, re := range codeLikeRes {
		if re.MatchString(masked) {
			return true
		}
	}
	return false
}

// Sanitize post-processes generated text so the caller never receives raw
// code. Never fails; idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
//
// Steps:
//  1. Replace fenced blocks and inline spans with placeholders.
//  2. If the result still looks code-like, rebuild it line by line,
//     dropping blank, overlong, punctuation-bearing, and keyword lines.
//  3. Empty rebuild output is replaced by a fixed placeholder.
func Sanitize(text string) string {
	t := StripCodeBlocks(text)

	if DetectCodeLike(t) {
		var safe []string
		for _, ln := range strings.Split(t, "\n") {
			ln = strings.TrimSpace(ln)
			if ln == "" || len(ln) > maxLineLen {
				continue
			}
			masked := placeholderReplacer.Replace(ln)
			if rebuildPunctRe.MatchString(masked) {
				continue
			}
			if keywordRe.MatchString(masked) {
				continue
			}
			safe = append(safe, ln)
		}
		t = strings.TrimSpace(strings.Join(safe, "\n"))
		if t == "" {
			t = RemovedPlaceholder
		}
	}

	return strings.TrimSpace(t)
}
