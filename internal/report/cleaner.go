package report

import (
	"regexp"
	"strings"
)

// Cleaner strips SDK and terminal noise out of raw agent text so the section
// parser sees plain markdown. Cleaning is best effort and never fails: any
// panic inside a rule returns the input unmodified. Running the cleaner twice
// yields the same output as running it once.
type Cleaner struct {
	ansi        *regexp.Regexp
	contentWrap *regexp.Regexp
	envelope    []*regexp.Regexp
	fencedMeta  *regexp.Regexp
	inlineHead  *regexp.Regexp
	heading     *regexp.Regexp
	boldHeading *regexp.Regexp
	blankRuns   *regexp.Regexp
}

func NewCleaner() *Cleaner {
	return &Cleaner{
		ansi:        regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`),
		contentWrap: regexp.MustCompile(`(?s)^\s*RunResponse\(content='(.*?)'(?:,.*)?\)\s*$`),
		envelope: []*regexp.Regexp{
			regexp.MustCompile(`(?s)Message\(role=.*?\)`),
			regexp.MustCompile(`(?m)^RunResponse.*$`),
			regexp.MustCompile(`(?m)content_type=.*$`),
			regexp.MustCompile(`(?m)event=.*$`),
			regexp.MustCompile(`(?m)messages=.*$`),
		},
		fencedMeta:  regexp.MustCompile("(?s)```[^`]*(?:content_type=|event=|messages=)[^`]*```"),
		inlineHead:  regexp.MustCompile(`([^\n])[ \t]+(#{1,2} )`),
		heading:     regexp.MustCompile(`(?m)^(#{1,6})[ \t]*(\S.*?)[ \t]*$`),
		boldHeading: regexp.MustCompile(`(?m)^(#{1,6} )\*\*(.+?)\*\*$`),
		blankRuns:   regexp.MustCompile(`\n{3,}`),
	}
}

// Clean applies the rule list in order. On any internal failure the original
// text comes back untouched; callers can treat Clean as always succeeding.
func (c *Cleaner) Clean(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = text
		}
	}()

	out = text

	// 1. Terminal noise: ANSI escapes and box-drawing glyphs.
	out = c.ansi.ReplaceAllString(out, "")
	out = strings.Map(func(r rune) rune {
		if r >= 0x2500 && r <= 0x257F {
			return -1
		}
		return r
	}, out)

	// 2. SDK envelope fragments. Unwrapping runs to a fixpoint so a doubly
	// wrapped payload cleans the same on the first and second pass.
	for {
		unwrapped := c.contentWrap.ReplaceAllString(out, "$1")
		if unwrapped == out {
			break
		}
		out = unwrapped
	}
	out = c.fencedMeta.ReplaceAllString(out, "")
	for _, re := range c.envelope {
		out = re.ReplaceAllString(out, "")
	}

	// 3. Literal escapes back into real characters.
	out = strings.ReplaceAll(out, `\n`, "\n")
	out = strings.ReplaceAll(out, `\'`, "'")

	// 4. Heading markers: break inline headings onto their own line, force a
	// single space after the marker, drop surrounding emphasis.
	out = c.inlineHead.ReplaceAllString(out, "$1\n$2")
	out = c.heading.ReplaceAllString(out, "$1 $2")
	out = c.boldHeading.ReplaceAllString(out, "$1$2")

	// 5. Collapse runs of blank lines down to one.
	out = c.blankRuns.ReplaceAllString(out, "\n\n")

	return strings.TrimSpace(out)
}
