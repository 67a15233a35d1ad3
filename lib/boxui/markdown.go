// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/boxoffice/lib/format"
)

// The parser's configuration never changes; parsing keeps its state
// per call.
var (
	descriptionParser     goldmark.Markdown
	descriptionParserOnce sync.Once
)

func markdownParser() goldmark.Markdown {
	descriptionParserOnce.Do(func() {
		descriptionParser = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	})
	return descriptionParser
}

// wrapBreakpoints are the characters ansi.Wrap may break after.
const wrapBreakpoints = " ,.;-"

// renderDescription renders an event description, written by
// organizers in markdown, as styled text wrapped to width. Escape
// sequences in the input are stripped before parsing. Raw HTML is
// dropped. Soft line breaks reflow.
func renderDescription(input string, theme Theme, width int, profile termenv.Profile) string {
	input = strings.TrimSpace(format.Text(input))
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := markdownParser().Parser().Parse(text.NewReader(source))

	// The renderer writes nowhere; it only carries the forced profile
	// so tests and non-TTY runs style consistently.
	styles := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	styles.SetColorProfile(profile)

	walker := &descriptionWalker{source: source, theme: theme, width: max(width, 10), styles: styles}
	_ = ast.Walk(document, walker.walk)
	return strings.TrimRight(walker.output.String(), "\n")
}

// descriptionWalker accumulates inline text per block and wraps it
// when the block closes.
type descriptionWalker struct {
	source []byte
	theme  Theme
	width  int
	styles *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	// indent is the prefix of every line inside lists and quotes;
	// bullet replaces it on the first line of a list item.
	indent []string
	bullet string
	lists  []listLevel

	bold, italic, struck int
}

type listLevel struct {
	ordered bool
	next    int
	tight   bool
}

func (walker *descriptionWalker) prefix() string {
	return strings.Join(walker.indent, "")
}

func (walker *descriptionWalker) tight() bool {
	return len(walker.lists) > 0 && walker.lists[len(walker.lists)-1].tight
}

// blankLine ends the output with exactly one empty line, unless the
// output is empty.
func (walker *descriptionWalker) blankLine() {
	current := walker.output.String()
	if current == "" || strings.HasSuffix(current, "\n\n") {
		return
	}
	if strings.HasSuffix(current, "\n") {
		walker.output.WriteString("\n")
		return
	}
	walker.output.WriteString("\n\n")
}

// emit writes a finished block, wrapped and prefixed.
func (walker *descriptionWalker) emit(content string) {
	if content == "" {
		return
	}
	prefix := walker.prefix()
	wrapped := ansi.Wrap(content, max(walker.width-ansi.StringWidth(prefix), 10), wrapBreakpoints)
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 && walker.bullet != "" {
			walker.output.WriteString(walker.bullet)
			walker.bullet = ""
		} else {
			walker.output.WriteString(prefix)
		}
		walker.output.WriteString(line)
		walker.output.WriteString("\n")
	}
}

func (walker *descriptionWalker) style(content string) string {
	style := walker.styles.NewStyle().Foreground(walker.theme.NormalText)
	if walker.bold > 0 {
		style = style.Bold(true)
	}
	if walker.italic > 0 {
		style = style.Italic(true)
	}
	if walker.struck > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (walker *descriptionWalker) faint(content string) string {
	return walker.styles.NewStyle().Foreground(walker.theme.FaintText).Render(content)
}

func (walker *descriptionWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			walker.inline.Reset()
			return ast.WalkContinue, nil
		}
		walker.emit(walker.inline.String())
		walker.inline.Reset()
		if !walker.tight() {
			walker.blankLine()
		}

	case ast.KindHeading:
		if entering {
			walker.inline.Reset()
			return ast.WalkContinue, nil
		}
		content := ansi.Strip(walker.inline.String())
		walker.inline.Reset()
		walker.blankLine()
		walker.emit(walker.styles.NewStyle().Bold(true).Foreground(walker.theme.HeaderForeground).Render(content))
		walker.blankLine()

	case ast.KindBlockquote:
		if entering {
			walker.indent = append(walker.indent, "│ ")
		} else {
			walker.indent = walker.indent[:len(walker.indent)-1]
			walker.blankLine()
		}

	case ast.KindList:
		list := node.(*ast.List)
		if entering {
			walker.lists = append(walker.lists, listLevel{ordered: list.IsOrdered(), next: list.Start, tight: list.IsTight})
		} else {
			walker.lists = walker.lists[:len(walker.lists)-1]
			if !walker.tight() {
				walker.blankLine()
			}
		}

	case ast.KindListItem:
		if len(walker.lists) == 0 {
			return ast.WalkContinue, nil
		}
		if entering {
			level := &walker.lists[len(walker.lists)-1]
			marker := "• "
			if level.ordered {
				marker = fmt.Sprintf("%d. ", level.next)
				level.next++
			}
			walker.bullet = walker.prefix() + marker
			walker.indent = append(walker.indent, strings.Repeat(" ", ansi.StringWidth(marker)))
		} else {
			walker.indent = walker.indent[:len(walker.indent)-1]
		}

	case ast.KindThematicBreak:
		if entering {
			walker.blankLine()
			walker.emit(walker.faint(strings.Repeat("─", walker.width-ansi.StringWidth(walker.prefix()))))
			walker.blankLine()
		}

	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			lines := node.Lines()
			walker.blankLine()
			for index := range lines.Len() {
				segment := lines.At(index)
				line := strings.TrimRight(string(segment.Value(walker.source)), "\n")
				walker.output.WriteString(walker.prefix() + "  " + walker.faint(line) + "\n")
			}
			walker.blankLine()
		}
		return ast.WalkSkipChildren, nil

	case ast.KindHTMLBlock, ast.KindRawHTML:
		return ast.WalkSkipChildren, nil

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			walker.inline.WriteString(walker.style(string(textNode.Segment.Value(walker.source))))
			switch {
			case textNode.HardLineBreak():
				walker.inline.WriteString("\n")
			case textNode.SoftLineBreak():
				walker.inline.WriteString(" ")
			}
		}

	case ast.KindString:
		if entering {
			walker.inline.WriteString(walker.style(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		counter := &walker.italic
		if node.(*ast.Emphasis).Level >= 2 {
			counter = &walker.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case extast.KindStrikethrough:
		if entering {
			walker.struck++
		} else {
			walker.struck--
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(walker.source))
				}
			}
			walker.inline.WriteString(walker.faint(code.String()))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindLink:
		if !entering {
			destination := string(node.(*ast.Link).Destination)
			if destination != "" {
				walker.inline.WriteString(" " + walker.faint("("+destination+")"))
			}
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(walker.source))
			walker.inline.WriteString(walker.styles.NewStyle().Foreground(walker.theme.LinkForeground).Render(url))
		}
		return ast.WalkSkipChildren, nil

	case ast.KindImage:
		if entering {
			var alt strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					alt.Write(textNode.Segment.Value(walker.source))
				}
			}
			walker.inline.WriteString(walker.faint("[" + alt.String() + "]"))
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}
