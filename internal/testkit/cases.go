package testkit

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	mdast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence marks the program under test.
const InputFence = "ember"

// StdinFence supplies the input consumed by read_int.
const StdinFence = "stdin"

// AssertionType is the language tag of an assertion fence.
type AssertionType string

const (
	AssertAST          AssertionType = "ast"
	AssertType         AssertionType = "type"
	AssertIR           AssertionType = "ir"
	AssertAsmTail      AssertionType = "asm-tail"
	AssertOutput       AssertionType = "output"
	AssertCompileError AssertionType = "compile-error"
)

var assertionTypes = map[string]AssertionType{
	string(AssertAST):          AssertAST,
	string(AssertType):         AssertType,
	string(AssertIR):           AssertIR,
	string(AssertAsmTail):      AssertAsmTail,
	string(AssertOutput):       AssertOutput,
	string(AssertCompileError): AssertCompileError,
}

// Assertion is one expectation about a case.
type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

// Case is a single golden case: a "Test: name" heading followed by fences.
type Case struct {
	Name       string
	Input      string
	Stdin      string
	Assertions []Assertion
}

// LoadCases reads and extracts the cases of one Markdown file.
func LoadCases(path string) ([]Case, error) {
	// #nosec G304 -- test data path
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := ExtractCases(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// ExtractCases parses a Markdown document and extracts every case in order.
func ExtractCases(source []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		cases   []Case
		current *Case
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validateCase(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := mdast.Walk(doc, func(node mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *mdast.Heading:
			heading := nodeText(n, source)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return mdast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return mdast.WalkStop, err
			}
			current = &Case{Name: name}

		case *mdast.FencedCodeBlock:
			lang := string(n.Language(source))
			line := lineOf(n, source)
			if current == nil {
				if lang != "" {
					return mdast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, lang)
				}
				return mdast.WalkContinue, nil
			}
			content := fenceContent(n, source)
			switch lang {
			case InputFence:
				if current.Input != "" {
					return mdast.WalkStop, fmt.Errorf("line %d: multiple input fences in test '%s'", line, current.Name)
				}
				current.Input = strings.TrimRight(content, "\n")
			case StdinFence:
				current.Stdin = content
			case "":
			default:
				typ, ok := assertionTypes[lang]
				if !ok {
					return mdast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, lang, current.Name)
				}
				current.Assertions = append(current.Assertions, Assertion{
					Type:    typ,
					Content: strings.TrimRight(content, "\n"),
					Line:    line,
				})
			}
		}
		return mdast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validateCase(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test '%s' has no %s fence", c.Name, InputFence)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", c.Name)
	}
	return nil
}

func nodeText(node mdast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = mdast.Walk(node, func(n mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if t, ok := n.(*mdast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return mdast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *mdast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func lineOf(node mdast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte{'\n'}) + 1
}
