package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/xirr"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	jsonBlock = "json" // a cash flow file
	rateBlock = "rate" // the rate of the previous cash flow file
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with the code.
	// It checks two things:
	// 1. Every topic listed in docs/readme.md can be successfully loaded by the xirr topic <topic_name> command.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from docs/readme.md.

	// Read docs/readme.md line by line and extract topics using regex.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		line := scanner.Text()
		matches := topicRegex.FindStringSubmatch(line)
		if len(matches) > 1 {
			topic := strings.TrimSpace(matches[1])
			topicsInReadme = append(topicsInReadme, topic)
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	// Check 1: Every topic listed in docs/readme.md can be successfully loaded.
	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := GetTopic(topic)
			if err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	// Check 2: Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from docs/readme.md.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}

	var mdFiles []string
	for _, file := range files {
		base := filepath.Base(file)
		if base != "readme.md" {
			mdFiles = append(mdFiles, strings.TrimSuffix(base, ".md"))
		}
	}

	for _, mdFile := range mdFiles {
		found := false
		for _, topic := range topicsInReadme {
			if topic == mdFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in docs/readme.md", mdFile)
		}
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat("../README.md"); err == nil {
		files = append(files, "../README.md")
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			runBlocks(t, file)
		})
	}
}

// HELPER

// Block represents a fenced code block in the markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

// parseMarkdown parses a markdown file and returns a list of Blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	mdParser := goldmark.DefaultParser()
	root := mdParser.Parse(text.NewReader(content))

	var blocks []*Block

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if fcb, ok := n.(*ast.FencedCodeBlock); ok {
			if fcb.Info == nil {
				return ast.WalkContinue, nil
			}
			lang := string(fcb.Info.Segment.Value(content))

			var blockContent strings.Builder
			for i := 0; i < fcb.Lines().Len(); i++ {
				line := fcb.Lines().At(i)
				blockContent.WriteString(string(line.Value(content)))
			}

			switch lang {
			case jsonBlock, rateBlock:
				blocks = append(blocks, &Block{
					Type:    lang,
					Content: blockContent.String(),
					File:    file,
					Line:    lineNumber(content, fcb.Info.Segment.Start),
				})
			}
		}
		return ast.WalkContinue, nil
	})

	return blocks
}

// lineNumber computes the lineNumber for a given offset AST offset.
// the markdown parser we use does not support that feature so we
// have to implement it.
func lineNumber(source []byte, offset int) (lineNumber int) {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

// runBlocks decodes every cash flow block of a markdown file, and checks the rate announced by
// the rate block that follows it.
func runBlocks(t *testing.T, file string) {
	t.Helper()

	var last []xirr.Cashflow
	for _, block := range parseMarkdown(t, file) {
		switch block.Type {
		case jsonBlock:
			cashflows, err := xirr.DecodeCashflows(strings.NewReader(block.Content))
			if err != nil {
				t.Errorf("%s:%d: invalid cash flows: %v", block.File, block.Line, err)
				last = nil
				continue
			}
			last = cashflows

		case rateBlock:
			if last == nil {
				t.Errorf("%s:%d: rate block without cash flows", block.File, block.Line)
				continue
			}
			res, err := xirr.XIRR(last)
			if err != nil {
				t.Errorf("%s:%d: solve failed: %v", block.File, block.Line, err)
				continue
			}
			want := strings.TrimSpace(block.Content)
			if got := res.Rate.String(); got != want {
				t.Errorf("%s:%d: rate mismatch: got %s, want %s", block.File, block.Line, got, want)
			}
		}
	}
}

func TestGetTopics(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"format", "solver"}; !slices.Equal(topics, want) {
		t.Errorf("GetAllTopics() = %v, want %v", topics, want)
	}

	all, err := GetTopics("*")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(all, "# Cash flow file") || !strings.Contains(all, "# Solver") {
		t.Errorf("GetTopics(\"*\") misses a topic:\n%s", all)
	}

	if _, err := GetTopic("nope"); err == nil || !strings.Contains(err.Error(), "format, solver") {
		t.Errorf("GetTopic(\"nope\") error = %v, want the list of topics", err)
	}
}
