package parser

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/fallinov/prez-app/internal/domain/ports"
)

var frontmatterDelim = []byte("---")

// extractFrontmatter splits a leading YAML block from the deck body. The block
// is only accepted when it decodes to a mapping; anything else stays part of
// the slides.
func extractFrontmatter(content []byte) (ports.Frontmatter, []byte, bool) {
	var fm ports.Frontmatter

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return fm, content, false
	}

	lines := bytes.Split(content, []byte("\n"))
	endIndex := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), frontmatterDelim) {
			endIndex = i
			break
		}
	}

	if endIndex == -1 {
		return fm, content, false
	}

	raw := bytes.Join(lines[1:endIndex], []byte("\n"))
	remaining := bytes.Join(lines[endIndex+1:], []byte("\n"))

	if len(bytes.TrimSpace(raw)) == 0 {
		return fm, remaining, true
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fm, content, false
	}
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return fm, content, false
	}
	if err := node.Content[0].Decode(&fm); err != nil {
		return ports.Frontmatter{}, content, false
	}

	return fm, remaining, true
}
