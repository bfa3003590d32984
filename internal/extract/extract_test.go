package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `let config = {
  modules: [
    {
      module: "clock",
      position: "top_left",
    },
    {
      module: "MMM-weather",
      position: "top_right",
      config: {
        units: "metric",
      },
    },
  ],
};
`

func TestBlock_ReturnsDeclaredBlock(t *testing.T) {
	block, err := Block(sampleConfig, "clock")
	require.NoError(t, err)

	expected := "    {\n      module: \"clock\",\n      position: \"top_left\",\n    },"
	assert.Equal(t, expected, block)
}

func TestBlock_NestedBraces(t *testing.T) {
	block, err := Block(sampleConfig, "MMM-weather")
	require.NoError(t, err)

	// The nested config object must not end the block early.
	assert.True(t, strings.HasPrefix(block, "    {"))
	assert.True(t, strings.HasSuffix(block, "    },"))
	assert.Contains(t, block, `units: "metric"`)
	assert.Equal(t, strings.Count(block, "{"), strings.Count(block, "}"))
}

func TestBlock_OpeningBracePrecedesDeclaration(t *testing.T) {
	// Declaration three lines after the standalone opening brace, matching
	// closing brace two lines later at depth zero.
	doc := "{\n  position: \"bottom\",\n  header: \"x\",\n  module: \"Foo\",\n  config: 1,\n}\n"
	block, err := Block(doc, "Foo")
	require.NoError(t, err)

	lines := strings.Split(block, "\n")
	assert.Equal(t, "{", strings.TrimSpace(lines[0]))
	assert.Equal(t, "}", strings.TrimSpace(lines[len(lines)-1]))
	assert.Len(t, lines, 6)
}

func TestBlock_NotFoundCases(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		module string
	}{
		{"absent module", sampleConfig, "MMM-nope"},
		{"no preceding opening brace", "module: \"Foo\",\nconfig: {},\n", "Foo"},
		{"truncated document", "{\n  module: \"Foo\",\n  config: {\n", "Foo"},
		{"empty document", "", "Foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Block(tt.text, tt.module)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBlock_NoSubstringCollision(t *testing.T) {
	doc := "{\n  module: \"Foo2\",\n}\n"
	_, err := Block(doc, "Foo")
	assert.ErrorIs(t, err, ErrNotFound)

	block, err := Block(doc, "Foo2")
	require.NoError(t, err)
	assert.Contains(t, block, `module: "Foo2"`)
}

func TestBlock_EscapesMetacharacters(t *testing.T) {
	doc := "{\n  module: \"MMM-a.b\",\n}\n"

	// The dot must be literal: "MMM-aXb" would match an unescaped pattern.
	_, err := Block("{\n  module: \"MMM-aXb\",\n}\n", "MMM-a.b")
	assert.ErrorIs(t, err, ErrNotFound)

	block, err := Block(doc, "MMM-a.b")
	require.NoError(t, err)
	assert.Contains(t, block, "MMM-a.b")
}

func TestBlock_SingleQuotedDeclaration(t *testing.T) {
	doc := "{\n  module: 'clock',\n}\n"
	block, err := Block(doc, "clock")
	require.NoError(t, err)
	assert.Contains(t, block, "'clock'")
}

func TestBlock_BalancedBraceCounts(t *testing.T) {
	for _, module := range []string{"clock", "MMM-weather"} {
		block, err := Block(sampleConfig, module)
		require.NoError(t, err)
		assert.Equal(t, strings.Count(block, "{"), strings.Count(block, "}"),
			"block for %s must be brace-balanced", module)
	}
}

func TestDeclaredModules(t *testing.T) {
	modules := DeclaredModules(sampleConfig)
	assert.Equal(t, []string{"clock", "MMM-weather"}, modules)
}

func TestDeclaredModules_Empty(t *testing.T) {
	assert.Empty(t, DeclaredModules("no declarations here"))
}
