package classify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	classifier := NewClassifier(nil, DefaultScopePolicy())

	classifier.WriteTable(&buf, []string{"Lead Designer", "Translator", "Tea Maker"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Regexp(t, `^Lead Designer\s+design\s+in\s+designer$`, lines[0])
	assert.Regexp(t, `^Translator\s+localization\s+out\s+translator$`, lines[1])
	assert.Regexp(t, `^Tea Maker\s+other\s+out\s+-$`, lines[2])
	assert.Regexp(t, `(?m)^design\s+1$`, buf.String())
}
