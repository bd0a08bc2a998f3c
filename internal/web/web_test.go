package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesRenderEveryPage(t *testing.T) {
	tmpl, err := Templates("Asia/Seoul")
	require.NoError(t, err)

	for _, page := range []string{"home", "login", "signup", "upload", "result", "history", "shop", "error"} {
		var buf bytes.Buffer
		err := tmpl.ExecuteTemplate(&buf, "base", map[string]any{"Page": page})
		require.NoError(t, err, page)
		assert.Contains(t, buf.String(), "Personal Color", page)
	}
}

func TestTemplateFuncs(t *testing.T) {
	tmpl, err := Templates("Asia/Seoul")
	require.NoError(t, err)

	var buf bytes.Buffer
	data := map[string]any{
		"Page": "result",
		"Analysis": map[string]any{
			"DisplayName":    "Autumn Warm",
			"Confidence":     0.8123,
			"DominantColors": []string{"#D2691E", "red;}</style>"},
			"CreatedAt":      time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
			"ImageURL":       "/uploads/x.png",
		},
	}
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "base", data))

	out := buf.String()
	assert.Contains(t, out, "81.2%")
	assert.Contains(t, out, "2024-03-02 00:30")
	assert.Contains(t, out, "#D2691E")
	assert.NotContains(t, out, "red;}</style>")
}

func TestIsHexColor(t *testing.T) {
	assert.True(t, isHexColor("#a1B2c3"))
	assert.False(t, isHexColor("a1b2c3"))
	assert.False(t, isHexColor("#zzzzzz"))
}
