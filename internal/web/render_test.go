package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEntry(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			"headword wrapped",
			"amor, amoris. love.",
			`<span class="hw">amor</span>, amoris. love.`,
		},
		{
			"diacritics retained in headword",
			"tĕgo, texi: to cover.",
			`<span class="hw">tĕgo</span>, texi: to cover.`,
		},
		{
			"etymology italicized",
			"consul, ulis. [considero] a consul.",
			`<span class="hw">consul</span>, ulis. <em>[considero]</em> a consul.`,
		},
		{
			"author abbreviation cited",
			"amor, love. Cic. Verg.",
			`<span class="hw">amor</span>, love. <cite>Cic.</cite> <cite>Verg.</cite>`,
		},
		{
			"trailing whitespace trimmed",
			"amor, love.   \n",
			`<span class="hw">amor</span>, love.`,
		},
		{
			"non-entry line escaped",
			"(obs. <form>)",
			"<span>(obs. &lt;form&gt;)</span>",
		},
		{
			"markup in body escaped",
			"amor, <b>love</b>.",
			`<span class="hw">amor</span>, &lt;b&gt;love&lt;/b&gt;.`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderEntry(tt.line))
		})
	}
}
