package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalk_Order(t *testing.T) {
	ds := Directives{
		&UserDirective{User: "root"},
		&GroupDirective{Group: Directives{
			&RunDirective{Commands: []string{"a"}},
			&GroupDirective{Group: Directives{&WorkdirDirective{Workdir: "/"}}},
		}},
		&IncludeDirective{Include: "x"},
	}

	var visited []string
	Walk(ds, func(path Path, d Directive) bool {
		visited = append(visited, path.String()+":"+string(d.Kind()))
		return true
	})

	assert.Equal(t, []string{
		"0:user",
		"1:group",
		"1.0:run",
		"1.1:group",
		"1.1.0:workdir",
		"2:include",
	}, visited)
}

func TestWalk_SkipChildren(t *testing.T) {
	ds := Directives{&GroupDirective{Group: Directives{&UserDirective{User: "x"}}}}

	count := 0
	Walk(ds, func(path Path, d Directive) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestClone_Independent(t *testing.T) {
	orig := &GroupDirective{
		Group:        Directives{&RunDirective{Commands: []string{"a"}}},
		Custom:       "shellScript",
		CustomParams: map[string]any{"name": "a", "nested": map[string]any{"k": "v"}},
	}

	cp := Clone(orig).(*GroupDirective)
	assert.True(t, Equal(orig, cp))

	cp.Group[0].(*RunDirective).Commands[0] = "b"
	cp.CustomParams["nested"].(map[string]any)["k"] = "changed"

	assert.Equal(t, "a", orig.Group[0].(*RunDirective).Commands[0])
	assert.Equal(t, "v", orig.CustomParams["nested"].(map[string]any)["k"])
	assert.False(t, Equal(orig, cp))
}
