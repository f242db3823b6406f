package symbolgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const rustTraitSample = `trait Shape {
    fn area(&self) -> f64;
}

struct Circle {
    radius: f64,
}

impl Shape for Circle {
    fn area(&self) -> f64 {
        3.14 * self.radius * self.radius
    }
}

struct Square {
    side: f64,
}

impl Shape for Square {
    fn area(&self) -> f64 {
        self.side * self.side
    }
}
`

func TestFindImplementations_GroupsByLanguage(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "shapes.rs", rustTraitSample)

	e := NewEngine(root, 4)
	res, err := e.FindImplementations(context.Background(), FindImplementationsRequest{TraitName: "Shape"})
	require.NoError(t, err)
	require.Len(t, res.Implementors, 2)
	require.Contains(t, res.Text, "Circle")
	require.Contains(t, res.Text, "Square")
	require.Contains(t, res.Text, "## rust")
}

func TestFindImplementations_NoMatchesReportsEmpty(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "shapes.rs", rustTraitSample)

	e := NewEngine(root, 4)
	res, err := e.FindImplementations(context.Background(), FindImplementationsRequest{TraitName: "Nonexistent"})
	require.NoError(t, err)
	require.Empty(t, res.Implementors)
	require.Contains(t, res.Text, "no implementors")
}
