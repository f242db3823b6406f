package symbolgraph

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRepoFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const goSample = `package sample

func Helper() int {
	return 1
}

func Caller() int {
	return Helper() + Helper()
}

type Greeter struct {
	Name string
}

func (g *Greeter) Greet() string {
	return "hi " + g.Name
}
`
