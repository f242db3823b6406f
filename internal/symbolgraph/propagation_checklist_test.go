package symbolgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropagationChecklist_GroupsByDomainThenPath(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)
	writeRepoFile(t, root, "shapes.rs", rustTraitSample)

	e := NewEngine(root, 4)
	res, err := e.PropagationChecklist(context.Background(), PropagationChecklistRequest{SymbolName: "Helper"})
	require.NoError(t, err)
	require.Contains(t, res.Text, "sample.go")
	require.Contains(t, res.Text, "## Other")
}

func TestAliasesFor_GeneratesCaseVariants(t *testing.T) {
	aliases := aliasesFor("user_service", nil)
	require.Contains(t, aliases, "user_service")
	require.Contains(t, aliases, "userService")
	require.Contains(t, aliases, "UserService")
}

func TestAliasesFor_PascalInputGeneratesSnakeAndCamel(t *testing.T) {
	aliases := aliasesFor("UserService", nil)
	require.Contains(t, aliases, "UserService")
	require.Contains(t, aliases, "user_service")
	require.Contains(t, aliases, "userService")
}

func TestAliasesFor_UnionsCallerSuppliedAliases(t *testing.T) {
	aliases := aliasesFor("user_service", []string{"svc_user", "UserSvc"})
	require.Contains(t, aliases, "user_service")
	require.Contains(t, aliases, "svc_user")
	require.Contains(t, aliases, "UserSvc")
}

func TestPropagationChecklist_CallerSuppliedAliasesAreTraced(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)
	writeRepoFile(t, root, "other.go", "package other\n\nfunc UseAssistant() int {\n\treturn Assistant()\n}\n\nfunc Assistant() int { return 0 }\n")

	e := NewEngine(root, 4)
	res, err := e.PropagationChecklist(context.Background(), PropagationChecklistRequest{
		SymbolName: "Helper",
		Aliases:    []string{"Assistant"},
	})
	require.NoError(t, err)
	require.Contains(t, res.Aliases, "Assistant")
	require.Contains(t, res.Text, "other.go")
}

func TestPropagationChecklist_IgnoreGitignoreIncludesIgnoredFiles(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, ".gitignore", "ignored.go\n")
	writeRepoFile(t, root, "ignored.go", goSample)

	e := NewEngine(root, 4)
	withoutOverride, err := e.PropagationChecklist(context.Background(), PropagationChecklistRequest{SymbolName: "Helper"})
	require.NoError(t, err)
	require.NotContains(t, withoutOverride.Text, "ignored.go")

	withOverride, err := e.PropagationChecklist(context.Background(), PropagationChecklistRequest{SymbolName: "Helper", IgnoreGitignore: true})
	require.NoError(t, err)
	require.Contains(t, withOverride.Text, "ignored.go")
}

func TestPropagationChecklist_OverflowWarning(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < MaxChecklistFiles+5; i++ {
		writeRepoFile(t, root, fileName(i), goSample)
	}

	e := NewEngine(root, 4)
	res, err := e.PropagationChecklist(context.Background(), PropagationChecklistRequest{SymbolName: "Helper"})
	require.NoError(t, err)
	require.Contains(t, res.Text, "BLAST RADIUS WARNING")
	require.True(t, res.Truncated)
}
