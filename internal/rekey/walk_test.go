package rekey

import (
	"testing"

	"github.com/PolarWolf314/vault2vault/internal/document"
)

func vaultScalar(v string) *document.Scalar {
	return &document.Scalar{Value: v, Tag: document.VaultTag, Encrypted: true}
}

func TestWalkOrder(t *testing.T) {
	root := &document.Mapping{Entries: []document.Entry{
		{Key: "name", Value: &document.Scalar{Value: "app"}},
		{Key: "password", Value: vaultScalar("a")},
		{Key: "hosts", Value: &document.Sequence{Items: []document.Node{
			vaultScalar("b"),
			&document.Scalar{Value: "plain"},
			&document.Mapping{Entries: []document.Entry{
				{Key: "token", Value: vaultScalar("c")},
			}},
		}}},
		{Key: "last", Value: vaultScalar("d")},
	}}

	var paths []string
	var values []string
	for p, s := range Walk(root) {
		paths = append(paths, p.String())
		values = append(values, s.Value)
	}

	wantPaths := []string{".password", ".hosts.0", ".hosts.2.token", ".last"}
	wantValues := []string{"a", "b", "c", "d"}

	if len(paths) != len(wantPaths) {
		t.Fatalf("Walk yielded %v, expected %v", paths, wantPaths)
	}
	for i := range wantPaths {
		if paths[i] != wantPaths[i] || values[i] != wantValues[i] {
			t.Errorf("Item %d = (%s, %s), expected (%s, %s)", i, paths[i], values[i], wantPaths[i], wantValues[i])
		}
	}
}

func TestWalkStopsWhenYieldReturnsFalse(t *testing.T) {
	root := &document.Sequence{Items: []document.Node{vaultScalar("a"), vaultScalar("b"), vaultScalar("c")}}

	count := 0
	for range Walk(root) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("Expected walk to stop after 2 items, got %d", count)
	}
}

func TestWalkMultipleDocuments(t *testing.T) {
	first := &document.Mapping{Entries: []document.Entry{{Key: "a", Value: vaultScalar("1")}}}
	second := &document.Mapping{Entries: []document.Entry{{Key: "b", Value: vaultScalar("2")}}}

	var paths []string
	for p := range Walk(first, second) {
		paths = append(paths, p.String())
	}

	if len(paths) != 2 || paths[0] != ".a" || paths[1] != "[1].b" {
		t.Errorf("Unexpected paths: %v", paths)
	}
}

func TestWalkRootScalar(t *testing.T) {
	var paths []string
	for p := range Walk(vaultScalar("x")) {
		paths = append(paths, p.String())
	}
	if len(paths) != 1 || paths[0] != "." {
		t.Errorf("Expected root path '.', got %v", paths)
	}
}

func TestWalkParsedDocument(t *testing.T) {
	blob := encryptValue(t, "pw", "secret")
	input := "app:\n" + vaultEntry("key", blob, 4) + "list:\n  - !vault |\n" + Pad(blob, 4, "\n") + "\n"

	roots, err := document.Parse([]byte(input), document.DefaultConfig())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var paths []string
	for p := range Walk(roots...) {
		paths = append(paths, p.String())
	}
	if len(paths) != 2 || paths[0] != ".app.key" || paths[1] != ".list.0" {
		t.Errorf("Unexpected paths: %v", paths)
	}
}
