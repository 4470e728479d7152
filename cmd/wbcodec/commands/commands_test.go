package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/diwise/wikibase-codec/internal/pkg/application/normalizer"
	"github.com/diwise/wikibase-codec/pkg/wikibase/codec"
)

func TestValidateCommand(t *testing.T) {
	is, dir := setupCommandTest(t)

	valid := writeFile(t, dir, "valid.json", `{"en":{"language":"en","value":"Lama"}}`)

	out, err := run(t, "", "validate", "--kind", "termlist", valid)
	is.NoErr(err)
	is.Equal(out, valid+": ok\n")
}

func TestValidateCommandReportsEveryFailure(t *testing.T) {
	is, dir := setupCommandTest(t)

	valid := writeFile(t, dir, "valid.json", `{"en":{"language":"en","value":"Lama"}}`)
	invalid := writeFile(t, dir, "invalid.json", `{"en":{"language":"de","value":"Lama"}}`)
	missing := filepath.Join(dir, "missing.json")

	out, err := run(t, "", "validate", "--kind", "termlist", invalid, valid, missing)
	is.True(err != nil) // should fail when a document is invalid
	is.Equal(err.Error(), "2 of 3 documents failed validation")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	is.Equal(len(lines), 3)
	is.True(strings.HasPrefix(lines[0], invalid+": "))
	is.True(strings.Contains(lines[0], "/en"))
	is.Equal(lines[1], valid+": ok")
}

func TestValidateCommandRejectsUnknownKind(t *testing.T) {
	is, dir := setupCommandTest(t)

	valid := writeFile(t, dir, "valid.json", `{}`)

	_, err := run(t, "", "validate", "--kind", "entity", valid)
	is.True(err != nil) // should reject the kind
}

func TestNormalizeCommandReadsStdin(t *testing.T) {
	is, _ := setupCommandTest(t)

	out, err := run(t, `{ "snaktype": "novalue", "property": "p31" }`, "normalize", "--kind", "snak", "-")
	is.NoErr(err)
	is.Equal(out, `{"snaktype":"novalue","property":"P31"}`)
}

func TestNormalizeCommandUsesConfigFile(t *testing.T) {
	is, dir := setupCommandTest(t)

	cfg := writeFile(t, dir, "config.yaml", "output:\n  mapFormat: array\n")
	doc := writeFile(t, dir, "terms.json", `{}`)

	out, err := run(t, "", "normalize", "--config", cfg, "--kind", "termlist", doc)
	is.NoErr(err)
	is.Equal(out, `[]`)

	t.Setenv(configEnvVar, cfg)

	out, err = run(t, "", "normalize", "--kind", "termlist", doc)
	is.NoErr(err)
	is.Equal(out, `[]`)

	out, err = run(t, "", "normalize", "--kind", "termlist", "--map-format", "object", doc)
	is.NoErr(err)
	is.Equal(out, `{}`)
}

func TestNormalizeCommandAssignsGUIDs(t *testing.T) {
	is, dir := setupCommandTest(t)

	doc := writeFile(t, dir, "claim.json", `{"mainsnak":{"snaktype":"novalue","property":"P1"},"type":"claim"}`)
	target := filepath.Join(dir, "normalized.json")

	_, err := run(t, "", "normalize", "--kind", "claim", "--assign-guids", "--subject", "Q64", "-o", target, doc)
	is.NoErr(err)

	b, err := os.ReadFile(target)
	is.NoErr(err)
	is.True(strings.Contains(string(b), `"id":"Q64$`))

	_, err = run(t, "", "normalize", "--kind", "claim", "--assign-guids", doc)
	is.True(err != nil) // should require a subject
}

func TestWatchDirectory(t *testing.T) {
	is, dir := setupCommandTest(t)

	writeFile(t, dir, "existing.json", `{"en":{"language":"en","value":"Lama"}}`)
	writeFile(t, dir, "ignored.txt", `not json`)

	n, err := normalizer.New(context.Background(), normalizer.DefaultConfig())
	is.NoErr(err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := &lineWriter{lines: make(chan string, 16)}
	ready := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- watchDirectory(ctx, n, codec.KindTermList, dir, ".json", lines, ready)
	}()

	is.Equal(lines.next(t), filepath.Join(dir, "existing.json")+": ok\n")

	<-ready

	changed := writeFile(t, dir, "changed.json", `{"en":{"language":"sv","value":"Lama"}}`)
	is.True(strings.HasPrefix(lines.next(t), changed+": "))

	cancel()
	is.NoErr(<-done)
}

type lineWriter struct {
	lines chan string
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	lw.lines <- string(p)
	return len(p), nil
}

func (lw *lineWriter) next(t *testing.T) string {
	t.Helper()

	select {
	case l := <-lw.lines:
		return l
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for output")
	}
	return ""
}

func setupCommandTest(t *testing.T) (*is.I, string) {
	is := is.New(t)
	t.Setenv(configEnvVar, "")
	return is, t.TempDir()
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(out)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
