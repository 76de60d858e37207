package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/makjak/blockly-lua/pkg/codegen"
)

const minerDoc = `name: miner
blocks:
  - type: turtle_dig
    fields: {DIRECTION: digDown}
    mutation: {is_statement: true}
    next:
      type: turtle_move
      fields: {DIRECTION: down}
      mutation: {is_statement: true}
`

const minerLua = "turtle.digDown()\nturtle.down()\n"

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerateFromStdin(t *testing.T) {
	out, _, err := run(t, minerDoc, "generate")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if out != minerLua {
		t.Errorf("output = %q, want %q", out, minerLua)
	}
}

func TestGenerateFromFileDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miner.yaml")
	if err := os.WriteFile(path, []byte(minerDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, errOut, err := run(t, "", "generate", "--dry-run", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" || !strings.Contains(errOut, "Dry run") {
		t.Errorf("out = %q, stderr = %q", out, errOut)
	}
}

func TestGenerateRejectsBadDocument(t *testing.T) {
	if _, _, err := run(t, "blocks: [{type: turtle_fly}]", "generate"); err == nil {
		t.Error("unknown block type accepted")
	}
	if _, _, err := run(t, "", "generate"); err == nil {
		t.Error("empty input accepted")
	}
}

func TestExtraCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gps.yaml")
	cat := "prefix: gps\nblocks:\n  - kind: value\n    funcName: locate\n    text: locate within %1 seconds\n    output: Number\n    args:\n      - {name: TIMEOUT, type: Number}\n"
	if err := os.WriteFile(path, []byte(cat), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "--catalog", path, "blocks", "--prefix", "gps")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "gps_locate") || !strings.Contains(out, "gps.locate") {
		t.Errorf("blocks output = %q", out)
	}

	doc := "blocks:\n  - type: gps_locate\n    inputs:\n      TIMEOUT: {type: math_number, value: \"2\"}\n"
	out, _, err = run(t, doc, "--catalog", path, "generate")
	if err != nil {
		t.Fatal(err)
	}
	if out != "local _ = gps.locate(2)\n" {
		t.Errorf("generate output = %q", out)
	}
}

func TestBlocksListsShapes(t *testing.T) {
	out, _, err := run(t, "", "blocks", "--prefix", "turtle")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"turtle_move", "dual", "turtle.{forward,back,up,down}", "turtle.turnLeft"} {
		if !strings.Contains(out, want) {
			t.Errorf("blocks output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "os_clock") {
		t.Error("prefix filter ignored")
	}
}

func TestBindings(t *testing.T) {
	out, _, err := run(t, "", "bindings", "--package", "ccblocks")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"package ccblocks", "TurtleTurnLeft", `"turtle.turnLeft"`} {
		if !strings.Contains(out, want) {
			t.Errorf("bindings lack %q", want)
		}
	}
}

func TestStoreWorkflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "programs.db")

	out, _, err := run(t, minerDoc, "--db", db, "store", "save")
	if err != nil {
		t.Fatalf("store save error = %v", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		t.Fatal("store save printed no id")
	}

	out, _, err = run(t, "", "--db", db, "store", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, id) || !strings.Contains(out, "miner") {
		t.Errorf("store list = %q", out)
	}

	out, _, err = run(t, "", "--db", db, "store", "list", "--block", "os_clock")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, id) {
		t.Errorf("block filter ignored: %q", out)
	}

	out, _, err = run(t, "", "--db", db, "store", "show", "--format", "json", id)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"type": "turtle_dig"`) {
		t.Errorf("store show = %q", out)
	}

	out, _, err = run(t, "", "--db", db, "store", "generate", id)
	if err != nil {
		t.Fatal(err)
	}
	if out != minerLua {
		t.Errorf("store generate = %q", out)
	}

	if _, _, err := run(t, "", "--db", db, "store", "delete", id); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "", "--db", db, "store", "generate", id); err == nil {
		t.Error("deleted program still generates")
	}
}

func TestReportStrict(t *testing.T) {
	disableColor()
	res := &codegen.Result{
		Warnings:     []string{"turtle_select (b2): input \"SLOT\" is empty"},
		FailedBlocks: []codegen.FailedBlock{{BlockID: "b1", Type: "turtle_dig", Reason: "cannot resolve dropdown"}},
	}
	var buf bytes.Buffer
	if err := report(&buf, res, false); err != nil {
		t.Errorf("report() error = %v", err)
	}
	if !strings.Contains(buf.String(), "✗ turtle_dig (b1) - cannot resolve dropdown") {
		t.Errorf("report output = %q", buf.String())
	}
	if err := report(&buf, res, true); err == nil {
		t.Error("strict report() succeeded with failed blocks")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	files := map[string]string{
		good: "prefix: gps\nblocks:\n  - funcName: locate\n",
		bad:  "prefix: gps\nblocks:\n  - funcName: locate\n  - funcName: locate\n  - kind: value\n",
	}
	for path, data := range files {
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, _, err := run(t, "", "check", good)
	if err != nil || !strings.Contains(out, "good.yaml") {
		t.Errorf("check good = %q, %v", out, err)
	}
	_, errOut, err := run(t, "", "check", good, bad)
	if err == nil {
		t.Fatal("check accepted a bad catalog")
	}
	if !strings.Contains(errOut, "2 errors occurred") {
		t.Errorf("stderr = %q", errOut)
	}
}
