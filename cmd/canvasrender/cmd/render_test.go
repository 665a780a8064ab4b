package cmd

import "testing"

func TestParseRenderFlagsRequiresInputAndOutput(t *testing.T) {
	if _, err := parseRenderFlags(nil); err == nil {
		t.Fatal("expected error when --input/--output are missing")
	}
}

func TestParseRenderFlagsSpaceSeparated(t *testing.T) {
	opts, err := parseRenderFlags([]string{"--input", "doc.json", "--output", "out.png", "--zoom", "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.input != "doc.json" || opts.output != "out.png" || opts.zoom != 2 {
		t.Errorf("unexpected opts: %+v", opts)
	}
	if opts.dpi != 1 {
		t.Errorf("expected default dpi 1, got %v", opts.dpi)
	}
}

func TestParseRenderFlagsEqualsSeparated(t *testing.T) {
	opts, err := parseRenderFlags([]string{"--input=a.json", "--output=b.png", "--width=200"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.input != "a.json" || opts.output != "b.png" || opts.width != 200 {
		t.Errorf("unexpected opts: %+v", opts)
	}
}

func TestParseRenderFlagsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseRenderFlags([]string{"--bogus", "x"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestParseRenderFlagsRejectsInvalidNumber(t *testing.T) {
	if _, err := parseRenderFlags([]string{"--input", "a", "--output", "b", "--dpi", "not-a-number"}); err == nil {
		t.Fatal("expected error for invalid --dpi")
	}
}
