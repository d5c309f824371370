package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/nokori/framing"
	"github.com/dhamidi/nokori/stream"
)

func TestFeedAppended_AcrossFileReplacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.log")

	if err := os.WriteFile(path, framing.Encode([]byte("one")), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { f.Close() }()

	sink := stream.NewSink(framing.Message())
	frames := 0
	if err := feedAppended(f, sink, &frames); err != nil {
		t.Fatalf("feedAppended: %v", err)
	}
	if frames != 1 {
		t.Fatalf("frames = %d, want 1", frames)
	}

	// Rotation: a new file replaces the old one under the same name.
	// The old handle now reads a stale inode, so the follower must
	// reopen to see the replacement's content.
	next := filepath.Join(dir, "frames.log.new")
	if err := os.WriteFile(next, framing.Encode([]byte("two")), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(next, path); err != nil {
		t.Fatal(err)
	}
	nf, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	f = nf

	if err := feedAppended(f, sink, &frames); err != nil {
		t.Fatalf("feedAppended after replacement: %v", err)
	}
	if frames != 2 {
		t.Fatalf("frames = %d, want 2", frames)
	}
}
