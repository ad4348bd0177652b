package driver

import "testing"

func TestRevisionFromSpecPrefersRevThenTagThenBranch(t *testing.T) {
	rev, err := revisionFromSpec(SourceSpec{Rev: "deadbeef", Tag: "v1", Branch: "main"})
	if err != nil || string(rev) != "deadbeef" {
		t.Fatalf("expected rev to win, got %q err %v", rev, err)
	}
	rev, err = revisionFromSpec(SourceSpec{Tag: "v1", Branch: "main"})
	if err != nil || string(rev) != "refs/tags/v1" {
		t.Fatalf("expected tag ref, got %q err %v", rev, err)
	}
	rev, err = revisionFromSpec(SourceSpec{Branch: "main"})
	if err != nil || string(rev) != "refs/heads/main" {
		t.Fatalf("expected branch ref, got %q err %v", rev, err)
	}
}

func TestRevisionFromSpecRequiresOneOf(t *testing.T) {
	if _, err := revisionFromSpec(SourceSpec{}); err == nil {
		t.Fatalf("expected error when no rev/tag/branch is set")
	}
}

func TestSanitizeNameReplacesUnsafeCharacters(t *testing.T) {
	if got := sanitizeName("my/source name"); got != "my_source_name" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}
	if got := sanitizeName(""); got != "source" {
		t.Fatalf("expected fallback for empty name, got %q", got)
	}
}

func TestJoinSourcePath(t *testing.T) {
	if got := joinSourcePath("/cache/foo", ""); got != "/cache/foo" {
		t.Fatalf("expected checkout root, got %q", got)
	}
	if got := joinSourcePath("/cache/foo", "src"); got != "/cache/foo/src" {
		t.Fatalf("expected joined path, got %q", got)
	}
}
