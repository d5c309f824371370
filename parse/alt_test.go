package parse

import (
	"strings"
	"testing"
)

func TestAlt_FirstMatchWins(t *testing.T) {
	p := Alt(Literal("a"), Literal("ab"))
	r, consumed := runAll(p, "ab")
	wantStatus(t, r, Success)
	if string(r.Value) != "a" || consumed != 1 {
		t.Errorf("value = %q consumed = %d, want a and 1", r.Value, consumed)
	}
}

func TestAlt_EmptyFailureTriesNextBranch(t *testing.T) {
	p := Alt(Literal("cat"), Literal("dog"))
	r, consumed := runAll(p, "dog")
	wantStatus(t, r, Success)
	if string(r.Value) != "dog" || consumed != 3 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
}

func TestAlt_ConsumedFailureStopsTrying(t *testing.T) {
	p := Alt(Literal("ab"), Literal("ac"))
	r, consumed := runAll(p, "ac")
	wantStatus(t, r, ConsumedFailure)
	if consumed != 1 {
		t.Errorf("consumed = %d, want 1", consumed)
	}
}

func TestAlt_AttemptRestoresBacktracking(t *testing.T) {
	p := Alt(Attempt(Literal("ab")), Literal("ac"))
	r, consumed := runAll(p, "ac")
	wantStatus(t, r, Success)
	if string(r.Value) != "ac" || consumed != 2 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
}

func TestAlt_SuspensionPropagatesBeforeOtherBranches(t *testing.T) {
	secondRuns := 0
	p := Alt(Literal("abc"), counting(Literal("x"), &secondRuns))
	r, _ := Run(p, []byte("ab"), 0, false, nil)
	wantStatus(t, r, Suspended)
	if secondRuns != 0 {
		t.Errorf("second branch ran %d times during suspension, want 0", secondRuns)
	}
}

func TestAlt_ResumesSuspendedBranch(t *testing.T) {
	p := Alt(Literal("abc"), Literal("x"))
	r, consumed := feed(t, p, "ab", "c")
	wantStatus(t, r, Success)
	if string(r.Value) != "abc" || consumed != 3 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
}

func TestAlt_ResumedBranchEmptyFailureTriesSiblings(t *testing.T) {
	// Branch one stays viable through the first chunk, then turns out
	// wrong. Attempt keeps it uncommitted, so branch two still gets to
	// see the full input.
	p := Alt(Attempt(Literal("abd")), Literal("abc"))
	r, consumed := feed(t, p, "ab", "c")
	wantStatus(t, r, Success)
	if string(r.Value) != "abc" || consumed != 3 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
}

func TestAlt_MergesExpectationsInError(t *testing.T) {
	p := Alt(Byte('a'), Byte('b'), Byte('c'))
	r, _ := runAll(p, "z")
	wantStatus(t, r, EmptyFailure)
	msg := r.Err.Error()
	for _, want := range []string{"'a'", "'b'", "'c'", "'z'"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %s", msg, want)
		}
	}
}

func TestAlt_MergedExpectationsSurviveResume(t *testing.T) {
	// Branch one empty-fails in the first call, branch two suspends and
	// only fails after more input arrives. The failure must still list
	// both alternatives, exactly as a one-shot parse of the same bytes.
	p := Alt(Recognize(Byte('x')), Attempt(Literal("ab")))

	chunked, _ := feed(t, p, "a", "c")
	wantStatus(t, chunked, EmptyFailure)
	oneShot, _ := runAll(p, "ac")
	wantStatus(t, oneShot, EmptyFailure)

	if got, want := chunked.Err.Error(), oneShot.Err.Error(); got != want {
		t.Errorf("chunked error %q, one-shot error %q", got, want)
	}
	for _, want := range []string{"'x'", `"ab"`} {
		if !strings.Contains(chunked.Err.Error(), want) {
			t.Errorf("error %q should mention %s", chunked.Err.Error(), want)
		}
	}
}

func TestAttempt_PassesSuccessThrough(t *testing.T) {
	r, consumed := runAll(Attempt(Literal("ok")), "okay")
	wantStatus(t, r, Success)
	if string(r.Value) != "ok" || consumed != 2 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
}

func TestAttempt_WithholdsCommitsWhileSuspended(t *testing.T) {
	p := Attempt(Then(Literal("ab"), Literal("cd")))
	res, consumed := Run(p, []byte("ab"), 0, false, nil)
	wantStatus(t, res, Suspended)
	if consumed != 0 {
		t.Fatalf("consumed = %d, want 0: Attempt must not commit", consumed)
	}
	// The caller kept everything buffered, so the resumed call sees the
	// whole attempt again from its start.
	res2, consumed2 := Run(p, []byte("abcd"), 0, true, res.State)
	wantStatus(t, res2, Success)
	if consumed2 != 4 {
		t.Errorf("consumed = %d, want 4", consumed2)
	}
}
