package parse

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestSeq2_JoinsValues(t *testing.T) {
	p := Seq2(Literal("foo"), Literal("bar"), func(a, b []byte) string {
		return string(a) + "|" + string(b)
	})
	r, consumed := runAll(p, "foobar")
	wantStatus(t, r, Success)
	if r.Value != "foo|bar" || consumed != 6 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
}

func TestSeq2_ResumeSkipsCompletedLeft(t *testing.T) {
	leftRuns := 0
	p := Seq2(counting(Literal("ab"), &leftRuns), Literal("cd"), func(a, b []byte) string {
		return string(a) + string(b)
	})
	r, consumed := feed(t, p, "abc", "d")
	wantStatus(t, r, Success)
	if r.Value != "abcd" || consumed != 4 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
	if leftRuns != 1 {
		t.Errorf("left sub-parser ran %d times, want 1", leftRuns)
	}
}

func TestSeq2_CommitsCompletedLeftOnSuspension(t *testing.T) {
	p := Seq2(Literal("ab"), Literal("cd"), func(a, b []byte) int { return 0 })
	r, consumed := Run(p, []byte("abc"), 0, false, nil)
	wantStatus(t, r, Suspended)
	if consumed != 2 {
		t.Errorf("consumed = %d, want 2 (the completed left sub-parser)", consumed)
	}
	if r.State == nil {
		t.Fatal("suspension carries no state")
	}
}

func TestSeq2_SuspensionOnFirstCallHasState(t *testing.T) {
	p := Seq2(Literal("ab"), Literal("cd"), func(a, b []byte) int { return 0 })
	r, consumed := Run(p, []byte("a"), 0, false, nil)
	wantStatus(t, r, Suspended)
	if consumed != 0 {
		t.Errorf("consumed = %d, want 0", consumed)
	}
	if r.State == nil {
		t.Fatal("suspension of the first sub-parser must still produce a state")
	}
}

func TestSeq2_EmptyFailureAfterConsumptionUpgrades(t *testing.T) {
	p := Then(Literal("a"), Literal("b"))
	r, consumed := runAll(p, "ac")
	wantStatus(t, r, ConsumedFailure)
	if consumed != 1 {
		t.Errorf("consumed = %d, want 1", consumed)
	}
}

func TestSeq2_UpgradeAppliesAcrossCalls(t *testing.T) {
	// The left half is committed in call one; when the right half
	// fails without consuming in call two, the failure must still
	// count as consumed so no alternative backtracks over it.
	p := Then(Literal("ab"), Literal("cd"))
	res, consumed := Run(p, []byte("ab"), 0, false, nil)
	wantStatus(t, res, Suspended)
	if consumed != 2 {
		t.Fatalf("consumed = %d, want 2", consumed)
	}
	res2, _ := Run(p, []byte("xy"), 2, true, res.State)
	wantStatus(t, res2, ConsumedFailure)
}

func TestSeq3_JoinsValues(t *testing.T) {
	p := Seq3(Byte('('), TakeWhile1("digit", isDigitByte), Byte(')'),
		func(_ byte, digits []byte, _ byte) string { return string(digits) })
	r, consumed := feed(t, p, "(12", "3)")
	wantStatus(t, r, Success)
	if r.Value != "123" || consumed != 5 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}
}

func TestThenSkip_KeepsLeft(t *testing.T) {
	p := ThenSkip(Literal("value"), Byte(';'))
	r, _ := runAll(p, "value;")
	wantStatus(t, r, Success)
	if string(r.Value) != "value" {
		t.Errorf("value = %q, want value", r.Value)
	}
}

func TestConvert_AppliesConversion(t *testing.T) {
	p := Convert(TakeWhile1("digit", isDigitByte), func(b []byte) (int, error) {
		return strconv.Atoi(string(b))
	})
	r, _ := runAll(p, "4711")
	wantStatus(t, r, Success)
	if r.Value != 4711 {
		t.Errorf("value = %d, want 4711", r.Value)
	}
}

func TestConvert_RejectionIsFatal(t *testing.T) {
	reject := errors.New("value out of range")
	p := Convert(TakeWhile1("digit", isDigitByte), func([]byte) (int, error) {
		return 0, reject
	})
	r, _ := runAll(p, "42")
	wantStatus(t, r, FatalFailure)
	if !errors.Is(r.Err, reject) {
		t.Errorf("error %v should wrap the conversion error", r.Err)
	}

	// Alternatives must not swallow a fatal failure.
	alt := Alt(p, Map(Literal("42"), func([]byte) int { return -1 }))
	r, _ = runAll(alt, "42")
	wantStatus(t, r, FatalFailure)
}

func TestBind_LengthPrefixedBody(t *testing.T) {
	length := Convert(TakeWhile1("digit", isDigitByte), func(b []byte) (int, error) {
		return strconv.Atoi(string(b))
	})
	p := Bind(ThenSkip(length, Byte(':')), func(n int) Parser[string] {
		return Map(Take(n), func(b []byte) string { return string(b) })
	})

	r, consumed := runAll(p, "5:hello")
	wantStatus(t, r, Success)
	if r.Value != "hello" || consumed != 7 {
		t.Errorf("value = %q consumed = %d", r.Value, consumed)
	}

	r, consumed = feed(t, p, "5", ":he", "llo")
	wantStatus(t, r, Success)
	if r.Value != "hello" || consumed != 7 {
		t.Errorf("chunked value = %q consumed = %d", r.Value, consumed)
	}
}

func TestMap_ErrorMessageKeepsPosition(t *testing.T) {
	p := Then(Literal("x="), TakeWhile1("digit", isDigitByte))
	r, _ := runAll(p, "x=y")
	wantStatus(t, r, ConsumedFailure)
	if r.Err.Offset != 2 {
		t.Errorf("offset = %d, want 2", r.Err.Offset)
	}
	if !strings.Contains(r.Err.Error(), "digit") {
		t.Errorf("error %q should mention digit", r.Err)
	}
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }
