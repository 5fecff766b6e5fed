package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/get2knowio/deacon/internal/dispatch"
)

func applyArgs() (itemID string, issueNumber int, statusFieldID, inflightID string) {
	return "I1", 7, "F2", "O2"
}

func TestMutatorApplyFullSequence(t *testing.T) {
	fb := &fakeBoard{}
	fc := &fakeCommenter{}
	m := &Mutator{Board: fb, Commenter: fc}

	session := dispatch.Session{URL: "https://github.com/org/repo/pull/42", PRNumber: 42}
	itemID, number, fieldID, optionID := applyArgs()

	err := m.Apply(context.Background(), testProject(true), itemID, number, session, fieldID, optionID, "")
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	if len(fc.bodies) != 1 {
		t.Fatalf("got %d comments, want 1", len(fc.bodies))
	}
	if fc.bodies[0] != "Assigned to copilot session: https://github.com/org/repo/pull/42" {
		t.Errorf("comment body = %q", fc.bodies[0])
	}

	// Existing PR field, numeric write, no field creation.
	if len(fb.createCalls) != 0 {
		t.Errorf("created fields %v, want none", fb.createCalls)
	}
	if len(fb.numberCalls) != 1 || fb.numberCalls[0] != (numberCall{"PVT_abc", "I1", "F9", 42}) {
		t.Errorf("number calls = %+v", fb.numberCalls)
	}

	if len(fb.selectCalls) != 1 || fb.selectCalls[0] != (selectCall{"PVT_abc", "I1", "F2", "O2"}) {
		t.Errorf("status calls = %+v", fb.selectCalls)
	}
}

func TestMutatorKickoffTemplate(t *testing.T) {
	fc := &fakeCommenter{}
	m := &Mutator{Board: &fakeBoard{}, Commenter: fc}
	itemID, number, fieldID, optionID := applyArgs()

	session := dispatch.Session{URL: "https://example.com/session"}
	err := m.Apply(context.Background(), testProject(true), itemID, number, session, fieldID, optionID, "Work has begun.")
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}
	want := "Work has begun.\n\nAssigned to copilot session: https://example.com/session"
	if len(fc.bodies) != 1 || fc.bodies[0] != want {
		t.Errorf("comment body = %q, want %q", fc.bodies, want)
	}
}

func TestMutatorNoSessionURL(t *testing.T) {
	fb := &fakeBoard{}
	fc := &fakeCommenter{}
	m := &Mutator{Board: fb, Commenter: fc}
	itemID, number, fieldID, optionID := applyArgs()

	err := m.Apply(context.Background(), testProject(true), itemID, number, dispatch.Session{}, fieldID, optionID, "")
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	// No URL means no comment and no PR field write, but the status
	// transition still lands.
	if len(fc.bodies) != 0 {
		t.Errorf("comments = %v, want none", fc.bodies)
	}
	if len(fb.numberCalls) != 0 || len(fb.textCalls) != 0 {
		t.Error("PR field written without a session URL")
	}
	if len(fb.selectCalls) != 1 {
		t.Errorf("status calls = %d, want 1", len(fb.selectCalls))
	}
}

func TestMutatorCommentFailureSwallowed(t *testing.T) {
	fb := &fakeBoard{}
	fc := &fakeCommenter{err: errors.New("rate limited")}
	m := &Mutator{Board: fb, Commenter: fc}
	itemID, number, fieldID, optionID := applyArgs()

	session := dispatch.Session{URL: "https://example.com/session"}
	err := m.Apply(context.Background(), testProject(true), itemID, number, session, fieldID, optionID, "")
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}
	if len(fb.selectCalls) != 1 {
		t.Error("comment failure blocked the status transition")
	}
}

func TestMutatorNumberFallsBackToText(t *testing.T) {
	fb := &fakeBoard{numberErr: errors.New("field is text-typed")}
	m := &Mutator{Board: fb, Commenter: &fakeCommenter{}}
	itemID, number, fieldID, optionID := applyArgs()

	session := dispatch.Session{URL: "https://github.com/org/repo/pull/42", PRNumber: 42}
	err := m.Apply(context.Background(), testProject(true), itemID, number, session, fieldID, optionID, "")
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	if len(fb.numberCalls) != 1 {
		t.Errorf("number calls = %d, want 1", len(fb.numberCalls))
	}
	if len(fb.textCalls) != 1 || fb.textCalls[0] != (textCall{"PVT_abc", "I1", "F9", "42"}) {
		t.Errorf("text calls = %+v", fb.textCalls)
	}
	if len(fb.selectCalls) != 1 {
		t.Error("status transition missing after fallback")
	}
}

func TestMutatorCreatesPRFieldWhenMissing(t *testing.T) {
	fb := &fakeBoard{createFieldID: "F9"}
	m := &Mutator{Board: fb, Commenter: &fakeCommenter{}}
	itemID, number, fieldID, optionID := applyArgs()

	session := dispatch.Session{URL: "https://github.com/org/repo/pull/42", PRNumber: 42}
	err := m.Apply(context.Background(), testProject(false), itemID, number, session, fieldID, optionID, "")
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	if len(fb.createCalls) != 1 || fb.createCalls[0] != "PR" {
		t.Errorf("create calls = %v", fb.createCalls)
	}
	if len(fb.numberCalls) != 1 || fb.numberCalls[0].fieldID != "F9" {
		t.Errorf("number calls = %+v", fb.numberCalls)
	}
}

func TestMutatorPRFieldFailureSwallowed(t *testing.T) {
	fb := &fakeBoard{
		numberErr: errors.New("rejected"),
		textErr:   errors.New("also rejected"),
	}
	m := &Mutator{Board: fb, Commenter: &fakeCommenter{}}
	itemID, number, fieldID, optionID := applyArgs()

	session := dispatch.Session{URL: "https://github.com/org/repo/pull/42", PRNumber: 42}
	err := m.Apply(context.Background(), testProject(true), itemID, number, session, fieldID, optionID, "")
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}
	if len(fb.selectCalls) != 1 {
		t.Error("PR field failure blocked the status transition")
	}
}

func TestMutatorStatusFailurePropagates(t *testing.T) {
	fb := &fakeBoard{selectErr: errors.New("forbidden")}
	m := &Mutator{Board: fb, Commenter: &fakeCommenter{}}
	itemID, number, fieldID, optionID := applyArgs()

	err := m.Apply(context.Background(), testProject(true), itemID, number, dispatch.Session{}, fieldID, optionID, "")
	if err == nil {
		t.Fatal("expected error from failed status transition")
	}
	if !strings.Contains(err.Error(), "#7") {
		t.Errorf("error = %v, want issue number context", err)
	}
}

func TestAuxError(t *testing.T) {
	inner := errors.New("boom")
	aux := &AuxError{Step: "PR field write", Err: inner}
	if !errors.Is(aux, inner) {
		t.Error("AuxError does not unwrap to the inner error")
	}
	if !strings.Contains(aux.Error(), "PR field write") {
		t.Errorf("Error() = %q", aux.Error())
	}
}
