package game

import (
	"errors"
	"math/rand"
	"testing"
)

// fakeDict is an in-memory word set standing in for a real spell checker.
func fakeDict(words ...string) Dictionary {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return DictionaryFunc(func(word, lang string) bool {
		_, ok := set[word]
		return ok
	})
}

var testDict = fakeDict("silk", "worm", "milk", "mix", "silkworm", "owl", "slow", "cat", "tacos")

func TestStartGame(t *testing.T) {
	list := []string{"silkworm", "tacos", "kitchen"}
	st := StartGame(list, rand.New(rand.NewSource(1)))
	found := false
	for _, w := range list {
		if st.RootWord == w {
			found = true
		}
	}
	if !found {
		t.Errorf("RootWord %q not from list", st.RootWord)
	}
	if len(st.UsedWords) != 0 {
		t.Errorf("len(UsedWords) %d, want 0", len(st.UsedWords))
	}
	if st.Score != 0 {
		t.Errorf("Score %d, want 0", st.Score)
	}
}

func TestStartGame_Deterministic(t *testing.T) {
	list := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	a := StartGame(list, rand.New(rand.NewSource(42)))
	b := StartGame(list, rand.New(rand.NewSource(42)))
	if a.RootWord != b.RootWord {
		t.Errorf("same seed picked %q and %q", a.RootWord, b.RootWord)
	}
}

func TestStartGame_Fallback(t *testing.T) {
	for _, list := range [][]string{nil, {}, {"", "  "}} {
		st := StartGame(list, nil)
		if st.RootWord != DefaultRootWord {
			t.Errorf("StartGame(%q) RootWord %q, want %q", list, st.RootWord, DefaultRootWord)
		}
	}
}

func TestIsSubsetOfLetters(t *testing.T) {
	tests := []struct {
		word, root string
		want       bool
	}{
		{"cat", "tacos", true},
		{"coo", "cost", false},
		{"silk", "silkworm", true},
		{"mix", "silkworm", false},
		{"", "silkworm", true},
		{"silkworms", "silkworm", false},
	}
	for _, tt := range tests {
		if got := IsSubsetOfLetters(tt.word, tt.root); got != tt.want {
			t.Errorf("IsSubsetOfLetters(%q, %q) = %v, want %v", tt.word, tt.root, got, tt.want)
		}
	}
}

func TestAward(t *testing.T) {
	if got := Award("silk"); got != 5 {
		t.Errorf("Award(silk) = %d, want 5", got)
	}
	if got := Award("worms"); got != 6 {
		t.Errorf("Award(worms) = %d, want 6", got)
	}
}

func TestValidate_Order(t *testing.T) {
	st := State{RootWord: "silkworm", UsedWords: []string{"silk"}, Score: 5}
	tests := []struct {
		in   string
		want Kind
	}{
		{"   ", KindIgnored},
		{"", KindIgnored},
		{"silk", KindDuplicate},
		{"  SILK\n", KindDuplicate},
		{"mix", KindNotSubset},
		{"wrmo", KindNotReal},
		{"owl", KindTooTrivial},
		{"silkworm", KindTooTrivial},
		{"worm", KindAccepted},
		{"Milk", KindAccepted},
	}
	for _, tt := range tests {
		if got := Validate(tt.in, st, testDict, "en"); got != tt.want {
			t.Errorf("Validate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate_NilDictionary(t *testing.T) {
	st := State{RootWord: "silkworm"}
	if got := Validate("worm", st, nil, "en"); got != KindNotReal {
		t.Errorf("Validate with nil dictionary = %q, want %q", got, KindNotReal)
	}
}

func TestSubmit_Scenario(t *testing.T) {
	st := State{RootWord: "silkworm", UsedWords: []string{}}

	st, kind := Submit("silk", st, testDict, "en")
	if kind != KindAccepted {
		t.Fatalf("first silk: %q, want accepted", kind)
	}
	if st.Score != 5 {
		t.Errorf("Score %d, want 5", st.Score)
	}
	if len(st.UsedWords) != 1 || st.UsedWords[0] != "silk" {
		t.Errorf("UsedWords %v, want [silk]", st.UsedWords)
	}

	st, kind = Submit("silk", st, testDict, "en")
	if kind != KindDuplicate {
		t.Errorf("second silk: %q, want duplicate", kind)
	}
	if st.Score != 5 {
		t.Errorf("Score after duplicate %d, want 5", st.Score)
	}

	st, kind = Submit("worm", st, testDict, "en")
	if kind != KindAccepted {
		t.Fatalf("worm: %q, want accepted", kind)
	}
	if st.Score != 10 {
		t.Errorf("Score %d, want 10", st.Score)
	}
	if st.UsedWords[0] != "worm" || st.UsedWords[1] != "silk" {
		t.Errorf("UsedWords %v, want most recent first", st.UsedWords)
	}
}

func TestSubmit_RejectionDoesNotMutate(t *testing.T) {
	orig := State{RootWord: "silkworm", UsedWords: []string{"silk"}, Score: 5}
	for _, in := range []string{"", "silk", "mix", "wrmo", "owl", "silkworm"} {
		st, _ := Submit(in, orig, testDict, "en")
		if st.Score != 5 || len(st.UsedWords) != 1 || st.UsedWords[0] != "silk" || st.RootWord != "silkworm" {
			t.Errorf("Submit(%q) changed state to %+v", in, st)
		}
	}
}

func TestRejectionFor(t *testing.T) {
	r := RejectionFor(KindNotSubset, "silkworm")
	if r == nil {
		t.Fatal("RejectionFor(not_possible) returned nil")
	}
	if r.Message != "You can't spell that word from 'silkworm'!" {
		t.Errorf("Message %q", r.Message)
	}
	if RejectionFor(KindAccepted, "silkworm") != nil {
		t.Error("accepted should have no rejection")
	}
	if RejectionFor(KindIgnored, "silkworm") != nil {
		t.Error("ignored should have no rejection")
	}
}

func TestGame_Submit(t *testing.T) {
	g := NewWithRoot("silkworm", "en")
	if g.ID == "" {
		t.Error("ID is empty")
	}

	out, err := g.Submit("Silk ", testDict)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Kind != KindAccepted || out.Points != 5 || out.Word != "silk" {
		t.Errorf("Outcome %+v, want accepted silk for 5", out)
	}

	_, err = g.Submit("silk", testDict)
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("duplicate error %v, want *Rejection", err)
	}
	if rej.Kind != KindDuplicate || rej.Title != "Word used already!" {
		t.Errorf("Rejection %+v", rej)
	}
	if snap := g.Snapshot(); snap.Score != 5 {
		t.Errorf("Score %d, want 5", snap.Score)
	}

	out, err = g.Submit("  ", testDict)
	if err != nil || out.Kind != KindIgnored || out.Points != 0 {
		t.Errorf("empty submit: %+v, %v", out, err)
	}
}

func TestGame_SnapshotIsCopy(t *testing.T) {
	g := NewWithRoot("silkworm", "en")
	_, _ = g.Submit("silk", testDict)
	snap := g.Snapshot()
	snap.UsedWords[0] = "tampered"
	if g.Snapshot().UsedWords[0] != "silk" {
		t.Error("Snapshot should not alias game state")
	}
}

func TestGame_ResetTwice(t *testing.T) {
	g := New([]string{"silkworm", "tacos"}, "en", rand.New(rand.NewSource(7)))
	_, _ = g.Submit("tacos", testDict)

	g.Reset([]string{"silkworm", "tacos"}, nil)
	g.Reset([]string{"silkworm", "tacos"}, nil)
	st := g.Snapshot()
	if len(st.UsedWords) != 0 || st.Score != 0 {
		t.Errorf("after reset: %+v, want empty words and zero score", st)
	}
}

func TestGame_ResetReturnsPrevious(t *testing.T) {
	g := NewWithRoot("silkworm", "en")
	_, _ = g.Submit("silk", testDict)
	before := g.Started()
	prev, started := g.Reset(nil, nil)
	if prev.Score != 5 || prev.RootWord != "silkworm" {
		t.Errorf("previous state %+v", prev)
	}
	if !started.Equal(before) {
		t.Errorf("started %v, want %v", started, before)
	}
	if g.Started().Before(before) {
		t.Error("new round should not start before the previous one")
	}
}

func TestNewWithRoot_DefaultLanguage(t *testing.T) {
	g := NewWithRoot("", "")
	if g.Language != DefaultLanguage {
		t.Errorf("Language %q, want %q", g.Language, DefaultLanguage)
	}
	if g.Snapshot().RootWord != DefaultRootWord {
		t.Errorf("RootWord %q, want %q", g.Snapshot().RootWord, DefaultRootWord)
	}
}

func TestGame_RootUsesGameCaseRules(t *testing.T) {
	anyWord := DictionaryFunc(func(string, string) bool { return true })
	g := NewWithRoot("SILKWORM", "tr")
	if root := g.Snapshot().RootWord; root != "sılkworm" {
		t.Errorf("RootWord %q, want sılkworm", root)
	}
	out, err := g.Submit("SILK", anyWord)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Word != "sılk" || out.Points != 5 {
		t.Errorf("Outcome %+v, want sılk for 5", out)
	}
}

func TestGame_LastActive(t *testing.T) {
	g := NewWithRoot("silkworm", "en")
	created := g.LastActive()
	if created.IsZero() {
		t.Fatal("LastActive is zero for a new game")
	}
	_, _ = g.Submit("silk", testDict)
	if g.LastActive().Before(created) {
		t.Error("Submit should not move LastActive backwards")
	}
	_, _ = g.Reset(nil, nil)
	if !g.LastActive().Equal(g.Started()) {
		t.Errorf("LastActive %v, want round start %v", g.LastActive(), g.Started())
	}
}
