package blogdex

import (
	"testing"
	"time"
)

func TestTypeahead_DeliversLastQuery(t *testing.T) {
	eng := newEngine(t)

	got := make(chan TypeaheadResult, 4)
	ta := eng.Typeahead(20*time.Millisecond, 5, func(r TypeaheadResult) { got <- r })

	ta.Type("ho")
	ta.Type("hoo")
	ta.Type("hooks")

	select {
	case r := <-got:
		if r.Query != "hooks" {
			t.Fatalf("expected only the last query, got %q", r.Query)
		}
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		if len(r.Results) == 0 || r.Results[0].Post.Link != "/react-hooks" {
			t.Errorf("unexpected results: %+v", r.Results)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for typeahead result")
	}

	select {
	case r := <-got:
		t.Errorf("unexpected extra delivery for %q", r.Query)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTypeahead_Cancel(t *testing.T) {
	eng := newEngine(t)

	got := make(chan TypeaheadResult, 1)
	ta := eng.Typeahead(30*time.Millisecond, 5, func(r TypeaheadResult) { got <- r })

	ta.Type("vue")
	ta.Cancel()

	select {
	case r := <-got:
		t.Errorf("expected no delivery after cancel, got %q", r.Query)
	case <-time.After(150 * time.Millisecond):
	}
}
