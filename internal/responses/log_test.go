package responses

import (
	"errors"
	"testing"
	"time"

	"github.com/janambabi/Forgive-Me/internal/kv"
	"github.com/janambabi/Forgive-Me/internal/telemetry"
)

func testLogger(t *testing.T) *telemetry.JSONLogger {
	t.Helper()
	logger, err := telemetry.NewJSONLogger("")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return logger
}

func TestAppendIsNewestFirst(t *testing.T) {
	log := NewLog(kv.NewMemory(), "answers", nil, testLogger(t))
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"Alex", "Sam", "Noor"} {
		log.Append(NewRecord(name, AnswerYes, "landing", base.Add(time.Duration(i)*time.Second)))
	}
	all := log.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].Name != "Noor" || all[2].Name != "Alex" {
		t.Fatalf("expected newest first, got %q..%q", all[0].Name, all[2].Name)
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	log := NewLog(kv.NewMemory(), "answers", nil, testLogger(t))
	log.Append(NewRecord("Alex", AnswerYes, "landing", time.Now()))
	snap := log.All()
	log.Append(NewRecord("Sam", AnswerNo, "landing", time.Now()))
	if len(snap) != 1 {
		t.Fatalf("expected snapshot unchanged by later appends, got %d", len(snap))
	}
}

func TestAppendNudgesCollidingIDs(t *testing.T) {
	log := NewLog(kv.NewMemory(), "answers", nil, testLogger(t))
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	log.Append(NewRecord("Alex", AnswerYes, "landing", now))
	log.Append(NewRecord("Sam", AnswerNo, "landing", now))
	all := log.All()
	if all[0].ID <= all[1].ID {
		t.Fatalf("expected distinguishable ids, got %d then %d", all[1].ID, all[0].ID)
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	store := kv.NewMemory()
	log := NewLog(store, "answers", nil, testLogger(t))
	log.Append(NewRecord("Alex", AnswerYes, "landing", time.Now()))

	if log.Clear(false) {
		t.Fatalf("unconfirmed clear must be a no-op")
	}
	if log.Len() != 1 {
		t.Fatalf("expected record to survive unconfirmed clear")
	}

	if !log.Clear(true) {
		t.Fatalf("confirmed clear should report success")
	}
	if log.Len() != 0 {
		t.Fatalf("expected empty log after confirmed clear")
	}
	if _, ok, _ := store.Get("answers"); ok {
		t.Fatalf("expected persisted mirror erased")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	logger := testLogger(t)
	log := NewLog(store, "answers", nil, logger)
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	log.Append(NewRecord("Alex", AnswerYes, "landing", base))
	log.Append(NewRecord("", AnswerNo, "landing", base.Add(time.Second)))

	reloaded := NewLog(store, "answers", nil, logger)
	reloaded.Load()
	got := reloaded.All()
	want := log.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d records after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d diverged: %+v != %+v", i, got[i], want[i])
		}
	}
}

func TestLoadCoercesMissingName(t *testing.T) {
	store := kv.NewMemory()
	if err := store.Set("answers", `[{"id":1,"answer":"yes"}]`); err != nil {
		t.Fatal(err)
	}
	log := NewLog(store, "answers", nil, testLogger(t))
	log.Load()
	all := log.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if all[0].Name != "" {
		t.Fatalf("expected coerced empty name, got %q", all[0].Name)
	}
	if all[0].Answer != AnswerYes {
		t.Fatalf("expected answer preserved, got %q", all[0].Answer)
	}
}

func TestLoadCoercesMistypedName(t *testing.T) {
	store := kv.NewMemory()
	if err := store.Set("answers", `[{"id":2,"name":42,"answer":"no"}]`); err != nil {
		t.Fatal(err)
	}
	log := NewLog(store, "answers", nil, testLogger(t))
	log.Load()
	all := log.All()
	if len(all) != 1 || all[0].Name != "" {
		t.Fatalf("expected record kept with empty name, got %+v", all)
	}
}

func TestLoadMalformedMirrorYieldsEmptyLog(t *testing.T) {
	for _, raw := range []string{`not json`, `{"top":"level object"}`, `[{"id":`} {
		store := kv.NewMemory()
		if err := store.Set("answers", raw); err != nil {
			t.Fatal(err)
		}
		log := NewLog(store, "answers", nil, testLogger(t))
		log.Load()
		if log.Len() != 0 {
			t.Fatalf("expected empty log for %q, got %d records", raw, log.Len())
		}
	}
}

type failingStore struct{ kv.Store }

func (failingStore) Set(string, string) error { return errors.New("quota exceeded") }

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	log := NewLog(failingStore{kv.NewMemory()}, "answers", nil, testLogger(t))
	log.Append(NewRecord("Alex", AnswerYes, "landing", time.Now()))
	if log.Len() != 1 {
		t.Fatalf("in-memory log must stay authoritative when persistence fails")
	}
}

type recordingNotifier struct{ got chan Record }

func (n *recordingNotifier) Notify(rec Record) { n.got <- rec }

func TestAppendNotifiesOnce(t *testing.T) {
	notifier := &recordingNotifier{got: make(chan Record, 1)}
	log := NewLog(kv.NewMemory(), "answers", notifier, testLogger(t))
	log.Append(NewRecord("Alex", AnswerYes, "landing", time.Now()))

	select {
	case rec := <-notifier.got:
		if rec.Name != "Alex" || rec.Answer != AnswerYes {
			t.Fatalf("unexpected notified record: %+v", rec)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected notifier to be invoked")
	}
}

func TestParseAnswer(t *testing.T) {
	if ParseAnswer(" YES ") != AnswerYes {
		t.Fatalf("expected yes")
	}
	if ParseAnswer("anything else") != AnswerNo {
		t.Fatalf("expected no for unrecognized input")
	}
}
