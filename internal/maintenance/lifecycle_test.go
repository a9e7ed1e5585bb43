package maintenance

import (
	"testing"
	"time"
)

func TestCanTransitionAllowsAllKnownPairs(t *testing.T) {
	statuses := []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			if !CanTransition(from, to) {
				t.Fatalf("expected %s -> %s to be allowed", from, to)
			}
		}
	}
}

func TestCanTransitionRejectsUnknownStatus(t *testing.T) {
	if CanTransition(Status("archived"), StatusPending) {
		t.Fatal("unknown source status should be rejected")
	}
	if CanTransition(StatusPending, Status("archived")) {
		t.Fatal("unknown target status should be rejected")
	}
}

func TestCompletionStampSetOnce(t *testing.T) {
	s := &Service{Status: StatusPending}

	if err := ApplyTransition(s, StatusCompleted); err != nil {
		t.Fatalf("transition: %v", err)
	}
	first := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	s.stampCompletion(first)
	if s.CompletedDate == nil || !s.CompletedDate.Equal(first) {
		t.Fatalf("expected completion stamp %v, got %v", first, s.CompletedDate)
	}

	// 再次保存不覆盖首次时间戳。
	s.stampCompletion(first.Add(time.Hour))
	if !s.CompletedDate.Equal(first) {
		t.Fatalf("stamp was overwritten: %v", s.CompletedDate)
	}

	// 离开 completed 再回来也不重盖、不清空。
	if err := ApplyTransition(s, StatusInProgress); err != nil {
		t.Fatalf("transition back: %v", err)
	}
	s.stampCompletion(first.Add(2 * time.Hour))
	if !s.CompletedDate.Equal(first) {
		t.Fatalf("stamp changed after leaving completed: %v", s.CompletedDate)
	}
	if err := ApplyTransition(s, StatusCompleted); err != nil {
		t.Fatalf("transition again: %v", err)
	}
	s.stampCompletion(first.Add(3 * time.Hour))
	if !s.CompletedDate.Equal(first) {
		t.Fatalf("stamp re-applied on second completion: %v", s.CompletedDate)
	}
}

func TestStampNotSetForOtherStatuses(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusInProgress, StatusCancelled} {
		s := &Service{Status: st}
		s.stampCompletion(time.Now())
		if s.CompletedDate != nil {
			t.Fatalf("status %s must not stamp completion", st)
		}
	}
}
