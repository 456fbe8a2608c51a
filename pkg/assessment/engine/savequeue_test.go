package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

func TestSaveQueueSingleSave(t *testing.T) {
	var mu sync.Mutex
	var saved [][]types.AnswerItem

	queue := NewSaveQueue(func(ctx context.Context, answers []types.AnswerItem) (int, error) {
		mu.Lock()
		saved = append(saved, answers)
		mu.Unlock()
		return 50, nil
	}, nil)

	queue.Enqueue(context.Background(), []types.AnswerItem{{QuestionID: "q1", Answer: "yes"}})
	if err := queue.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(saved))
	}
	if saved[0][0].QuestionID != "q1" {
		t.Errorf("unexpected snapshot: %v", saved[0])
	}
}

func TestSaveQueueNewestSnapshotWins(t *testing.T) {
	block := make(chan struct{})
	var mu sync.Mutex
	var saved [][]types.AnswerItem

	queue := NewSaveQueue(func(ctx context.Context, answers []types.AnswerItem) (int, error) {
		mu.Lock()
		first := len(saved) == 0
		saved = append(saved, answers)
		mu.Unlock()
		if first {
			<-block
		}
		return 0, nil
	}, nil)

	queue.Enqueue(context.Background(), []types.AnswerItem{{QuestionID: "q1", Answer: "v1"}})

	// wait until the first save is in flight before stacking snapshots
	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		started := len(saved) > 0
		mu.Unlock()
		if started {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first save never started")
		}
		time.Sleep(time.Millisecond)
	}

	queue.Enqueue(context.Background(), []types.AnswerItem{{QuestionID: "q1", Answer: "v2"}})
	queue.Enqueue(context.Background(), []types.AnswerItem{{QuestionID: "q1", Answer: "v3"}})
	close(block)

	if err := queue.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 2 {
		t.Fatalf("expected intermediate snapshot to collapse, got %d saves", len(saved))
	}
	if saved[1][0].Answer != "v3" {
		t.Errorf("expected the newest snapshot to be saved, got %q", saved[1][0].Answer)
	}
}

func TestSaveQueueReportsResults(t *testing.T) {
	saveErr := errors.New("server unreachable")
	var mu sync.Mutex
	var results []SaveResult

	queue := NewSaveQueue(func(ctx context.Context, answers []types.AnswerItem) (int, error) {
		return 0, saveErr
	}, func(result SaveResult) {
		mu.Lock()
		results = append(results, result)
		mu.Unlock()
	})

	queue.Enqueue(context.Background(), []types.AnswerItem{{QuestionID: "q1", Answer: "yes"}})
	if err := queue.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !errors.Is(results[0].Err, saveErr) {
		t.Errorf("expected the save error to be reported, got %v", results[0].Err)
	}
}

func TestSaveQueueFlushHonorsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	queue := NewSaveQueue(func(ctx context.Context, answers []types.AnswerItem) (int, error) {
		<-block
		return 0, nil
	}, nil)

	queue.Enqueue(context.Background(), []types.AnswerItem{{QuestionID: "q1", Answer: "yes"}})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := queue.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}
