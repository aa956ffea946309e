package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/educareer/internal/catalog"
)

func failingFake() *Fake {
	f := NewFake()
	boom := errors.New("boom")
	f.TaskErr = boom
	f.FeedbackErr = boom
	f.AssessmentErr = boom
	f.ChatErr = boom
	return f
}

func TestFallbackValues(t *testing.T) {
	o := WithFallback(failingFake(), nil)
	ctx := context.Background()

	task, err := o.GenerateDailyTask(ctx, TaskRequest{Spec: catalog.Finance, Level: 1})
	if err == nil || task != nil {
		t.Fatalf("task fallback: got %v, %v; want nil with error", task, err)
	}

	fb, err := o.AnalyzeSubmission(ctx, SubmissionRequest{Spec: catalog.Finance})
	if err == nil {
		t.Fatal("expected error from feedback")
	}
	if fb == nil || fb.Feedback != "Error processing feedback" || fb.Score != 0 || len(fb.Suggestions) != 0 || fb.Suggestions == nil {
		t.Fatalf("unexpected feedback fallback: %+v", fb)
	}

	qs, err := o.GenerateAssessment(ctx, AssessmentRequest{Spec: catalog.Finance})
	if err == nil || qs == nil || len(qs) != 0 {
		t.Fatalf("assessment fallback: got %v, %v; want empty slice with error", qs, err)
	}

	ar, err := o.Chat(ctx, ChatRequest{Spec: catalog.Finance, Lang: catalog.Arabic})
	if err == nil || ar != "عذراً، أواجه مشكلة في الرد حالياً." {
		t.Fatalf("arabic chat fallback = %q, %v", ar, err)
	}
	en, _ := o.Chat(ctx, ChatRequest{Spec: catalog.Finance, Lang: catalog.English})
	if en != "Sorry, I'm having trouble responding right now." {
		t.Fatalf("english chat fallback = %q", en)
	}
}

func TestFallbackPassesSuccessThrough(t *testing.T) {
	o := WithFallback(NewFake(), nil)
	ctx := context.Background()

	task, err := o.GenerateDailyTask(ctx, TaskRequest{Spec: catalog.Accounting, Level: 3, Lang: catalog.English})
	if err != nil || task == nil || task.Title == "" {
		t.Fatalf("unexpected task result: %v, %v", task, err)
	}
	qs, err := o.GenerateAssessment(ctx, AssessmentRequest{Spec: catalog.Accounting})
	if err != nil || len(qs) != 10 {
		t.Fatalf("unexpected assessment result: %d, %v", len(qs), err)
	}
	reply, err := o.Chat(ctx, ChatRequest{Spec: catalog.Accounting, Message: "hi"})
	if err != nil || reply != "[accounting] hi" {
		t.Fatalf("unexpected chat result: %q, %v", reply, err)
	}
}

func TestFakeCorrectAnswersAndMix(t *testing.T) {
	f := NewFake()
	qs, _ := f.GenerateAssessment(context.Background(), AssessmentRequest{Spec: catalog.Finance})
	want := CorrectAnswers()
	counts := map[string]int{}
	for i, q := range qs {
		if q.CorrectAnswerIndex != want[i] {
			t.Errorf("q%d correct = %d, want %d", i, q.CorrectAnswerIndex, want[i])
		}
		counts[string(q.Difficulty)]++
	}
	if counts["beginner"] != 3 || counts["intermediate"] != 4 || counts["advanced"] != 3 {
		t.Fatalf("difficulty mix = %v", counts)
	}
	if f.Calls("GenerateAssessment") != 1 {
		t.Fatalf("calls = %d", f.Calls("GenerateAssessment"))
	}
}
