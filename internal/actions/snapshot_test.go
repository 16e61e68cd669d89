package actions

import (
	"context"
	"strings"
	"testing"

	"yof-server/internal/coach"
)

func TestBuildSnapshot_EmptyState(t *testing.T) {
	lib, _ := setupLibrary(t, nil)
	snap := lib.BuildSnapshot(context.Background(), 1)
	for _, want := range []string{"설정된 목표가 없습니다", "등록된 루틴이 없습니다", "작성된 일기가 없습니다", "📊 요약"} {
		if !strings.Contains(snap, want) {
			t.Errorf("snapshot missing %q:\n%s", want, snap)
		}
	}
}

func TestBuildSnapshot_IncludesIDsAndCounts(t *testing.T) {
	lib, dbConn := setupLibrary(t, nil)
	ctx := context.Background()

	goal := coach.Goal{UserID: 1, Title: "아침 운동", Completed: true}
	dbConn.Create(&goal)
	routine := coach.Routine{UserID: 1, Name: "물 마시기", Count: 5}
	dbConn.Create(&routine)
	dbConn.Create(&coach.JournalEntry{UserID: 1, EntryText: "좋은 하루였다", Emotion: "행복"})

	snap := lib.BuildSnapshot(ctx, 1)
	if !strings.Contains(snap, "아침 운동") || !strings.Contains(snap, "✅완료") {
		t.Errorf("goal section wrong:\n%s", snap)
	}
	if !strings.Contains(snap, "물 마시기") || !strings.Contains(snap, "5회") {
		t.Errorf("routine section wrong:\n%s", snap)
	}
	if !strings.Contains(snap, "감정: 행복") {
		t.Errorf("journal section wrong:\n%s", snap)
	}
	if !strings.Contains(snap, "총 목표: 1개 (완료: 1개)") {
		t.Errorf("summary wrong:\n%s", snap)
	}
}

func TestBuildSnapshot_TruncatesLongEntries(t *testing.T) {
	lib, dbConn := setupLibrary(t, nil)

	long := strings.Repeat("가", 80)
	dbConn.Create(&coach.JournalEntry{UserID: 1, EntryText: long, Emotion: "보통"})

	snap := lib.BuildSnapshot(context.Background(), 1)
	if strings.Contains(snap, long) {
		t.Errorf("entry text should be truncated")
	}
	if !strings.Contains(snap, strings.Repeat("가", 50)+"...") {
		t.Errorf("expected 50-rune preview with ellipsis")
	}
}

func TestBuildSnapshot_OtherUsersInvisible(t *testing.T) {
	lib, dbConn := setupLibrary(t, nil)

	dbConn.Create(&coach.Goal{UserID: 2, Title: "남의 목표"})

	snap := lib.BuildSnapshot(context.Background(), 1)
	if strings.Contains(snap, "남의 목표") {
		t.Errorf("snapshot leaked another user's data")
	}
}
