package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yof-server/internal/config"
)

const journalPreviewRunes = 50

// BuildSnapshot assembles the text block that grounds the assistant in
// the user's current state: every goal and routine with IDs, the three
// most recent journal entries, and aggregate counts. Each sub-fetch is
// best-effort; a failure is logged and rendered as an empty section so
// the chat never blocks on a bad read.
func (l *Library) BuildSnapshot(ctx context.Context, userID uint) string {
	goals, err := l.ListGoals(ctx, userID)
	if err != nil {
		config.Logger.Errorw("snapshot: failed to fetch goals", "error", err, "userId", userID)
		goals = nil
	}
	routines, err := l.ListRoutines(ctx, userID)
	if err != nil {
		config.Logger.Errorw("snapshot: failed to fetch routines", "error", err, "userId", userID)
		routines = nil
	}
	journals, err := l.RecentJournals(ctx, userID, recentJournalLimit)
	if err != nil {
		config.Logger.Errorw("snapshot: failed to fetch journal", "error", err, "userId", userID)
		journals = nil
	}

	var b strings.Builder

	fmt.Fprintf(&b, "현재 시간: %s\n\n", time.Now().Format("2006-01-02 15:04"))

	if len(goals) > 0 {
		b.WriteString("📋 현재 목표 목록:\n")
		for _, g := range goals {
			state := "⏳미완료"
			if g.Completed {
				state = "✅완료"
			}
			fmt.Fprintf(&b, "- [ID: %d] %s (%s)\n", g.ID, g.Title, state)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("📋 설정된 목표가 없습니다.\n\n")
	}

	if len(routines) > 0 {
		b.WriteString("💪 현재 루틴 목록:\n")
		for _, r := range routines {
			fmt.Fprintf(&b, "- [ID: %d] %s (오늘 %d회 완료)\n", r.ID, r.Name, r.Count)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("💪 등록된 루틴이 없습니다.\n\n")
	}

	if len(journals) > 0 {
		b.WriteString("📝 최근 일기 목록:\n")
		for _, entry := range journals {
			fmt.Fprintf(&b, "- [ID: %d] %s: %s (감정: %s)\n",
				entry.ID,
				entry.CreatedAt.Format("1월 2일"),
				previewText(entry.EntryText),
				entry.Emotion)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("📝 작성된 일기가 없습니다.\n\n")
	}

	completed := 0
	for _, g := range goals {
		if g.Completed {
			completed++
		}
	}
	totalCount := 0
	for _, r := range routines {
		totalCount += r.Count
	}

	b.WriteString("📊 요약:\n")
	fmt.Fprintf(&b, "- 총 목표: %d개 (완료: %d개)\n", len(goals), completed)
	fmt.Fprintf(&b, "- 총 루틴: %d개 (총 완료 횟수: %d회)\n", len(routines), totalCount)
	fmt.Fprintf(&b, "- 총 일기: %d개\n\n", len(journals))

	b.WriteString("💡 참고: 사용자가 ID를 언급하지 않더라도, 목표나 루틴 이름으로 찾아서 적절한 ID를 사용하여 작업할 수 있습니다.")

	return b.String()
}

func previewText(s string) string {
	runes := []rune(s)
	if len(runes) <= journalPreviewRunes {
		return s
	}
	return string(runes[:journalPreviewRunes]) + "..."
}
