package actions

import (
	"context"

	"yof-server/internal/coach"
)

const recentJournalLimit = 3

type StatusSummary struct {
	TotalGoals         int `json:"total_goals"`
	CompletedGoals     int `json:"completed_goals"`
	TotalRoutines      int `json:"total_routines"`
	TotalRoutineCount  int `json:"total_routine_count"`
	RecentJournalCount int `json:"recent_journal_count"`
}

type Status struct {
	Goals          []coach.Goal         `json:"goals"`
	Routines       []coach.Routine      `json:"routines"`
	RecentJournals []coach.JournalEntry `json:"recent_journals"`
	Summary        StatusSummary        `json:"summary"`
}

func (l *Library) loadStatus(ctx context.Context, userID uint) (*Status, error) {
	goals, err := l.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	routines, err := l.ListRoutines(ctx, userID)
	if err != nil {
		return nil, err
	}
	journals, err := l.RecentJournals(ctx, userID, recentJournalLimit)
	if err != nil {
		return nil, err
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

	return &Status{
		Goals:          goals,
		Routines:       routines,
		RecentJournals: journals,
		Summary: StatusSummary{
			TotalGoals:         len(goals),
			CompletedGoals:     completed,
			TotalRoutines:      len(routines),
			TotalRoutineCount:  totalCount,
			RecentJournalCount: len(journals),
		},
	}, nil
}

// ListGoals returns the caller's goals, newest first.
func (l *Library) ListGoals(ctx context.Context, userID uint) ([]coach.Goal, error) {
	goals := []coach.Goal{}
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&goals).Error
	return goals, err
}

// ListRoutines returns the caller's routines, newest first.
func (l *Library) ListRoutines(ctx context.Context, userID uint) ([]coach.Routine, error) {
	routines := []coach.Routine{}
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&routines).Error
	return routines, err
}

// RecentJournals returns the caller's most recent entries, newest first.
func (l *Library) RecentJournals(ctx context.Context, userID uint, limit int) ([]coach.JournalEntry, error) {
	journals := []coach.JournalEntry{}
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&journals).Error
	return journals, err
}

// ListJournals returns all of the caller's entries, newest first.
func (l *Library) ListJournals(ctx context.Context, userID uint) ([]coach.JournalEntry, error) {
	journals := []coach.JournalEntry{}
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&journals).Error
	return journals, err
}
