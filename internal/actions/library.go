package actions

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"yof-server/internal/coach"
	"yof-server/internal/config"
)

// EmotionClassifier tags a journal entry with one label from the fixed
// emotion set. Implemented by the llm package; stubbed in tests.
type EmotionClassifier interface {
	Classify(ctx context.Context, entryText string) (string, error)
}

// Result is what every operation hands back across the tool boundary.
// Operations never panic or leak raw errors to the model; they return
// either a success message or a human-readable error message.
type Result struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (r Result) OK() bool { return r.Error == "" }

func successf(format string, args ...any) Result {
	return Result{Success: fmt.Sprintf(format, args...)}
}

func errorf(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

const msgAuthRequired = "로그인이 필요합니다."

// Library implements the ten coach operations. Every method takes the
// authenticated user's ID explicitly; it is resolved at the request
// boundary and never trusted from model-supplied arguments. Both the
// dispatcher and the REST handlers go through these methods, so the
// ownership checks live in exactly one place.
type Library struct {
	db         *gorm.DB
	classifier EmotionClassifier
}

func NewLibrary(db *gorm.DB, classifier EmotionClassifier) *Library {
	return &Library{db: db, classifier: classifier}
}

// AddGoal inserts a new incomplete goal owned by the caller.
func (l *Library) AddGoal(ctx context.Context, userID uint, title string) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	goal := coach.Goal{UserID: userID, Title: title}
	if err := l.db.WithContext(ctx).Create(&goal).Error; err != nil {
		config.Logger.Errorw("failed to add goal", "error", err, "userId", userID)
		return errorf("목표 추가 실패: %v", err)
	}
	return Result{Success: fmt.Sprintf("%q 목표를 성공적으로 추가했습니다.", title), Data: goal}
}

// UpdateGoal renames a goal iff owned by the caller.
func (l *Library) UpdateGoal(ctx context.Context, userID uint, goalID uint, newTitle string) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	tx := l.db.WithContext(ctx).Model(&coach.Goal{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Update("title", newTitle)
	if tx.Error != nil {
		config.Logger.Errorw("failed to update goal", "error", tx.Error, "userId", userID, "goalId", goalID)
		return errorf("목표 수정 실패: %v", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errorf("목표를 찾을 수 없습니다.")
	}
	return successf("목표를 %q로 수정했습니다.", newTitle)
}

// DeleteGoal deletes a goal iff owned by the caller.
func (l *Library) DeleteGoal(ctx context.Context, userID uint, goalID uint) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	tx := l.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&coach.Goal{})
	if tx.Error != nil {
		config.Logger.Errorw("failed to delete goal", "error", tx.Error, "userId", userID, "goalId", goalID)
		return errorf("목표 삭제 실패: %v", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errorf("목표를 찾을 수 없습니다.")
	}
	return successf("목표를 삭제했습니다.")
}

// ToggleGoalCompletion sets the completion flag iff owned by the caller.
func (l *Library) ToggleGoalCompletion(ctx context.Context, userID uint, goalID uint, completed bool) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	tx := l.db.WithContext(ctx).Model(&coach.Goal{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Update("completed", completed)
	if tx.Error != nil {
		config.Logger.Errorw("failed to toggle goal", "error", tx.Error, "userId", userID, "goalId", goalID)
		return errorf("목표 상태 변경 실패: %v", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errorf("목표를 찾을 수 없습니다.")
	}
	state := "미완료"
	if completed {
		state = "완료"
	}
	return successf("목표를 %s로 변경했습니다.", state)
}

// IncrementRoutine bumps the counter of the first routine whose name
// contains the given substring, matched case-insensitively. When
// several routines match, the newest one wins.
func (l *Library) IncrementRoutine(ctx context.Context, userID uint, name string) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	var routine coach.Routine
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("created_at desc").
		First(&routine).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errorf("%q 루틴을 찾을 수 없습니다.", name)
		}
		config.Logger.Errorw("failed to find routine", "error", err, "userId", userID, "name", name)
		return errorf("루틴 조회 실패: %v", err)
	}
	// Single atomic write; concurrent increments both land.
	if err := l.db.WithContext(ctx).Model(&routine).
		Update("count", gorm.Expr("count + ?", 1)).Error; err != nil {
		config.Logger.Errorw("failed to increment routine", "error", err, "userId", userID, "routineId", routine.ID)
		return errorf("루틴 업데이트 실패: %v", err)
	}
	return successf("%q 루틴을 완료했습니다. 총 %d회 달성!", routine.Name, routine.Count+1)
}

// AddRoutine inserts a new routine with a zero counter.
func (l *Library) AddRoutine(ctx context.Context, userID uint, name string) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	routine := coach.Routine{UserID: userID, Name: name, Count: 0}
	if err := l.db.WithContext(ctx).Create(&routine).Error; err != nil {
		config.Logger.Errorw("failed to add routine", "error", err, "userId", userID)
		return errorf("루틴 추가 실패: %v", err)
	}
	return Result{Success: fmt.Sprintf("%q 루틴을 추가했습니다.", name), Data: routine}
}

// DeleteRoutine deletes a routine iff owned by the caller.
func (l *Library) DeleteRoutine(ctx context.Context, userID uint, routineID uint) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	tx := l.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", routineID, userID).
		Delete(&coach.Routine{})
	if tx.Error != nil {
		config.Logger.Errorw("failed to delete routine", "error", tx.Error, "userId", userID, "routineId", routineID)
		return errorf("루틴 삭제 실패: %v", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errorf("루틴을 찾을 수 없습니다.")
	}
	return successf("루틴을 삭제했습니다.")
}

// CreateJournalEntry classifies the entry's emotion against the fixed
// label set, then persists it. A failed classification falls back to
// the unclassified label instead of blocking the write.
func (l *Library) CreateJournalEntry(ctx context.Context, userID uint, entryText string) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	emotion := coach.EmotionUnknown
	if l.classifier != nil {
		label, err := l.classifier.Classify(ctx, entryText)
		if err != nil {
			config.Logger.Warnw("emotion classification failed", "error", err, "userId", userID)
		} else {
			emotion = coach.NormalizeEmotion(label)
		}
	}
	entry := coach.JournalEntry{UserID: userID, EntryText: entryText, Emotion: emotion}
	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		config.Logger.Errorw("failed to create journal entry", "error", err, "userId", userID)
		return errorf("일기 작성 실패: %v", err)
	}
	return Result{Success: fmt.Sprintf("오늘의 %q 감정을 기록했습니다.", emotion), Data: entry}
}

// DeleteJournalEntry deletes an entry iff owned by the caller.
func (l *Library) DeleteJournalEntry(ctx context.Context, userID uint, entryID uint) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	tx := l.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&coach.JournalEntry{})
	if tx.Error != nil {
		config.Logger.Errorw("failed to delete journal entry", "error", tx.Error, "userId", userID, "entryId", entryID)
		return errorf("일기 삭제 실패: %v", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errorf("일기를 찾을 수 없습니다.")
	}
	return successf("일기를 삭제했습니다.")
}

// GetUserStatus returns the full goals/routines/recent-journal summary.
func (l *Library) GetUserStatus(ctx context.Context, userID uint) Result {
	if userID == 0 {
		return errorf(msgAuthRequired)
	}
	status, err := l.loadStatus(ctx, userID)
	if err != nil {
		config.Logger.Errorw("failed to load user status", "error", err, "userId", userID)
		return errorf("사용자 상태 조회 실패: %v", err)
	}
	return Result{Success: "사용자 상태를 조회했습니다.", Data: status}
}
