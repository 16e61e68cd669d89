package dispatch

import (
	"context"

	"yof-server/internal/actions"
)

// NewCoachRegistry builds the registry of coaching actions exposed to
// the model, all bound to the given action library.
func NewCoachRegistry(lib *actions.Library) *Registry {
	r := NewRegistry()

	register := func(schema Schema, handler Handler) {
		if err := r.Register(schema, handler); err != nil {
			panic(err)
		}
	}

	register(Schema{
		Name:        "addGoal",
		Description: "주인님의 새로운 목표를 추가합니다.",
		Params: map[string]Param{
			"title": {Type: "string", Description: "목표의 제목", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.AddGoal(ctx, userID, argString(args, "title"))
	})

	register(Schema{
		Name:        "updateGoal",
		Description: "주인님의 기존 목표를 수정합니다.",
		Params: map[string]Param{
			"goalId":   {Type: "integer", Description: "수정할 목표의 ID", Required: true},
			"newTitle": {Type: "string", Description: "새로운 목표 제목", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.UpdateGoal(ctx, userID, argUint(args, "goalId"), argString(args, "newTitle"))
	})

	register(Schema{
		Name:        "deleteGoal",
		Description: "주인님의 목표를 삭제합니다.",
		Params: map[string]Param{
			"goalId": {Type: "integer", Description: "삭제할 목표의 ID", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.DeleteGoal(ctx, userID, argUint(args, "goalId"))
	})

	register(Schema{
		Name:        "toggleGoalCompletion",
		Description: "주인님의 목표 완료 상태를 변경합니다.",
		Params: map[string]Param{
			"goalId":    {Type: "integer", Description: "상태를 변경할 목표의 ID", Required: true},
			"completed": {Type: "boolean", Description: "완료 여부 (true: 완료, false: 미완료)", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		completed, _ := args["completed"].(bool)
		return lib.ToggleGoalCompletion(ctx, userID, argUint(args, "goalId"), completed)
	})

	register(Schema{
		Name:        "incrementRoutine",
		Description: "주인님의 루틴 횟수를 1 증가시킵니다. 루틴 이름의 일부만 알아도 됩니다.",
		Params: map[string]Param{
			"name": {Type: "string", Description: "증가시킬 루틴의 이름 (일부 일치 허용)", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.IncrementRoutine(ctx, userID, argString(args, "name"))
	})

	register(Schema{
		Name:        "addRoutine",
		Description: "주인님의 새로운 루틴을 추가합니다.",
		Params: map[string]Param{
			"name": {Type: "string", Description: "루틴의 이름", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.AddRoutine(ctx, userID, argString(args, "name"))
	})

	register(Schema{
		Name:        "deleteRoutine",
		Description: "주인님의 루틴을 삭제합니다.",
		Params: map[string]Param{
			"routineId": {Type: "integer", Description: "삭제할 루틴의 ID", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.DeleteRoutine(ctx, userID, argUint(args, "routineId"))
	})

	register(Schema{
		Name:        "createJournalEntry",
		Description: "주인님의 일기를 작성합니다. 감정은 자동으로 분석됩니다.",
		Params: map[string]Param{
			"entry_text": {Type: "string", Description: "일기 내용", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.CreateJournalEntry(ctx, userID, argString(args, "entry_text"))
	})

	register(Schema{
		Name:        "deleteJournalEntry",
		Description: "주인님의 일기를 삭제합니다.",
		Params: map[string]Param{
			"entryId": {Type: "integer", Description: "삭제할 일기의 ID", Required: true},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.DeleteJournalEntry(ctx, userID, argUint(args, "entryId"))
	})

	register(Schema{
		Name:        "getUserStatus",
		Description: "주인님의 현재 목표, 루틴, 최근 일기 등 전체 상태를 조회합니다.",
		Params: map[string]Param{
			"includeDetails": {Type: "boolean", Description: "상세 정보 포함 여부", Required: false},
		},
	}, func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return lib.GetUserStatus(ctx, userID)
	})

	return r
}
