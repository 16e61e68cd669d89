package dispatch

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"yof-server/internal/actions"
	"yof-server/internal/coach"
)

func setupRegistry(t *testing.T) (*Registry, *gorm.DB) {
	t.Helper()
	dbConn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbConn.AutoMigrate(&coach.Goal{}, &coach.Routine{}, &coach.JournalEntry{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	lib := actions.NewLibrary(dbConn, nil)
	return NewCoachRegistry(lib), dbConn
}

func TestDispatchUnknownTool(t *testing.T) {
	reg, _ := setupRegistry(t)
	res := reg.Dispatch(context.Background(), 1, "launchRocket", "{}", time.Second)
	if res.OK() {
		t.Fatal("expected error for unknown tool")
	}
	if !strings.Contains(res.Error, "launchRocket") {
		t.Errorf("error should name the tool, got %q", res.Error)
	}
}

func TestDispatchMalformedJSON(t *testing.T) {
	reg, _ := setupRegistry(t)
	res := reg.Dispatch(context.Background(), 1, "addGoal", `{"title": `, time.Second)
	if res.OK() {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestDispatchSchemaViolationBeforePersistence(t *testing.T) {
	reg, dbConn := setupRegistry(t)

	res := reg.Dispatch(context.Background(), 1, "updateGoal", `{"goalId": "abc", "newTitle": "x"}`, time.Second)
	if res.OK() {
		t.Fatal("expected rejection of string goalId")
	}

	var count int64
	dbConn.Model(&coach.Goal{}).Count(&count)
	if count != 0 {
		t.Errorf("no rows should exist after rejected call, found %d", count)
	}
}

func TestDispatchExecutesAction(t *testing.T) {
	reg, dbConn := setupRegistry(t)

	res := reg.Dispatch(context.Background(), 1, "addGoal", `{"title": "아침 운동"}`, time.Second)
	if !res.OK() {
		t.Fatalf("addGoal failed: %s", res.Error)
	}

	var goal coach.Goal
	if err := dbConn.Where("user_id = ?", 1).First(&goal).Error; err != nil {
		t.Fatalf("goal not persisted: %v", err)
	}
	if goal.Title != "아침 운동" {
		t.Errorf("unexpected title %q", goal.Title)
	}
}

func TestDispatchMissingRequiredField(t *testing.T) {
	reg, dbConn := setupRegistry(t)

	res := reg.Dispatch(context.Background(), 1, "addGoal", `{}`, time.Second)
	if res.OK() {
		t.Fatal("expected rejection when title is missing")
	}

	var count int64
	dbConn.Model(&coach.Goal{}).Count(&count)
	if count != 0 {
		t.Errorf("no rows should exist, found %d", count)
	}
}

func TestToolsStableOrder(t *testing.T) {
	reg, _ := setupRegistry(t)
	tools := reg.Tools()
	if len(tools) != 10 {
		t.Fatalf("expected 10 tools, got %d", len(tools))
	}
	if tools[0].Function.Name != "addGoal" {
		t.Errorf("expected addGoal first, got %s", tools[0].Function.Name)
	}
	if tools[9].Function.Name != "getUserStatus" {
		t.Errorf("expected getUserStatus last, got %s", tools[9].Function.Name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	schema := Schema{Name: "dup"}
	handler := func(ctx context.Context, userID uint, args map[string]any) actions.Result {
		return actions.Result{Success: "ok"}
	}
	if err := reg.Register(schema, handler); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := reg.Register(schema, handler); err == nil {
		t.Error("expected error on duplicate registration")
	}
}
