package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"yof-server/internal/actions"
	"yof-server/internal/coach"
	"yof-server/internal/db"
)

func setupTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
}

type fixedClassifier struct {
	label string
	err   error
}

func (f *fixedClassifier) Classify(ctx context.Context, entryText string) (string, error) {
	return f.label, f.err
}

// coachRouter builds a router with authentication faked for the given user.
func coachRouter(t *testing.T, userID uint, classifier actions.EmotionClassifier) (*gin.Engine, *actions.Library) {
	t.Helper()
	dbConn := setupTestDB(t)
	resetTables(t)
	lib := actions.NewLibrary(dbConn, classifier)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("username", "tester")
		c.Next()
	})

	r.GET("/api/goals", ListGoalsHandler(lib))
	r.POST("/api/goals", CreateGoalHandler(lib))
	r.PUT("/api/goals/:id", UpdateGoalHandler(lib))
	r.PUT("/api/goals/:id/toggle", ToggleGoalHandler(lib))
	r.DELETE("/api/goals/:id", DeleteGoalHandler(lib))
	r.GET("/api/routines", ListRoutinesHandler(lib))
	r.POST("/api/routines", CreateRoutineHandler(lib))
	r.POST("/api/routines/increment", IncrementRoutineHandler(lib))
	r.DELETE("/api/routines/:id", DeleteRoutineHandler(lib))
	r.GET("/api/journal", ListJournalHandler(lib))
	r.POST("/api/journal", CreateJournalHandler(lib))
	r.DELETE("/api/journal/:id", DeleteJournalHandler(lib))
	r.GET("/api/status", StatusHandler(lib))
	return r, lib
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGoalCRUDFlow(t *testing.T) {
	r, _ := coachRouter(t, 1, nil)

	w := doJSON(t, r, "POST", "/api/goals", goalRequest{Title: "아침 운동"})
	if w.Code != http.StatusOK {
		t.Fatalf("create goal failed: %d %s", w.Code, w.Body.String())
	}

	var listResp struct {
		Goals []coach.Goal `json:"goals"`
	}
	w = doJSON(t, r, "GET", "/api/goals", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("failed to parse goals: %v", err)
	}
	if len(listResp.Goals) != 1 || listResp.Goals[0].Title != "아침 운동" {
		t.Fatalf("unexpected goals: %+v", listResp.Goals)
	}
	goalID := listResp.Goals[0].ID

	completed := true
	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/goals/%d", goalID), goalRequest{Title: "저녁 운동", Completed: &completed})
	if w.Code != http.StatusOK {
		t.Fatalf("update goal failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "GET", "/api/goals", nil)
	listResp.Goals = nil
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("failed to parse goals: %v", err)
	}
	if listResp.Goals[0].Title != "저녁 운동" || !listResp.Goals[0].Completed {
		t.Errorf("update not applied: %+v", listResp.Goals[0])
	}

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/goals/%d", goalID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete goal failed: %d %s", w.Code, w.Body.String())
	}
}

func TestToggleGoalEndpoint(t *testing.T) {
	r, lib := coachRouter(t, 1, nil)
	lib.AddGoal(context.Background(), 1, "물 마시기")

	var goal coach.Goal
	if err := db.DB.Where("user_id = ?", 1).First(&goal).Error; err != nil {
		t.Fatalf("failed to load goal: %v", err)
	}

	completed := true
	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/goals/%d/toggle", goal.ID), goalRequest{Completed: &completed})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", w.Code, w.Body.String())
	}

	if err := db.DB.First(&goal, goal.ID).Error; err != nil {
		t.Fatalf("failed to reload goal: %v", err)
	}
	if !goal.Completed {
		t.Error("goal should be completed after toggle")
	}
}

func TestUpdateGoalNotFound(t *testing.T) {
	r, _ := coachRouter(t, 1, nil)
	w := doJSON(t, r, "PUT", "/api/goals/999", goalRequest{Title: "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing goal, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateGoalInvalidID(t *testing.T) {
	r, _ := coachRouter(t, 1, nil)
	w := doJSON(t, r, "PUT", "/api/goals/abc", goalRequest{Title: "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestRoutineIncrementByName(t *testing.T) {
	r, _ := coachRouter(t, 1, nil)

	w := doJSON(t, r, "POST", "/api/routines", routineRequest{Name: "독서 습관"})
	if w.Code != http.StatusOK {
		t.Fatalf("create routine failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", "/api/routines/increment", routineRequest{Name: "독서"})
	if w.Code != http.StatusOK {
		t.Fatalf("increment failed: %d %s", w.Code, w.Body.String())
	}

	var listResp struct {
		Routines []coach.Routine `json:"routines"`
	}
	w = doJSON(t, r, "GET", "/api/routines", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("failed to parse routines: %v", err)
	}
	if len(listResp.Routines) != 1 || listResp.Routines[0].Count != 1 {
		t.Errorf("unexpected routines: %+v", listResp.Routines)
	}
}

func TestRoutineIncrementNoMatch(t *testing.T) {
	r, _ := coachRouter(t, 1, nil)
	w := doJSON(t, r, "POST", "/api/routines/increment", routineRequest{Name: "명상"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unmatched routine, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJournalCreateClassifiesEmotion(t *testing.T) {
	r, _ := coachRouter(t, 1, &fixedClassifier{label: "행복"})

	w := doJSON(t, r, "POST", "/api/journal", journalRequest{EntryText: "오늘은 정말 좋은 하루였다"})
	if w.Code != http.StatusOK {
		t.Fatalf("create journal failed: %d %s", w.Code, w.Body.String())
	}

	var entries []coach.JournalEntry
	if err := db.DB.Where("user_id = ?", 1).Find(&entries).Error; err != nil {
		t.Fatalf("failed to load entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Emotion != "행복" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestStatusHandlerAggregates(t *testing.T) {
	r, lib := coachRouter(t, 1, nil)
	ctx := context.Background()
	lib.AddGoal(ctx, 1, "물 마시기")
	lib.AddRoutine(ctx, 1, "스트레칭")

	w := doJSON(t, r, "GET", "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data actions.Status `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse status: %v", err)
	}
	if resp.Data.Summary.TotalGoals != 1 || len(resp.Data.Routines) != 1 {
		t.Errorf("unexpected status: %+v", resp.Data)
	}
}

func TestDeleteForeignJournalEntry(t *testing.T) {
	r, lib := coachRouter(t, 1, &fixedClassifier{label: "보통"})
	lib.CreateJournalEntry(context.Background(), 2, "남의 일기")

	var entry coach.JournalEntry
	if err := db.DB.Where("user_id = ?", 2).First(&entry).Error; err != nil {
		t.Fatalf("failed to load seeded entry: %v", err)
	}

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/journal/%d", entry.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign entry, got %d: %s", w.Code, w.Body.String())
	}
}
