package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"yof-server/internal/actions"
)

// resultJSON maps an action outcome to an HTTP response.
func resultJSON(c *gin.Context, res actions.Result) {
	if res.OK() {
		c.JSON(http.StatusOK, gin.H{"message": res.Success, "data": res.Data})
		return
	}
	status := http.StatusInternalServerError
	switch {
	case strings.Contains(res.Error, "찾을 수 없습니다"):
		status = http.StatusNotFound
	case strings.Contains(res.Error, "로그인이 필요합니다"):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": gin.H{"message": res.Error}})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid id"}})
		return 0, false
	}
	return uint(id), true
}

type goalRequest struct {
	Title     string `json:"title"`
	Completed *bool  `json:"completed"`
}

type routineRequest struct {
	Name string `json:"name"`
}

type journalRequest struct {
	EntryText string `json:"entry_text"`
}

func ListGoalsHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		goals, err := lib.ListGoals(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"goals": goals})
	}
}

func CreateGoalHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		var req goalRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "title required"}})
			return
		}
		resultJSON(c, lib.AddGoal(c.Request.Context(), userId, req.Title))
	}
}

// UpdateGoalHandler renames a goal, sets its completion flag, or both.
func UpdateGoalHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req goalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if req.Title == "" && req.Completed == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "title or completed required"}})
			return
		}
		if req.Title != "" {
			res := lib.UpdateGoal(c.Request.Context(), userId, id, req.Title)
			if !res.OK() {
				resultJSON(c, res)
				return
			}
			if req.Completed == nil {
				resultJSON(c, res)
				return
			}
		}
		resultJSON(c, lib.ToggleGoalCompletion(c.Request.Context(), userId, id, *req.Completed))
	}
}

// ToggleGoalHandler sets only the completion flag.
func ToggleGoalHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req goalRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "completed required"}})
			return
		}
		resultJSON(c, lib.ToggleGoalCompletion(c.Request.Context(), userId, id, *req.Completed))
	}
}

func DeleteGoalHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		id, ok := pathID(c)
		if !ok {
			return
		}
		resultJSON(c, lib.DeleteGoal(c.Request.Context(), userId, id))
	}
}

func ListRoutinesHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		routines, err := lib.ListRoutines(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"routines": routines})
	}
}

func CreateRoutineHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		var req routineRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "name required"}})
			return
		}
		resultJSON(c, lib.AddRoutine(c.Request.Context(), userId, req.Name))
	}
}

// IncrementRoutineHandler bumps a routine found by fuzzy name match.
func IncrementRoutineHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		var req routineRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "name required"}})
			return
		}
		resultJSON(c, lib.IncrementRoutine(c.Request.Context(), userId, req.Name))
	}
}

func DeleteRoutineHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		id, ok := pathID(c)
		if !ok {
			return
		}
		resultJSON(c, lib.DeleteRoutine(c.Request.Context(), userId, id))
	}
}

func ListJournalHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		entries, err := lib.ListJournals(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

func CreateJournalHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		var req journalRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.EntryText == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "entry_text required"}})
			return
		}
		resultJSON(c, lib.CreateJournalEntry(c.Request.Context(), userId, req.EntryText))
	}
}

func DeleteJournalHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		id, ok := pathID(c)
		if !ok {
			return
		}
		resultJSON(c, lib.DeleteJournalEntry(c.Request.Context(), userId, id))
	}
}

func StatusHandler(lib *actions.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		resultJSON(c, lib.GetUserStatus(c.Request.Context(), userId))
	}
}
