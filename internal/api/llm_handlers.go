package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yof-server/internal/actions"
	"yof-server/internal/config"
)

// TextGenerator produces a single completion. Satisfied by llm.Client.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

const briefingPromptFormat = `당신은 Yof, 주인님만을 위한 개인 AI 라이프 코치입니다.
오늘은 %s입니다.

주인님의 현재 상황을 바탕으로 따뜻하고 격려하는 "오늘의 브리핑"을 작성해주세요.
- 주인님의 목표 달성 상황 언급
- 루틴 수행에 대한 응원 메시지
- 일기를 통해 파악한 감정 상태 고려
- 오늘 하루를 위한 개인적인 조언

2-3문장으로 간결하게 작성하며, 항상 "주인님"이라고 호칭하고 한국어로 응답하세요.

주인님의 현재 상황:
%s`

const fortuneSystemPrompt = `You are a wise fortune teller. Provide a short, positive, and encouraging fortune for today (within 1-2 sentences). Respond in Korean.`

var koreanWeekdays = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

func koreanDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 %s", t.Year(), int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// BriefingHandler generates a personalized daily briefing from the
// user's current goals, routines, and journal.
func BriefingHandler(lib *actions.Library, gen TextGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.MustGet("userId").(uint)
		ctx := c.Request.Context()

		snapshot := lib.BuildSnapshot(ctx, userId)
		system := fmt.Sprintf(briefingPromptFormat, koreanDate(time.Now()), snapshot)
		briefing, err := gen.Generate(ctx, system, "주인님을 위한 오늘의 개인 맞춤 브리핑을 작성해주세요.")
		if err != nil {
			config.Logger.Errorw("briefing generation failed", "userId", userId, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Error generating briefing"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"briefing": briefing})
	}
}

func FortuneHandler(gen TextGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		fortune, err := gen.Generate(c.Request.Context(), fortuneSystemPrompt, "오늘의 운세를 알려주세요.")
		if err != nil {
			config.Logger.Errorw("fortune generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Error generating fortune"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fortune": fortune})
	}
}
