package process

import (
	"fmt"
	"strings"

	"ewintr.nl/ytdash/model"
	"ewintr.nl/ytdash/report"
)

const promptTemplate = `You are analyzing YouTube performance data for %s channels. %s

TOP 10 PERFORMING VIDEOS:
%s

BOTTOM 10 PERFORMING VIDEOS:
%s

HIGHEST ENGAGEMENT VIDEOS:
%s

Provide 5 SPECIFIC insights about content performance. Mention actual names, events and topics from the titles above:

1. WINNING TOPICS: Which subjects, people or events drive views?

2. LOSING TOPICS: Which subjects or approaches fail? What appears in the bottom performers but not in the top performers?

3. TITLE PATTERNS: Which words, phrases or formats separate successful titles from unsuccessful ones?

4. ENGAGEMENT DRIVERS: Which topics get high engagement even with lower views?

5. CONTENT GAPS: Which related topics are missing that could perform well?

Do not give generic advice. Base everything on the video titles provided above.`

// BuildPrompt lists the top and bottom videos by views and the videos with
// the highest engagement rate.
func BuildPrompt(dashboard model.Dashboard, videos []model.Video) string {
	return fmt.Sprintf(promptTemplate,
		dashboard.Focus,
		dashboard.Note,
		viewLines(report.Top(videos, 10, nil)),
		viewLines(report.Bottom(videos, 10)),
		engagementLines(report.TopEngagement(videos, 10)),
	)
}

func viewLines(videos []model.Video) string {
	lines := make([]string, 0, len(videos))
	for _, v := range videos {
		lines = append(lines, fmt.Sprintf("- %s (%s views, %s)", v.Title, report.Thousands(v.Views), v.Channel))
	}
	return strings.Join(lines, "\n")
}

func engagementLines(videos []model.Video) string {
	lines := make([]string, 0, len(videos))
	for _, v := range videos {
		lines = append(lines, fmt.Sprintf("- %s (%.1f%% engagement, %s views)", v.Title, v.EngagementRate(), report.Thousands(v.Views)))
	}
	return strings.Join(lines, "\n")
}
