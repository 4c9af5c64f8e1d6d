package devserver

import "strings"

type cannedAnswer struct {
	keywords []string
	reply    string
}

var cannedAnswers = []cannedAnswer{
	{
		keywords: []string{"우승", "champion", "winner"},
		reply:    "**브라질**이 5회로 최다 우승국입니다.\n*독일*과 *이탈리아*가 4회로 뒤를 잇습니다.",
	},
	{
		keywords: []string{"2026", "개최", "host"},
		reply:    "2026 월드컵은 **미국, 캐나다, 멕시코** 공동 개최입니다.\n참가국은 `48`개국으로 늘어납니다.",
	},
	{
		keywords: []string{"득점", "scorer", "goals"},
		reply:    "역대 최다 득점자는 **미로슬라프 클로제**(독일)로 `16`골입니다.",
	},
	{
		keywords: []string{"한국", "korea"},
		reply:    "한국 대표팀의 최고 성적은 **2002년 4강**입니다.\n*히딩크* 감독이 이끌었습니다.",
	},
}

const defaultAnswer = "질문을 이해하지 못했습니다. *우승국*, *개최지*, *득점왕* 등에 대해 물어보세요."

// Answer returns the canned reply for question
func Answer(question string) string {
	q := strings.ToLower(question)
	for _, a := range cannedAnswers {
		for _, kw := range a.keywords {
			if strings.Contains(q, kw) {
				return a.reply
			}
		}
	}
	return defaultAnswer
}
