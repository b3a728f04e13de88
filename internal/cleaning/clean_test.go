package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/recipe-crawler/internal/types"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"links removed", "재료 안내 https://example.com/a?b=1 와 www.shop.kr 참고", "재료 안내 와 참고"},
		{"hashtags removed", "#김치찜 #집밥 돼지고기 김치찜", "돼지고기 김치찜"},
		{"whitespace collapsed", "  돼지고기\n\n 300g\t김치  ", "돼지고기 300g 김치"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.raw))
		})
	}
}

func TestCleanCaptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{
			name: "sound cues and music removed",
			raw:  "[음악] 양파를 얇게 썰어줍니다 (웃음) ♪ 신나는 노래 ♪ 그리고 간장을 넣어요 ♫",
			want: "양파를 얇게 썰어줍니다 그리고 간장을 넣어요.",
		},
		{
			name: "laughter removed",
			raw:  "하하하 이제 마늘을 다져서 넣어주세요",
			want: "이제 마늘을 다져서 넣어주세요.",
		},
		{
			name: "symbols removed, punctuation kept",
			raw:  "소금 한 꼬집! 설탕 두 스푼★ 넣고 잘 섞어 주세요~",
			want: "소금 한 꼬집 설탕 두 스푼 넣고 잘 섞어 주세요.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCaptions(tt.raw))
		})
	}
}

func TestMergeShortSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"only punctuation", "...!?", ""},
		{"short sentences merged", "네. 좋아요. 이제 양파를 썰어볼게요. 다음으로 간장을 넣습니다.", "네 좋아요 이제 양파를 썰어볼게요. 다음으로 간장을 넣습니다."},
		{"long sentences kept", "양파를 얇게 채 썰어 준비합니다! 팬에 기름을 두르고 볶아요?", "양파를 얇게 채 썰어 준비합니다. 팬에 기름을 두르고 볶아요."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeShortSentences(tt.text, MinSentenceLength))
		})
	}
}

func TestJoinCaptions(t *testing.T) {
	segments := []types.CaptionSegment{
		{Text: " 안녕하세요 ", Start: 0},
		{Text: "   ", Start: 1},
		{Text: "오늘은 김치찜", Start: 2},
	}
	assert.Equal(t, "안녕하세요 오늘은 김치찜", JoinCaptions(segments))
	assert.Equal(t, "", JoinCaptions(nil))
}
