package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_GetFallsBackToEnglish(t *testing.T) {
	r := NewRegistry()
	p := r.Get("xx")
	require.NotNil(t, p)
	assert.Equal(t, "en", p.Code())
}

func TestNewRegistry_GetKnownLanguage(t *testing.T) {
	r := NewRegistry()
	p := r.Get("ko")
	require.NotNil(t, p)
	assert.Equal(t, "ko", p.Code())
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"english", "The quick brown fox jumps over the lazy dog.", "en"},
		{"korean", "안녕하세요 저는 한국어로 작성된 문서를 테스트하고 있습니다.", "ko"},
		{"japanese", "これは日本語のテスト文章です。よろしくお願いします。", "ja"},
		{"chinese", "这是一个用于测试的中文文本示例，包含多个汉字。", "zh"},
		{"russian", "Это пример текста на русском языке для тестирования.", "ru"},
		{"arabic", "هذا نص تجريبي باللغة العربية لاختبار الكشف عن اللغة.", "ar"},
		{"hindi", "यह हिंदी भाषा में एक परीक्षण पाठ है।", "hi"},
		{"empty", "", "en"},
		{"mixed_mostly_english_with_a_name", "Hello Kim Minsu, welcome to our service platform today.", "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectLanguage(tc.text))
		})
	}
}

func TestDetectProfile(t *testing.T) {
	r := NewRegistry()
	p := r.DetectProfile("これは日本語のテスト文章です。")
	assert.Equal(t, "ja", p.Code())
}

func TestRegistry_Register_Override(t *testing.T) {
	r := NewRegistry()
	r.Register(newEnglishProfile())
	assert.Equal(t, "en", r.Get("en").Code())
}
