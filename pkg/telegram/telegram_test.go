package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, "", EscapeMarkdownV2(""))
	assert.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
	assert.Equal(t, `2200 kcal \(36%\)`, EscapeMarkdownV2("2200 kcal (36%)"))
	assert.Equal(t, `\#1 \- a\.b\_c\*d`, EscapeMarkdownV2("#1 - a.b_c*d"))
	assert.Equal(t, `\\already`, EscapeMarkdownV2(`\already`))
}

func TestChunkMessageShortText(t *testing.T) {
	chunks := ChunkMessage("hello\nworld", 100)
	assert.Equal(t, []string{"hello\nworld"}, chunks)
}

func TestChunkMessageEmpty(t *testing.T) {
	assert.Nil(t, ChunkMessage("", 100))
}

func TestChunkMessageSplitsOnLineBoundaries(t *testing.T) {
	text := strings.Repeat("aaaa\n", 10)
	chunks := ChunkMessage(text, 12)

	assert.True(t, len(chunks) > 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 12)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
	// 除最后一片外都在行边界收尾
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(chunk, "\n"))
	}
}

func TestChunkMessageHardSplitsLongLine(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := ChunkMessage(text, 10)

	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, chunks)
}

func TestChunkMessageHardSplitKeepsRunesIntact(t *testing.T) {
	// 每个汉字 3 字节，maxLen 不是 3 的倍数会迫使切点回退
	text := strings.Repeat("蛋白质", 10)
	chunks := ChunkMessage(text, 10)

	assert.True(t, len(chunks) > 1)
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
		assert.LessOrEqual(t, len(chunk), 10)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestChunkMessageHardSplitKeepsEscapePairsIntact(t *testing.T) {
	text := strings.Repeat(EscapeMarkdownV2("kcal (36%) "), 5)
	chunks := ChunkMessage(text, 9)

	assert.Equal(t, text, strings.Join(chunks, ""))
	// 反斜杠转义对不会被拆到两个片段里
	for _, chunk := range chunks {
		trailing := 0
		for i := len(chunk) - 1; i >= 0 && chunk[i] == '\\'; i-- {
			trailing++
		}
		assert.Equal(t, 0, trailing%2)
	}
}
