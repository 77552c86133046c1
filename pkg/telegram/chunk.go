package telegram

import (
	"strings"
	"unicode/utf8"
)

// Telegram 单条消息长度上限之下留出余量
const DefaultChunkLen = 4000

// ChunkMessage 把长文本按行边界切成不超过 maxLen 的片段
// 单行超长时硬切，切点不落在多字节 rune 中间，也不把反斜杠转义对拆开。
// 每个片段对应一次独立的发送
func ChunkMessage(text string, maxLen int) []string {
	if text == "" {
		return nil
	}
	if maxLen <= 0 {
		maxLen = DefaultChunkLen
	}

	lines := strings.SplitAfter(text, "\n")
	var chunks []string
	var current strings.Builder

	for _, line := range lines {
		if current.Len()+len(line) > maxLen {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}

			for len(line) > maxLen {
				cut := hardCutPoint(line, maxLen)
				chunks = append(chunks, line[:cut])
				line = line[cut:]
			}
		}
		current.WriteString(line)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// hardCutPoint 在 maxLen 以内找一个安全的字节切点：
// 先退到 rune 起始字节，再保证切点前不是奇数个连续反斜杠
func hardCutPoint(line string, maxLen int) int {
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}

	backslashes := 0
	for i := cut - 1; i >= 0 && line[i] == '\\'; i-- {
		backslashes++
	}
	if backslashes%2 == 1 {
		cut--
	}

	if cut <= 0 {
		cut = maxLen
	}
	return cut
}
