// Package prompts constructs the role-tagged message list sent to the
// generation service on every turn.
package prompts

import (
	"fmt"
	"strings"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// SummaryInstructions asks the model to compress older history into a
// rolling summary.
const SummaryInstructions = "将以下对话压缩为200字以内的摘要，保留关键剧情和数值变化："

// OutputFormatInstructions pins the inline protocol the parser consumes.
const OutputFormatInstructions = `## 输出格式
- 每段回复 200-400 字
- 角色对话：【角色名】"对话内容"
- 动作描写：（动作或旁白描述）
- 数值变化：【角色名 数值+N】或【数值-N】（全局属性如 Vocal/Dance/颜值/粉丝/心理）`

// FallbackNarration substitutes a canned line when the generation service
// returns empty content, so a turn never stalls.
func FallbackNarration(characterName string) string {
	if characterName != "" {
		return fmt.Sprintf("【%s】\"嗯...你刚才说什么？\"（%s看着你，似乎在等你再说一遍。）",
			characterName, characterName)
	}
	return "（练习室里传来节拍器的嗒嗒声，空气中弥漫着汗水的味道。你该做些什么呢？）"
}

// WelcomeMessage opens a new session.
func WelcomeMessage() string {
	return fmt.Sprintf("%s 欢迎来到《%s》！你是一名怀揣明星梦的少女，即将进入天星传媒开始练习生之旅。\n\n📍 当前：第1期 · 练习室\n🎯 目标：在12期内证明自己，争取出道位！",
		catalog.StoryInfo.Emoji, catalog.StoryInfo.Title)
}

// BuildScript renders the game script the narrator plays from: premise,
// chapters, character sheets, and scripted events, all from the catalog.
func BuildScript() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("《%s》：%s\n", catalog.StoryInfo.Title, catalog.StoryInfo.Description))

	sb.WriteString("\n### 章节\n")
	for _, ch := range catalog.Chapters {
		sb.WriteString(fmt.Sprintf("第%d章「%s」（第%d-%d期）：%s\n",
			ch.ID, ch.Name, ch.FirstDay, ch.LastDay, ch.Description))
	}

	sb.WriteString("\n### 角色\n")
	for _, id := range characterOrder {
		c := catalog.Characters[id]
		sb.WriteString(fmt.Sprintf("%s（%s，%d岁）：%s\n  性格：%s\n  说话风格：%s\n  行为模式：%s\n",
			c.Name, c.Title, c.Age, c.Description, c.Personality, c.SpeakingStyle, c.BehaviorPatterns))
	}

	sb.WriteString("\n### 关键事件\n")
	for _, e := range catalog.ForcedEvents {
		sb.WriteString(fmt.Sprintf("第%d期【%s】%s\n", e.TriggerDay, e.Name, e.Description))
	}

	return sb.String()
}

// characterOrder fixes the roster order in prompts; map iteration would
// make the system prompt nondeterministic between turns.
var characterOrder = []string{
	"guyanche", "shenzheyuan", "zhoumushen",
	"linshiyu", "zhaoxiaoman", "chenkeer", "suniannian",
}

// BuildStatsSnapshot formats the live resource and relationship table.
func BuildStatsSnapshot(s *state.Session) string {
	var sb strings.Builder

	sb.WriteString("玩家属性:\n")
	for _, m := range catalog.GlobalStatMetas {
		sb.WriteString(fmt.Sprintf("  %s %s: %d/100\n", m.Icon, m.Label, s.Resources.Get(m.Key)))
	}

	sb.WriteString("\n角色关系:\n")
	for _, id := range characterOrder {
		c, ok := catalog.Characters[id]
		if !ok {
			continue
		}
		stats, ok := s.CharacterStats[id]
		if !ok {
			continue
		}
		sb.WriteString(c.Name + ":\n")
		for _, m := range c.StatMetas {
			sb.WriteString(fmt.Sprintf("  %s %s: %d/100\n", m.Icon, m.Label, stats[m.Key]))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// BuildSystemPrompt assembles the full system message from the catalog
// and the live session snapshot.
func BuildSystemPrompt(s *state.Session) string {
	chapter := catalog.CurrentChapter(s.Day)
	period := catalog.Periods[s.PeriodIndex]

	sceneName := "练习室"
	if sc, ok := catalog.SceneByID(s.CurrentScene); ok {
		sceneName = sc.Name
	}

	var focused string
	if s.CurrentCharacter != "" {
		if c, ok := catalog.Characters[s.CurrentCharacter]; ok {
			focused = fmt.Sprintf("当前互动角色：%s\n", c.Name)
		}
	}

	return fmt.Sprintf(`你是《%s》的AI叙述者。

## 游戏剧本
%s

## 当前状态
玩家「%s」（女）
第%d期 · %s
第%d章「%s」
当前场景：%s
%s
## 当前数值
%s

%s`,
		catalog.StoryInfo.Title,
		BuildScript(),
		s.PlayerName,
		s.Day, period.Name,
		chapter.ID, chapter.Name,
		sceneName,
		focused,
		BuildStatsSnapshot(s),
		OutputFormatInstructions)
}
