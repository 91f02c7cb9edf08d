package engine

import (
	"fmt"
	"sort"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
	"github.com/yooho-ai/trainee-engine/pkg/chat"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// mentalDecayPerDay is the fixed mental drain applied at every day rollover.
const mentalDecayPerDay = 3

// advanceTimeLocked consumes one action point and moves to the next
// period, handling day rollover, chapter transitions, scene unlocks,
// forced events, and ending checks. Callers hold e.mu.
func (e *Engine) advanceTimeLocked() {
	s := e.session
	if s.EndingID != "" {
		return // ending state is terminal until reset
	}

	s.ActionPoints--
	if s.ActionPoints < 0 {
		s.ActionPoints = 0
	}
	s.PeriodIndex++

	dayChanged := false
	if s.PeriodIndex >= len(catalog.Periods) {
		s.PeriodIndex = 0
		s.Day++
		s.ActionPoints = catalog.MaxActionPoints
		dayChanged = true

		s.Resources.Apply("mental", -mentalDecayPerDay)

		if ch := catalog.CurrentChapter(s.Day); ch.ID != s.CurrentChapter {
			s.CurrentChapter = ch.ID
			e.appendSystem(fmt.Sprintf("📖 进入第%d章「%s」：%s", ch.ID, ch.Name, ch.Description))
		}

		e.unlockScenesLocked()
	}

	if dayChanged {
		ch := catalog.CurrentChapter(s.Day)
		msg := state.NewMessage(chat.ChatRoleSystem, "")
		msg.Type = state.MessageDayChange
		msg.DayInfo = &state.DayChangeInfo{Day: s.Day, Chapter: ch.Name}
		s.Messages = append(s.Messages, msg)
	} else {
		e.appendSystem(fmt.Sprintf("⏰ 第%d期 · %s", s.Day, catalog.Periods[s.PeriodIndex].Name))
	}

	for _, ev := range catalog.DueEvents(s.Day, s.TriggeredEvents) {
		if ev.TriggerPeriod != nil && *ev.TriggerPeriod != s.PeriodIndex {
			continue
		}
		s.TriggeredEvents = append(s.TriggeredEvents, ev.ID)
		e.appendSystem(fmt.Sprintf("🎬 【%s】%s", ev.Name, ev.Description))
	}

	// Mental crisis with nothing to fall back on ends the run early.
	if s.Resources.Mental <= mentalCrisisThreshold && s.Resources.SkillAverage() < skillFloor {
		e.setEndingLocked("be-quit")
		return
	}

	if s.Day >= catalog.MaxDays && s.PeriodIndex == len(catalog.Periods)-1 {
		e.resolveEndingLocked()
	}
}

// unlockScenesLocked opens every day-gated scene whose threshold has been
// reached, each exactly once.
func (e *Engine) unlockScenesLocked() {
	s := e.session

	ids := make([]string, 0, len(catalog.Scenes))
	for id := range catalog.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		sc := catalog.Scenes[id]
		if sc.UnlockDay == 0 || s.Day < sc.UnlockDay || s.SceneUnlocked(id) {
			continue
		}
		s.UnlockedScenes = append(s.UnlockedScenes, id)
		e.appendSystem(fmt.Sprintf("🔓 新场景解锁：%s %s", sc.Icon, sc.Name))
	}
}
