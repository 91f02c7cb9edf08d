package engine

import (
	"github.com/yooho-ai/trainee-engine/pkg/catalog"
)

// Ending rule thresholds over the final resource/relationship snapshot.
const (
	mentalCrisisThreshold = 20
	skillFloor            = 40

	aceSkillThreshold     = 75
	aceFansThreshold      = 80
	aceMentalFloor        = 60
	aceAffectionThreshold = 80

	pureFriendshipFloor = 70
	pureSkillFloor      = 60

	soloSkillThreshold = 85
	soloFansCeiling    = 50

	debutFansThreshold   = 60
	debutSkillThreshold  = 55
	debutMentalThreshold = 50

	blackredFansThreshold = 70
	blackredMentalCeiling = 40
)

// resolveEndingLocked runs the exclusive, ordered ending rules: bad, true,
// happy, normal. The first satisfied rule wins; "near miss" is the default.
// Callers hold e.mu.
func (e *Engine) resolveEndingLocked() {
	s := e.session
	if s.EndingID != "" {
		return
	}

	r := s.Resources
	avgSkill := r.SkillAverage()

	if r.Mental <= mentalCrisisThreshold {
		e.setEndingLocked("be-quit")
		return
	}
	if avgSkill < skillFloor {
		e.setEndingLocked("be-eliminated")
		return
	}

	maxAffection := 0
	allTraineesClose := true
	traineeCount := 0
	for id, stats := range s.CharacterStats {
		c, ok := catalog.Characters[id]
		if !ok {
			continue
		}
		if c.IsLead {
			if a := stats["affection"]; a > maxAffection {
				maxAffection = a
			}
		} else {
			traineeCount++
			if stats["friendship"] < pureFriendshipFloor {
				allTraineesClose = false
			}
		}
	}

	if r.Vocal >= aceSkillThreshold && r.Dance >= aceSkillThreshold && r.Charm >= aceSkillThreshold &&
		r.Fans >= aceFansThreshold && r.Mental >= aceMentalFloor && maxAffection >= aceAffectionThreshold {
		e.setEndingLocked("te-ace")
		return
	}
	if traineeCount > 0 && allTraineesClose && avgSkill >= pureSkillFloor {
		e.setEndingLocked("te-pure")
		return
	}

	if (r.Vocal >= soloSkillThreshold || r.Dance >= soloSkillThreshold) && r.Fans < soloFansCeiling {
		e.setEndingLocked("he-solo")
		return
	}
	if r.Fans >= debutFansThreshold && avgSkill >= debutSkillThreshold && r.Mental >= debutMentalThreshold {
		e.setEndingLocked("he-debut")
		return
	}

	if r.Fans >= blackredFansThreshold && r.Mental < blackredMentalCeiling {
		e.setEndingLocked("ne-blackred")
		return
	}
	e.setEndingLocked("ne-close")
}

// setEndingLocked records a terminal ending. Callers hold e.mu.
func (e *Engine) setEndingLocked(id string) {
	if e.session.EndingID != "" {
		return
	}
	e.session.EndingID = id
	if ending, ok := catalog.EndingByID(id); ok {
		e.logger.Info("ending resolved", "ending", id, "kind", string(ending.Kind))
	}
}
