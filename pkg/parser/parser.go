// Package parser extracts the inline stat-change protocol from generated
// narrative text and classifies each line for rendering. Parsing is pure:
// the same utterance always yields the same fragments and deltas.
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
)

// DefaultColor is used for speakers and stat labels with no catalog entry.
const DefaultColor = "#ff4d8d"

// FragmentKind classifies a rendered line.
type FragmentKind string

const (
	FragmentStatChange     FragmentKind = "stat-change"
	FragmentDialogue       FragmentKind = "dialogue"
	FragmentStageDirection FragmentKind = "stage-direction"
	FragmentNarration      FragmentKind = "narration"
)

// Fragment is one classified line of a narrative utterance. Text is the
// raw trimmed line; HTML is the escaped, color-tagged render of it.
type Fragment struct {
	Kind      FragmentKind `json:"kind"`
	Speaker   string       `json:"speaker,omitempty"`
	SpeakerID string       `json:"speaker_id,omitempty"`
	Color     string       `json:"color,omitempty"`
	Text      string       `json:"text"`
	HTML      string       `json:"html"`
}

// DeltaTarget distinguishes character-stat deltas from global-resource deltas.
type DeltaTarget string

const (
	TargetCharacter DeltaTarget = "character"
	TargetGlobal    DeltaTarget = "global"
)

// Delta is one resolved numeric stat-change instruction.
type Delta struct {
	Target      DeltaTarget `json:"target"`
	CharacterID string      `json:"character_id,omitempty"`
	StatKey     string      `json:"stat_key,omitempty"`
	Resource    string      `json:"resource,omitempty"`
	Amount      int         `json:"amount"`
}

// Result holds the two independent views of one parsed utterance.
type Result struct {
	Fragments []Fragment `json:"fragments"`
	Deltas    []Delta    `json:"deltas"`
}

// globalAliases maps every accepted spelling of a global resource to its key.
var globalAliases = map[string]string{
	"Vocal": "vocal", "vocal": "vocal", "唱功": "vocal",
	"Dance": "dance", "dance": "dance", "舞蹈": "dance",
	"颜值": "charm", "气质": "charm", "颜值气质": "charm",
	"粉丝": "fans", "粉丝影响力": "fans", "人气": "fans",
	"心理": "mental", "心理承受力": "mental", "精神": "mental",
}

var (
	statLineRe    = regexp.MustCompile(`^[【\[][^】\]]*[+-]\d+[^】\]]*[】\]]`)
	bracketRe     = regexp.MustCompile(`[【\[][^】\]]*[】\]]`)
	charDeltaRe   = regexp.MustCompile(`[【\[]([^】\]]+?)\s+(\S+?)([+-])(\d+)[】\]]`)
	globalDeltaRe = regexp.MustCompile(`[【\[](\S+?)([+-])(\d+)[】\]]`)
	dialogueRe    = regexp.MustCompile(`^[【\[]([^】\]]+)[】\]](.+)`)
	stageRe       = regexp.MustCompile(`^[（(]|^\*[^*]+\*`)
	statTokenRe   = regexp.MustCompile(`([^\s【】\[\]]+?)([+-]\d+)`)
)

type statCandidate struct {
	characterID string
	statKey     string
}

// Parser resolves bracketed tokens against the content catalog. The alias
// tables are built once at construction with deterministic first-match
// precedence.
type Parser struct {
	nameToID   map[string]string          // display name -> character id
	labelStats map[string][]statCandidate // stat label (with suffix variants) -> candidates
	statColors map[string]string          // stat label -> render color
	nameRe     *regexp.Regexp             // alternation of all known names, longest first
	nameColors map[string]string          // name or short name -> theme color
}

// New builds a parser from the character catalog.
func New() *Parser {
	p := &Parser{
		nameToID:   make(map[string]string),
		labelStats: make(map[string][]statCandidate),
		statColors: make(map[string]string),
		nameColors: make(map[string]string),
	}

	ids := make([]string, 0, len(catalog.Characters))
	for id := range catalog.Characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	names := make([]string, 0, len(ids)*2)
	for _, id := range ids {
		c := catalog.Characters[id]
		p.nameToID[c.Name] = id
		p.nameColors[c.Name] = c.ThemeColor
		names = append(names, c.Name)
		for _, meta := range c.StatMetas {
			for _, label := range []string{meta.Label, meta.Label + "度", meta.Label + "值"} {
				p.labelStats[label] = append(p.labelStats[label], statCandidate{
					characterID: id,
					statKey:     meta.Key,
				})
				if _, ok := p.statColors[label]; !ok {
					p.statColors[label] = meta.Color
				}
			}
		}
	}
	for short, id := range catalog.ShortNames {
		p.nameColors[short] = catalog.Characters[id].ThemeColor
		names = append(names, short)
	}
	for _, meta := range catalog.GlobalStatMetas {
		p.statColors[meta.Label] = meta.Color
	}
	for alias, key := range globalAliases {
		if _, ok := p.statColors[alias]; ok {
			continue
		}
		for _, meta := range catalog.GlobalStatMetas {
			if meta.Key == key {
				p.statColors[alias] = meta.Color
			}
		}
	}

	// Longest names first so 顾言澈 wins over 言澈.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	p.nameRe = regexp.MustCompile(strings.Join(quoted, "|"))

	return p
}

// Parse scans one completed utterance. Unresolvable brackets are ignored
// and their text is left verbatim in the narration output.
func (p *Parser) Parse(content string) Result {
	content = norm.NFC.String(content)

	res := Result{
		Fragments: make([]Fragment, 0),
		Deltas:    p.parseDeltas(content),
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		res.Fragments = append(res.Fragments, p.classifyLine(line))
	}
	return res
}

// parseDeltas extracts all resolvable stat-change instructions from the
// utterance: character-targeted brackets first, then global-resource
// brackets, each in order of appearance.
func (p *Parser) parseDeltas(content string) []Delta {
	deltas := make([]Delta, 0)

	for _, m := range charDeltaRe.FindAllStringSubmatch(content, -1) {
		subject, label, sign, num := m[1], m[2], m[3], m[4]
		id, ok := p.nameToID[subject]
		if !ok {
			continue
		}
		candidates := p.labelStats[label]
		if len(candidates) == 0 {
			continue
		}
		chosen := candidates[0]
		for _, c := range candidates {
			if c.characterID == id {
				chosen = c
				break
			}
		}
		deltas = append(deltas, Delta{
			Target:      TargetCharacter,
			CharacterID: chosen.characterID,
			StatKey:     chosen.statKey,
			Amount:      signedAmount(sign, num),
		})
	}

	for _, m := range globalDeltaRe.FindAllStringSubmatch(content, -1) {
		label, sign, num := m[1], m[2], m[3]
		key, ok := globalAliases[label]
		if !ok {
			continue
		}
		deltas = append(deltas, Delta{
			Target:   TargetGlobal,
			Resource: key,
			Amount:   signedAmount(sign, num),
		})
	}

	return deltas
}

func signedAmount(sign, num string) int {
	n, _ := strconv.Atoi(num)
	if sign == "-" {
		return -n
	}
	return n
}

// classifyLine applies the fixed precedence: stat-change-only line,
// speaker-tagged dialogue, stage direction, narration.
func (p *Parser) classifyLine(line string) Fragment {
	if p.isStatLine(line) {
		return Fragment{
			Kind: FragmentStatChange,
			Text: line,
			HTML: p.colorizeStats(line),
		}
	}

	if m := dialogueRe.FindStringSubmatch(line); m != nil {
		speaker, dialogue := m[1], m[2]
		color := DefaultColor
		if c, ok := p.nameColors[speaker]; ok {
			color = c
		}
		return Fragment{
			Kind:      FragmentDialogue,
			Speaker:   speaker,
			SpeakerID: p.nameToID[speaker],
			Color:     color,
			Text:      line,
			HTML: fmt.Sprintf(`<p class="dialogue-line"><span class="char-name" style="color:%s">【%s】</span>%s</p>`,
				color, escapeHTML(speaker), p.tagNames(dialogue)),
		}
	}

	if stageRe.MatchString(line) {
		return Fragment{
			Kind: FragmentStageDirection,
			Text: line,
			HTML: fmt.Sprintf(`<p class="action">%s</p>`, p.tagNames(line)),
		}
	}

	return Fragment{
		Kind: FragmentNarration,
		Text: line,
		HTML: fmt.Sprintf(`<p class="narration">%s</p>`, p.tagNames(line)),
	}
}

// isStatLine reports whether the whole line is bracketed delta tokens
// with no free text. A bracket that resolves to nothing is prose, not a
// stat line.
func (p *Parser) isStatLine(line string) bool {
	if !statLineRe.MatchString(line) {
		return false
	}
	if strings.TrimSpace(bracketRe.ReplaceAllString(line, "")) != "" {
		return false
	}
	return len(p.parseDeltas(line)) > 0
}

// colorizeStats renders a stat-change line, coloring each label+delta token.
func (p *Parser) colorizeStats(line string) string {
	escaped := escapeHTML(line)
	return statTokenRe.ReplaceAllStringFunc(escaped, func(tok string) string {
		m := statTokenRe.FindStringSubmatch(tok)
		label, delta := m[1], m[2]
		color, ok := p.statColors[label]
		if !ok {
			color = DefaultColor
		}
		cls := "stat-down"
		if strings.HasPrefix(delta, "+") {
			cls = "stat-up"
		}
		return fmt.Sprintf(`<span class="stat-change %s" style="color:%s">%s%s</span>`, cls, color, label, delta)
	})
}

// tagNames escapes free text and wraps recognized character names in
// colored spans without altering the surrounding content.
func (p *Parser) tagNames(text string) string {
	escaped := escapeHTML(text)
	return p.nameRe.ReplaceAllStringFunc(escaped, func(name string) string {
		return fmt.Sprintf(`<span class="char-name" style="color:%s;font-weight:600">%s</span>`,
			p.nameColors[name], name)
	})
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
