package engine

import (
	"fmt"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
)

// itemEffect is the fixed resource-mutation rule for one item id.
type itemEffect struct {
	resource string
	amount   int
}

// itemEffects maps item ids to their rules. Collectibles like the lucky
// charm have no entry and no direct effect.
var itemEffects = map[string][]itemEffect{
	"energy-drink": {{resource: "mental", amount: 15}},
	"vocal-notes":  {{resource: "vocal", amount: 10}},
	"dance-video":  {{resource: "dance", amount: 8}},
	"skincare-set": {{resource: "charm", amount: 8}},
	"fan-letter":   {{resource: "mental", amount: 10}, {resource: "fans", amount: 3}},
}

// UseItem applies an item's fixed effect and decrements consumable stock.
// Unknown ids and depleted items are a silent no-op.
func (e *Engine) UseItem(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, ok := catalog.ItemByID(id)
	if !ok || e.session.Inventory[id] <= 0 {
		return
	}

	if item.Kind == catalog.ItemConsumable {
		e.session.Inventory[id]--
	}

	for _, eff := range itemEffects[id] {
		e.session.Resources.Apply(eff.resource, eff.amount)
	}

	e.appendSystem(fmt.Sprintf("🎁 使用了「%s %s」！", item.Icon, item.Name))
}
