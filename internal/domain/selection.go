package domain

// DefaultExcludedTools are tools that start unselected on cold start even
// though they are not shared. Currently the long-running research tool only.
var DefaultExcludedTools = []string{"deep_research"}

// DefaultRichUITool and DefaultFinalResponseAliases form the mutually
// exclusive pair: enabling the rich-UI tool disables every final-response
// alias and vice versa.
var (
	DefaultRichUITool           = "a2ui"
	DefaultFinalResponseAliases = []string{"final_response"}
)

// SelectionPolicy parameterizes reconciliation and toggling.
type SelectionPolicy struct {
	ExcludedTools        []string
	RichUITool           string
	FinalResponseAliases []string
}

func DefaultSelectionPolicy() SelectionPolicy {
	return SelectionPolicy{
		ExcludedTools:        append([]string(nil), DefaultExcludedTools...),
		RichUITool:           DefaultRichUITool,
		FinalResponseAliases: append([]string(nil), DefaultFinalResponseAliases...),
	}
}

func (p SelectionPolicy) excludedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.ExcludedTools))
	for _, name := range p.ExcludedTools {
		set[name] = struct{}{}
	}
	return set
}

func (p SelectionPolicy) isFinalAlias(name string) bool {
	for _, alias := range p.FinalResponseAliases {
		if alias == name {
			return true
		}
	}
	return false
}

// SelectionState is the per-session selection snapshot. Known carries the
// combined name set of the previous reconcile so mid-session inventory
// additions can be told apart from tools the user opted out of.
type SelectionState struct {
	Inventory Inventory
	Selected  *NameSet
	Known     *NameSet
	Loaded    bool
}

func NewSelectionState() SelectionState {
	return SelectionState{
		Inventory: NewInventory(),
		Selected:  NewNameSet(),
		Known:     NewNameSet(),
	}
}

// CachedSelection is the persisted per-user shape. Known records every tool
// name the user had been shown as of the last save.
type CachedSelection struct {
	Selected []string `json:"selected"`
	Known    []string `json:"known"`
}

// Usable reports whether the cache should drive first-load restoration. An
// empty selected list reads as "no usable cache" and falls back to the
// cold-start default.
func (c *CachedSelection) Usable() bool {
	return c != nil && len(c.Selected) > 0
}

// Snapshot captures the state as a persistable cache entry.
func (s SelectionState) Snapshot() CachedSelection {
	return CachedSelection{
		Selected: s.Selected.Names(),
		Known:    s.Known.Names(),
	}
}

// ReconcileSelection merges a freshly fetched inventory into prev.
//
// First load (prev.Loaded false): a usable cache keeps every cached-selected
// name that still exists and additionally admits every name the cache never
// saw, except shared and excluded ones. Without a usable cache everything is
// selected except shared and excluded tools. Subsequent loads keep surviving
// selections and admit only names absent from the previous reconcile's
// combined set, so an explicit unselect is never overridden. Stale names
// drop silently in both cases.
func ReconcileSelection(prev SelectionState, cached *CachedSelection, inv Inventory, policy SelectionPolicy) SelectionState {
	allNames := inv.AllNames()
	allSet := NewNameSet(allNames...)
	shared := inv.SharedNames()
	excluded := policy.excludedSet()

	admissible := func(name string) bool {
		if _, ok := shared[name]; ok {
			return false
		}
		if _, ok := excluded[name]; ok {
			return false
		}
		return true
	}

	selected := NewNameSet()
	switch {
	case prev.Loaded:
		for _, name := range prev.Selected.Names() {
			if allSet.Has(name) {
				selected.Add(name)
			}
		}
		for _, name := range allNames {
			if !prev.Known.Has(name) && admissible(name) {
				selected.Add(name)
			}
		}
	case cached.Usable():
		known := NewNameSet(cached.Known...)
		for _, name := range cached.Selected {
			if allSet.Has(name) {
				selected.Add(name)
			}
		}
		for _, name := range allNames {
			if !known.Has(name) && admissible(name) {
				selected.Add(name)
			}
		}
	default:
		for _, name := range allNames {
			if admissible(name) {
				selected.Add(name)
			}
		}
	}

	return SelectionState{
		Inventory: inv,
		Selected:  selected,
		Known:     allSet,
		Loaded:    true,
	}
}

// ApplyToggle adds or removes one name. When the rich-UI tool and the
// final-response alias group cross, the other side is deselected and the
// caller must re-render the whole panel, not just the toggled checkbox.
func ApplyToggle(state *SelectionState, name string, checked bool, policy SelectionPolicy) (fullRerender bool) {
	if !checked {
		state.Selected.Remove(name)
		return false
	}
	switch {
	case name == policy.RichUITool:
		for _, alias := range policy.FinalResponseAliases {
			if state.Selected.Remove(alias) {
				fullRerender = true
			}
		}
	case policy.isFinalAlias(name):
		if state.Selected.Remove(policy.RichUITool) {
			fullRerender = true
		}
	}
	state.Selected.Add(name)
	return fullRerender
}
