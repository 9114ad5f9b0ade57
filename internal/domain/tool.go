package domain

// ToolKind labels one inventory category.
type ToolKind string

const (
	ToolKindBuiltin   ToolKind = "builtin"
	ToolKindMCP       ToolKind = "mcp"
	ToolKindA2A       ToolKind = "a2a"
	ToolKindSkill     ToolKind = "skill"
	ToolKindKnowledge ToolKind = "knowledge"
	ToolKindUser      ToolKind = "user"
	ToolKindShared    ToolKind = "shared"
)

// ToolKinds lists the categories in display order. Reconciliation walks
// categories in this order, so a name appearing in two categories keeps its
// first occurrence for ordering purposes.
var ToolKinds = []ToolKind{
	ToolKindBuiltin,
	ToolKindMCP,
	ToolKindA2A,
	ToolKindSkill,
	ToolKindKnowledge,
	ToolKindUser,
	ToolKindShared,
}

// ToolDescriptor is an immutable snapshot entry from the inventory service.
// Name is the unique key across the whole inventory.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// Inventory holds the categorized tool lists the admin API returned for one
// user, in server-returned order.
type Inventory struct {
	Categories  map[ToolKind][]ToolDescriptor
	ExtraPrompt string
}

func NewInventory() Inventory {
	return Inventory{Categories: make(map[ToolKind][]ToolDescriptor, len(ToolKinds))}
}

// Tools returns one category list. Missing categories read as empty.
func (inv Inventory) Tools(kind ToolKind) []ToolDescriptor {
	return inv.Categories[kind]
}

// AllNames concatenates every category's names in display order. Duplicates
// are preserved; callers needing set semantics build one from the result.
func (inv Inventory) AllNames() []string {
	var names []string
	for _, kind := range ToolKinds {
		for _, tool := range inv.Categories[kind] {
			names = append(names, tool.Name)
		}
	}
	return names
}

// SharedNames returns the name set of the shared category. Shared tools are
// owned by other users and default to unselected.
func (inv Inventory) SharedNames() map[string]struct{} {
	shared := inv.Categories[ToolKindShared]
	names := make(map[string]struct{}, len(shared))
	for _, tool := range shared {
		names[tool.Name] = struct{}{}
	}
	return names
}

// Lookup finds a descriptor by name, walking categories in display order.
func (inv Inventory) Lookup(name string) (ToolDescriptor, ToolKind, bool) {
	for _, kind := range ToolKinds {
		for _, tool := range inv.Categories[kind] {
			if tool.Name == name {
				return tool, kind, true
			}
		}
	}
	return ToolDescriptor{}, "", false
}
