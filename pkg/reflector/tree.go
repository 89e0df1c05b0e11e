package reflector

import "strconv"

// treeNode is the JSON shape of one scene tree node. IDs are serialized as
// strings so 64-bit values survive JavaScript number precision; unnamed
// nodes serialize name as null.
type treeNode struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Name     *string     `json:"name"`
	Children []*treeNode `json:"children"`
}

type scenePayload struct {
	Entities []*treeNode `json:"entities"`
}

type entityPayload struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Name       *string    `json:"name"`
	Properties []Property `json:"properties"`
}

func optionalName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

// buildSceneTree reconstructs the nested entity tree from a flat node list.
// Nodes with ParentID 0 become roots; children keep the input order. Nodes
// referencing a missing parent are dropped, matching the UI's expectation
// that orphans are not rendered.
func buildSceneTree(flat []SceneNode) scenePayload {
	nodes := make(map[uint64]*treeNode, len(flat))
	for _, n := range flat {
		nodes[n.ID] = &treeNode{
			ID:       strconv.FormatUint(n.ID, 10),
			Type:     n.Type,
			Name:     optionalName(n.Name),
			Children: []*treeNode{},
		}
	}

	roots := make([]*treeNode, 0, len(flat))
	for _, n := range flat {
		node := nodes[n.ID]
		if n.ParentID == 0 {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[n.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	return scenePayload{Entities: roots}
}

func encodeEntity(e EntityInfo) entityPayload {
	props := e.Properties
	if props == nil {
		props = []Property{}
	}
	return entityPayload{
		ID:         strconv.FormatUint(e.ID, 10),
		Type:       e.Type,
		Name:       optionalName(e.Name),
		Properties: props,
	}
}
