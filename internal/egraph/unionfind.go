package egraph

// ClassID addresses an equivalence class in the arena. IDs are stable and
// never reused; after a union only the root ID is canonical.
type ClassID uint32

type unionFind struct {
	parents []ClassID
}

func (u *unionFind) makeSet() ClassID {
	id := ClassID(len(u.parents))
	u.parents = append(u.parents, id)
	return id
}

func (u *unionFind) size() int {
	return len(u.parents)
}

// find returns the root of id, halving the path as it goes
func (u *unionFind) find(id ClassID) ClassID {
	for u.parents[id] != id {
		u.parents[id] = u.parents[u.parents[id]]
		id = u.parents[id]
	}
	return id
}

// union makes root the parent of other. Both must already be roots.
func (u *unionFind) union(root, other ClassID) ClassID {
	u.parents[other] = root
	return root
}
