package component

// Prefab records which prefab file an entity was built from.
type Prefab struct {
	Name string
	Path string
}

var PrefabComponent = NewComponent[*Prefab]("prefab")
