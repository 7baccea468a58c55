package component

// JointDriver runs a script every frame that steers the entity's joint.
type JointDriver struct {
	ScriptPath string
	Disabled   bool
}

var JointDriverComponent = NewComponent[*JointDriver]("joint_driver")
