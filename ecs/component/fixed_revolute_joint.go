package component

import "github.com/milk9111/jointlab/joint"

// FixedRevoluteJointComponent pins the entity's rigid body to a world point.
var FixedRevoluteJointComponent = NewComponent[*joint.FixedRevolute]("fixed_revolute_joint")
