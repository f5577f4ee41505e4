// api/model/neo4j/attributes.go
package intervene_neo4j

// Attribute Keys
const (
	AttrID         = "id"
	AttrAssignedBy = "assignedBy"
	AttrAssignedAt = "assignedAt"
)
