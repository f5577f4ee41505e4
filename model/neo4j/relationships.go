// api/model/neo4j/relationships.go
package intervene_neo4j

// Relationship Types
const (
	// RelAssignedTo links a staff user to a student they follow up
	RelAssignedTo = "ASSIGNED_TO"
)
