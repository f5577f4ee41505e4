// api/model/neo4j/nodes.go
package intervene_neo4j

// Node Labels
const (
	// LabelStudent is a student mirrored into the assignment graph by id
	LabelStudent = "Student"

	// LabelUser is a staff account mirrored into the assignment graph by id
	LabelUser = "User"
)
