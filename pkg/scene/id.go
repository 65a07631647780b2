package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID is a content-addressed identifier for scene nodes: the hex SHA-256
// of the path the node was created under.
type NodeID string

// ZeroID is the empty NodeID.
const ZeroID NodeID = ""

// shortLen is the number of hex digits Short keeps.
const shortLen = 8

// NewNodeID derives a NodeID from a creation path such as "part/shelf".
func NewNodeID(path string) NodeID {
	sum := sha256.Sum256([]byte(path))
	return NodeID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// Short returns an abbreviated form for messages.
func (id NodeID) Short() string {
	if len(id) <= shortLen {
		return string(id)
	}
	return string(id[:shortLen])
}

func (id NodeID) String() string {
	return string(id)
}
