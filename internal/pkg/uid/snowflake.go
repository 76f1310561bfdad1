package uid

import (
	"crypto/rand"
	"math/big"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 IDs using Twitter's snowflake layout.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator with a random node number.
//
// A random node keeps multiple instances from colliding without requiring
// coordinated node assignment; the collision probability across a small
// fleet is acceptable for event IDs.
func NewSnowflake() (*Snowflake, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(1)<<snowflake.NodeBits))
	if err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(n.Int64())
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
