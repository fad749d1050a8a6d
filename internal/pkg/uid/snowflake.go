package uid

import (
	"crypto/sha256"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-sortable int64 identifiers.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake builds a generator whose node number is derived from a stable
// machine identity, so two replicas on different hosts do not collide.
func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeNumber())
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake id.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() int64 {
	src := machineIdentity()
	if src == "" {
		return int64(os.Getpid()) % 1024
	}

	sum := sha256.Sum256([]byte(src))
	return int64(sum[0])<<2 | int64(sum[1])&0b11 // 0..1023
}

func machineIdentity() string {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s
		}
	}

	if h, err := os.Hostname(); err == nil {
		return strings.TrimSpace(h)
	}

	return ""
}
