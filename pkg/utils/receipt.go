package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// ReceiptNumberGenerator hands out receipt numbers of the form
// PREFIX-YYYYMMDD-XXXXXXXXXXXX. The trailing part is a base36 snowflake id,
// unique per node and monotonic within it.
type ReceiptNumberGenerator struct {
	prefix string
	node   *snowflake.Node
}

// NewReceiptNumberGenerator creates a generator for the given snowflake node.
func NewReceiptNumberGenerator(prefix string, nodeID int64) (*ReceiptNumberGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("receipt number node: %w", err)
	}
	if prefix == "" {
		prefix = "TRX"
	}
	return &ReceiptNumberGenerator{prefix: prefix, node: node}, nil
}

// Next returns a new receipt number stamped with the given business day.
func (g *ReceiptNumberGenerator) Next(day time.Time) string {
	return g.prefix + "-" + day.Format("20060102") + "-" + strings.ToUpper(g.node.Generate().Base36())
}
