package events

import "time"

// BomReplacedV1 is published after a parent part's component list has been
// atomically replaced by an import commit.
type BomReplacedV1 struct {
	ParentPartID uint
	ItemCount    int
	ReplacedAt   time.Time
}

// BomValidatedV1 is published when a user marks a parent's BOM as checked.
type BomValidatedV1 struct {
	ParentPartID uint
	ValidatedAt  time.Time
}
