package models

import "time"

type Part struct {
	ID           uint
	IPN          string
	Name         string
	Description  string
	Units        string
	Trackable    bool
	Assembly     bool
	Component    bool
	Active       bool
	BomValidated bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BomItem struct {
	ID           uint
	ParentPartID uint
	SubPartID    uint
	Quantity     string // numeric scanned as text, parsed by the mapper
	Overage      string
	Reference    string
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
