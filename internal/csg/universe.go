package csg

import "github.com/piwi3910/PrismCut/internal/material"

// Cell pairs a region with the material filling it. A nil region means the
// cell fills all space, as in an infinite medium.
type Cell struct {
	Name     string
	Material material.Material
	Region   Region
}

// Universe is an ordered collection of cells covering the plane. Cells are
// checked in order; the first containing cell wins, so overlapping regions
// resolve deterministically.
type Universe struct {
	Name  string
	Cells []Cell
}

// FindCell returns the first cell containing the point, or nil.
func (u *Universe) FindCell(x, y float64) *Cell {
	for i := range u.Cells {
		if u.Cells[i].Region == nil || u.Cells[i].Region.Contains(x, y) {
			return &u.Cells[i]
		}
	}
	return nil
}

// MaterialAt returns the name of the material at the point, or the empty
// string if no cell contains it.
func (u *Universe) MaterialAt(x, y float64) string {
	if cell := u.FindCell(x, y); cell != nil {
		return cell.Material.Name
	}
	return ""
}
