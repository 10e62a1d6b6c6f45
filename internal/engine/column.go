package engine

import "sort"

// ColumnStats holds running aggregates maintained incrementally on every
// write, so column-level queries are O(1).
type ColumnStats struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
}

// Column stores one column's numeric cell values, sparsely indexed by
// 1-based row. Columns are created lazily by the Grid on first write.
type Column struct {
	cells map[int]float64
	stats ColumnStats
}

// NewColumn creates an empty column
func NewColumn() *Column {
	return &Column{cells: make(map[int]float64)}
}

// Set writes value at the given row, replacing any prior value there.
// Aggregates are updated in place; replacing a current extremum triggers
// a rescan of the column, every other write is O(1).
func (c *Column) Set(row int, value float64) {
	old, exists := c.cells[row]
	c.cells[row] = value

	if !exists {
		c.stats.Sum += value
		c.stats.Count++
		if c.stats.Count == 1 {
			c.stats.Min = value
			c.stats.Max = value
		} else {
			if value < c.stats.Min {
				c.stats.Min = value
			}
			if value > c.stats.Max {
				c.stats.Max = value
			}
		}
		return
	}

	c.stats.Sum += value - old
	if value < c.stats.Min {
		c.stats.Min = value
	}
	if value > c.stats.Max {
		c.stats.Max = value
	}
	if old == c.stats.Min || old == c.stats.Max {
		c.rescanExtremes()
	}
}

// Append writes value at the next free row position, ignoring any row the
// caller may have parsed. Used only by StorageSequentialAppend grids.
func (c *Column) Append(value float64) {
	c.Set(len(c.cells)+1, value)
}

// Get returns the value stored at the given row
func (c *Column) Get(row int) (float64, bool) {
	v, ok := c.cells[row]
	return v, ok
}

// Rows returns the occupied row indices in ascending order
func (c *Column) Rows() []int {
	rows := make([]int, 0, len(c.cells))
	for row := range c.cells {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// Stats returns the running aggregates
func (c *Column) Stats() ColumnStats {
	return c.stats
}

func (c *Column) Count() int {
	return c.stats.Count
}

func (c *Column) Sum() float64 {
	return c.stats.Sum
}

// Average returns the mean of the stored values, or 0 for an empty column
func (c *Column) Average() float64 {
	if c.stats.Count == 0 {
		return 0
	}
	return c.stats.Sum / float64(c.stats.Count)
}

// Min returns the smallest stored value; ok is false for an empty column
func (c *Column) Min() (float64, bool) {
	return c.stats.Min, c.stats.Count > 0
}

// Max returns the largest stored value; ok is false for an empty column
func (c *Column) Max() (float64, bool) {
	return c.stats.Max, c.stats.Count > 0
}

func (c *Column) rescanExtremes() {
	first := true
	for _, v := range c.cells {
		if first {
			c.stats.Min = v
			c.stats.Max = v
			first = false
			continue
		}
		if v < c.stats.Min {
			c.stats.Min = v
		}
		if v > c.stats.Max {
			c.stats.Max = v
		}
	}
}
