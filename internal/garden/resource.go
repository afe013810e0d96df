package garden

import "strconv"

// Resource is one of the three growth currencies.
type Resource string

const (
	Water   Resource = "water"
	Light   Resource = "light"
	Compost Resource = "compost"
)

// Resources lists every resource in display order.
var Resources = [3]Resource{Water, Light, Compost}

// Cost is a sparse resource requirement. A missing key costs nothing.
type Cost map[Resource]int

// Pool holds a player's resources.
type Pool map[Resource]int

// Covers reports whether the pool has at least every amount in c.
func (p Pool) Covers(c Cost) bool {
	for r, n := range c {
		if p[r] < n {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the pool.
func (p Pool) Clone() Pool {
	out := make(Pool, len(Resources))
	for _, r := range Resources {
		out[r] = p[r]
	}
	return out
}

func newPool() Pool {
	return Pool{Water: 0, Light: 0, Compost: 0}
}

// formatCost renders a cost as "2 water, 1 light" in resource order.
func formatCost(c Cost) string {
	out := ""
	for _, r := range Resources {
		n := c[r]
		if n == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += strconv.Itoa(n) + " " + string(r)
	}
	if out == "" {
		return "nothing"
	}
	return out
}

// String implements fmt.Stringer.
func (c Cost) String() string { return formatCost(c) }
