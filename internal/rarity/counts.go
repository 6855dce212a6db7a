package rarity

// Counts maps layer name -> variant id -> number of times the variant was drawn.
// Every draw is counted, including draws whose combination was later rejected
// as a duplicate.
type Counts map[string]map[string]int

// Get returns the draw count of variant in layer.
func (c Counts) Get(layer, variant string) int {
	return c[layer][variant]
}

// Total returns the number of draws attempted for layer.
func (c Counts) Total(layer string) int {
	n := 0
	for _, v := range c[layer] {
		n += v
	}
	return n
}

func (c Counts) add(layer, variant string) {
	inner, ok := c[layer]
	if !ok {
		inner = make(map[string]int)
		c[layer] = inner
	}
	inner[variant]++
}

func (c Counts) clone() Counts {
	out := make(Counts, len(c))
	for layer, variants := range c {
		inner := make(map[string]int, len(variants))
		for v, n := range variants {
			inner[v] = n
		}
		out[layer] = inner
	}
	return out
}
