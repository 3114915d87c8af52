package metrics

import "github.com/san-kum/ballpit/internal/dynamo"

// Contacts is the mean number of resolved pairwise contacts per step.
type Contacts struct {
	name    string
	sum     int
	samples int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string {
	return c.name
}

func (c *Contacts) Observe(f dynamo.Frame) {
	c.sum += f.Contacts
	c.samples++
}

func (c *Contacts) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *Contacts) Reset() {
	c.sum = 0
	c.samples = 0
}

// WallHits is the mean number of wall reflections per step.
type WallHits struct {
	name    string
	sum     int
	samples int
}

func NewWallHits() *WallHits {
	return &WallHits{name: "wall_hits"}
}

func (w *WallHits) Name() string {
	return w.name
}

func (w *WallHits) Observe(f dynamo.Frame) {
	w.sum += f.WallHits
	w.samples++
}

func (w *WallHits) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return float64(w.sum) / float64(w.samples)
}

func (w *WallHits) Reset() {
	w.sum = 0
	w.samples = 0
}
