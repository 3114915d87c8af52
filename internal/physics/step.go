package physics

import "github.com/san-kum/ballpit/internal/dynamo"

// Stats counts what happened during one step.
type Stats struct {
	WallHits int
	Contacts int
}

// Step advances every body by one tick: integrate, reflect off the walls,
// resolve pairwise collisions in a single pass, then clamp anything the
// collision pass pushed out of the viewport. Radius and visual id are
// never touched.
func Step(bodies []dynamo.Body, vp dynamo.Viewport) Stats {
	var st Stats

	for i := range bodies {
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel)
	}

	for i := range bodies {
		hx, hy := Reflect(&bodies[i], vp)
		if hx {
			st.WallHits++
		}
		if hy {
			st.WallHits++
		}
	}

	st.Contacts = ResolveAll(bodies)

	for i := range bodies {
		Contain(&bodies[i], vp)
	}

	return st
}
