package leapcontroller

// Diagnostics is a snapshot of the controller's lifetime activity,
// grounded on the original sampler's leap_diagnostic.h dump — here
// surfaced as a plain struct instead of a file dump, for the stats/CLI
// layer to render.
type Diagnostics struct {
	ActiveLeapNodes    int
	PermanentLeapNodes int
	Engagements        int
	Promotions         int
	EntropyThreshold   float32
}

// Report returns the controller's current diagnostics snapshot.
func (c *Controller) Report() Diagnostics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d := Diagnostics{
		Engagements:      c.engagements,
		Promotions:       c.promotions,
		EntropyThreshold: c.cfg.LeapEntropyThreshold,
	}
	for _, st := range c.states {
		if st.permanent {
			d.PermanentLeapNodes++
		} else {
			d.ActiveLeapNodes++
		}
	}
	return d
}
