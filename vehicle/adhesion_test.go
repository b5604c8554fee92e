package vehicle

import "testing"

// hysteresis band for these tests: attach above 350, detach below 250.
var adhesionParams = Params{VelocityThreshold: 300, Hysteresis: 50}

func TestAdhesionNoChatterInsideBand(t *testing.T) {
	// While contact holds, speeds oscillating strictly inside the dead band
	// must never flip the state, regardless of sample count.
	oscillation := []float64{260, 340, 251, 349, 300, 299, 301, 340, 260}

	for _, start := range []bool{true, false} {
		adhered := start
		for i, speed := range oscillation {
			adhered = updateAdhesion(adhered, speed, true, adhesionParams)
			if adhered != start {
				t.Fatalf("state flipped from %v at sample %d (speed %v)", start, i, speed)
			}
		}
	}
}

func TestContactLossOverridesHysteresis(t *testing.T) {
	// Contact loss clears adhesion the same tick, even far above the band.
	if updateAdhesion(true, 1000, false, adhesionParams) {
		t.Error("losing contact must detach immediately")
	}
}

func TestAdhesionNeverInventedWithoutContact(t *testing.T) {
	if updateAdhesion(false, 1000, false, adhesionParams) {
		t.Error("adhesion must not engage while ungrounded")
	}
}

func TestAdhesionBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		adhered bool
		speed   float64
		want    bool
	}{
		{"attach above band", false, 351, true},
		{"no attach at band edge", false, 350, false},
		{"no attach inside band", false, 349, false},
		{"detach below band", true, 249, false},
		{"no detach at band edge", true, 250, true},
		{"no detach inside band", true, 251, true},
		{"zero speed stays free", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := updateAdhesion(tt.adhered, tt.speed, true, adhesionParams)
			if got != tt.want {
				t.Errorf("updateAdhesion(%v, %v, contact) = %v, want %v",
					tt.adhered, tt.speed, got, tt.want)
			}
		})
	}
}

func TestAdhesionRampScenario(t *testing.T) {
	// Speed ramps 0 -> 400 -> 200 with contact throughout. Expect exactly one
	// attach (crossing 350) and one detach (dropping below 250), with no
	// intermediate toggling.
	var speeds []float64
	for s := 0.0; s <= 400; s += 10 {
		speeds = append(speeds, s)
	}
	for s := 390.0; s >= 200; s -= 10 {
		speeds = append(speeds, s)
	}

	adhered := false
	transitions := 0
	for i, speed := range speeds {
		next := updateAdhesion(adhered, speed, true, adhesionParams)
		if next != adhered {
			transitions++
			if next && speed <= 350 {
				t.Errorf("attached at speed %v (sample %d), band top is 350", speed, i)
			}
			if !next && speed >= 250 {
				t.Errorf("detached at speed %v (sample %d), band bottom is 250", speed, i)
			}
		}
		adhered = next
	}

	if adhered {
		t.Error("expected final state free after ramping down to 200")
	}
	if transitions != 2 {
		t.Errorf("expected exactly 2 transitions (attach, detach), got %d", transitions)
	}
}
