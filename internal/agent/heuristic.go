package agent

import "math"

const (
	// moveTolerance is how far off target the ship may sit before moving.
	moveTolerance = 20.0
	// alignFraction of the ship width is the firing window.
	alignFraction = 0.3
)

// Heuristic leads the asteroid whose predicted crossing point is closest to
// the ship: it steers under that point and fires once aligned.
type Heuristic struct{}

func (Heuristic) Decide(s State) Decision {
	center := s.ShipCenter()
	aim, ok := pickAim(s)
	if !ok {
		return Decision{Move: steer(center, s.FieldWidth*0.5)}
	}
	d := Decision{Move: steer(center, aim)}
	if math.Abs(center-aim) < s.ShipWidth*alignFraction && s.CanFire {
		d.Shoot = true
	}
	return d
}

// pickAim returns where a projectile fired now would meet the best target.
func pickAim(s State) (float64, bool) {
	center := s.ShipCenter()
	best, bestDist := 0.0, math.Inf(1)
	found := false
	for _, t := range s.Targets {
		if t.Y >= s.ShipY || s.ProjectileSpeed <= 0 {
			continue
		}
		travel := (s.ShipY - t.Y) / s.ProjectileSpeed
		x := t.X + t.Speed*travel
		if x < 0 || x > s.FieldWidth-t.Radius {
			continue
		}
		if d := math.Abs(x - center); d < bestDist {
			best, bestDist, found = x, d, true
		}
	}
	return best, found
}

func steer(from, to float64) int {
	if math.Abs(from-to) <= moveTolerance {
		return 0
	}
	if from < to {
		return 1
	}
	return -1
}
