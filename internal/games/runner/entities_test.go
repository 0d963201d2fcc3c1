package runner

import (
	"testing"

	"github.com/vovakirdan/fofr-runner/internal/core"
)

func TestRegistryAdvanceAndCull(t *testing.T) {
	r := NewRegistry(900, 200)
	slow := r.AddObstacle(ObstaclePolice, 0, core.NewBox(130, -50, 40, 40), 100)
	fast := r.AddObstacle(ObstacleCar, 1, core.NewBox(260, -50, 40, 40), 1000)
	r.AddPowerup(PowerupShield, 2, core.NewBox(390, 880, 30, 30), 100)

	if fast.ID <= slow.ID {
		t.Errorf("ids not monotonic: %d then %d", slow.ID, fast.ID)
	}

	r.Advance(0.5)

	obs := r.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("obstacles = %d, want 2", len(obs))
	}
	if obs[0].Box.Y != 0 || obs[1].Box.Y != 450 {
		t.Errorf("positions = %v, %v; each entity keeps its own velocity", obs[0].Box.Y, obs[1].Box.Y)
	}
	if len(r.Powerups()) != 0 {
		t.Error("power-up past the cull line not removed")
	}

	r.Advance(0.5)
	if len(r.Obstacles()) != 1 || r.Obstacles()[0].ID != slow.ID {
		t.Errorf("expected only the slow obstacle left, got %+v", r.Obstacles())
	}
}

func TestRegistryParticlesExpire(t *testing.T) {
	r := NewRegistry(900, 200)
	r.AddParticle(100, 100, 10, -50, 1, core.ColorRed)

	r.Advance(0.5)
	p := r.Particles()
	if len(p) != 1 {
		t.Fatalf("particles = %d, want 1", len(p))
	}
	if p[0].Box.X != 105 || p[0].Box.Y != 75 {
		t.Errorf("particle at (%v,%v), want (105,75)", p[0].Box.X, p[0].Box.Y)
	}
	if p[0].VY != 50 {
		t.Errorf("VY = %v, want 50 after gravity", p[0].VY)
	}

	r.Advance(0.6)
	if len(r.Particles()) != 0 {
		t.Error("expired particle not removed")
	}
}

func TestRegistrySweepRemovesOnce(t *testing.T) {
	r := NewRegistry(900, 200)
	for lane := 0; lane < 3; lane++ {
		r.AddObstacle(ObstacleBag, lane, core.NewBox(float64(lane)*100, 0, 40, 40), 0)
	}

	seen := map[uint64]int{}
	take := func(e Entity) bool {
		seen[e.ID]++
		return e.Lane == 1
	}
	r.Sweep(KindObstacle, take)
	r.Sweep(KindObstacle, take)

	if len(r.Obstacles()) != 2 {
		t.Errorf("obstacles = %d, want 2", len(r.Obstacles()))
	}
	for _, e := range r.Obstacles() {
		if e.Lane == 1 {
			t.Error("swept obstacle still live")
		}
	}
	for id, n := range seen {
		if id == 2 && n != 1 {
			t.Errorf("removed entity visited %d times", n)
		}
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len after Reset = %d", r.Len())
	}
}
