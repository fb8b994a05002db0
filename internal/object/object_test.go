package object

import (
	"image/color"
	"math"
	"testing"
)

// scriptedRand replays fixed values; once a script runs out its last value repeats.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return min(v, n-1)
}

// spawnRecorder collects spawned objects.
type spawnRecorder struct {
	spawned []Object
}

func (s *spawnRecorder) Spawn(obj Object) {
	s.spawned = append(s.spawned, obj)
}

func testScreen() Screen {
	return NewScreen(1024, 768)
}

func TestEntityDamageClampsAtZero(t *testing.T) {
	e := newEntity(CategoryAsteroid, 0, 0, 40, 40, 40)
	if e.Damage(30) {
		t.Fatal("Damage(30) reported death at 10 health")
	}
	if !e.Damage(30) {
		t.Fatal("Damage(30) did not report death")
	}
	if e.Health != 0 || !e.IsDead() {
		t.Errorf("Health = %d, want 0", e.Health)
	}
}

func TestMaskSharedPerSize(t *testing.T) {
	a := newEntity(CategoryBullet, 0, 0, 10, 15, 1)
	b := newEntity(CategoryBullet, 5, 5, 10, 15, 1)
	if a.Mask() != b.Mask() {
		t.Error("entities of the same size should share one mask")
	}
	if w, h := a.Mask().Size(); w != 10 || h != 15 {
		t.Errorf("mask size = %dx%d, want 10x15", w, h)
	}
}

func TestCompact(t *testing.T) {
	bullets := []*Bullet{
		NewPlayerBullet(1, 1, 0),
		NewPlayerBullet(2, 2, 0),
		NewPlayerBullet(3, 3, 0),
	}
	bullets[1].MarkDestroyed()
	bullets[1].MarkDestroyed() // Idempotent

	kept := Compact(bullets)
	if len(kept) != 2 || kept[0].X != 1 || kept[1].X != 3 {
		t.Errorf("Compact() kept %d bullets", len(kept))
	}
	if bullets[2] != nil {
		t.Error("tail of the backing array should be cleared")
	}
}

func TestPlayerStartsBottomCenter(t *testing.T) {
	p := NewPlayer(testScreen())
	if p.X != 512 || p.Y != 668 {
		t.Errorf("position = (%v, %v), want (512, 668)", p.X, p.Y)
	}
	if p.Health != 100 || p.Lives != 3 || p.PowerLevel != 1 || p.Score != 0 {
		t.Errorf("stats = %+v", p)
	}
}

func TestPlayerMovementClamped(t *testing.T) {
	p := NewPlayer(testScreen())
	ctx := UpdateContext{Screen: testScreen(), Input: Input{Left: true, Up: true}}

	p.Update(ctx)
	if p.X != 504 || p.Y != 660 {
		t.Errorf("after one step = (%v, %v), want (504, 660)", p.X, p.Y)
	}

	for i := 0; i < 200; i++ {
		p.Update(ctx)
	}
	if r := p.Rect(); r.Left() != 0 || r.Top() != 0 {
		t.Errorf("clamped rect = %+v, want top-left at origin", r)
	}

	ctx.Input = Input{Right: true, Down: true}
	for i := 0; i < 200; i++ {
		p.Update(ctx)
	}
	if r := p.Rect(); r.Right() != 1024 || r.Bottom() != 768 {
		t.Errorf("clamped rect = %+v, want bottom-right at screen corner", r)
	}
}

func TestPlayerShootFans(t *testing.T) {
	tests := []struct {
		power    int
		bullets  int
		cooldown int
	}{
		{1, 1, 14},
		{2, 2, 13},
		{3, 4, 12},
	}
	for _, tt := range tests {
		p := NewPlayer(testScreen())
		p.PowerLevel = tt.power
		rec := &spawnRecorder{}

		if n := p.Shoot(rec); n != tt.bullets || len(rec.spawned) != tt.bullets {
			t.Errorf("power %d: Shoot() = %d (spawned %d), want %d", tt.power, n, len(rec.spawned), tt.bullets)
		}
		if p.ShootCooldown != tt.cooldown {
			t.Errorf("power %d: cooldown = %d, want %d", tt.power, p.ShootCooldown, tt.cooldown)
		}
		if n := p.Shoot(rec); n != 0 {
			t.Errorf("power %d: Shoot() during cooldown = %d, want 0", tt.power, n)
		}
	}
}

func TestPlayerPowerThreeBulletLayout(t *testing.T) {
	p := NewPlayer(testScreen())
	p.PowerLevel = 3
	rec := &spawnRecorder{}
	p.Shoot(rec)

	wantX := []float64{492, 532, 502, 522}
	top := p.Rect().Top()
	for i, obj := range rec.spawned {
		b := obj.(*Bullet)
		if b.X != wantX[i] || b.Y != top {
			t.Errorf("bullet %d at (%v, %v), want (%v, %v)", i, b.X, b.Y, wantX[i], top)
		}
		if b.Side != SidePlayer || b.W != 10 || b.H != 15 {
			t.Errorf("bullet %d = %+v", i, b)
		}
	}

	// Angled shots keep the sin(angle) × speed drift with a negative speed.
	right := rec.spawned[3].(*Bullet)
	wantVX := math.Sin(15*math.Pi/180) * -15
	if math.Abs(right.VX-wantVX) > 1e-9 || right.VY >= 0 {
		t.Errorf("+15° bullet velocity = (%v, %v), want VX %v and upward", right.VX, right.VY, wantVX)
	}
}

func TestPlayerCaps(t *testing.T) {
	p := NewPlayer(testScreen())
	for i := 0; i < 5; i++ {
		p.UpgradeWeapon()
		p.AddLife()
	}
	if p.PowerLevel != MaxPowerLevel || p.Lives != MaxLives {
		t.Errorf("power %d lives %d, want %d and %d", p.PowerLevel, p.Lives, MaxPowerLevel, MaxLives)
	}

	p.AddScore(-50)
	if p.Score != 0 {
		t.Errorf("negative score applied: %d", p.Score)
	}

	p.Lives = 1
	p.Health = 0
	if !p.LoseLife() {
		t.Error("LoseLife() on the last life should report game over")
	}
	if p.Lives != 0 || p.Health != MaxHealth {
		t.Errorf("after LoseLife lives %d health %d", p.Lives, p.Health)
	}
	if !p.LoseLife() || p.Lives != 0 {
		t.Error("lives must not go negative")
	}
}

func TestBulletLeavesScreen(t *testing.T) {
	ctx := UpdateContext{Screen: testScreen()}
	b := NewPlayerBullet(100, 10, 0)
	steps := 0
	for !b.Update(ctx) {
		steps++
		if steps > 100 {
			t.Fatal("bullet never left the screen")
		}
	}
	if b.Rect().Bottom() >= 0 {
		t.Errorf("removed while still visible: %+v", b.Rect())
	}

	eb := NewEnemyBullet(100, 760)
	if eb.Update(ctx) {
		t.Error("enemy bullet removed while overlapping the screen")
	}
	if eb.VY != 5 || eb.VX != 0 {
		t.Errorf("enemy bullet velocity = (%v, %v), want (0, 5)", eb.VX, eb.VY)
	}
}

func TestEnemyShipShoot(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.5}, ints: []int{0}}
	e := NewEnemyShip(200, 100, r)
	if e.Speed != 2 || e.ShootTimer != 30 || e.Health != EnemyHealth {
		t.Fatalf("NewEnemyShip() = speed %v timer %d health %d", e.Speed, e.ShootTimer, e.Health)
	}

	rec := &spawnRecorder{}
	ctx := UpdateContext{Screen: testScreen(), Spawner: rec, Rand: r}
	if e.Shoot(ctx) {
		t.Fatal("fired before the timer elapsed")
	}

	e.ShootTimer = 0
	if !e.Shoot(ctx) {
		t.Fatal("did not fire with an elapsed timer")
	}
	b := rec.spawned[0].(*Bullet)
	if b.X != 200 || b.Y != e.Rect().Bottom() || b.Side != SideEnemy {
		t.Errorf("enemy bullet = %+v", b)
	}
	if e.ShootTimer != 60 {
		t.Errorf("reload = %d, want 60", e.ShootTimer)
	}
}

func TestAsteroid(t *testing.T) {
	r := &scriptedRand{floats: []float64{0, 0.25}, ints: []int{2}}
	a := NewAsteroid(100, -40, 40, r)
	if a.Health != 40 || a.W != 40 || a.Shade != asteroidShades[2] {
		t.Errorf("NewAsteroid() = %+v", a)
	}
	if a.Speed != 1 || a.RotationSpeed != -1.5 {
		t.Errorf("speed %v rotation speed %v, want 1 and -1.5", a.Speed, a.RotationSpeed)
	}

	a.Update(UpdateContext{Screen: testScreen()})
	if a.Y != -39 || a.Rotation != 358.5 {
		t.Errorf("after update y=%v rotation=%v, want -39 and 358.5", a.Y, a.Rotation)
	}
	if a.ScoreValue() != 50 {
		t.Errorf("ScoreValue() = %d, want 50", a.ScoreValue())
	}
}

func TestPowerUpFallsOff(t *testing.T) {
	p := NewPowerUp(100, 790, ExtraLife)
	if !p.Update(UpdateContext{Screen: testScreen()}) {
		t.Error("power-up below the screen should be removed")
	}
	if p.Kind.String() != "extra_life" {
		t.Errorf("Kind = %v", p.Kind)
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct{ score, level int }{
		{0, 1}, {1999, 1}, {2000, 2}, {4100, 3}, {17999, 9}, {18000, 10}, {1000000, 10}, {-5, 1},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.level {
			t.Errorf("LevelForScore(%d) = %d, want %d", tt.score, got, tt.level)
		}
	}
}

func TestSpawnInterval(t *testing.T) {
	if got := SpawnInterval(1); got != 58 {
		t.Errorf("SpawnInterval(1) = %d, want 58", got)
	}
	if got := SpawnInterval(10); got != 40 {
		t.Errorf("SpawnInterval(10) = %d, want 40", got)
	}
	if got := SpawnInterval(100); got != 1 {
		t.Errorf("SpawnInterval(100) = %d, want 1", got)
	}
}

func TestSpawnerWaveTiming(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.99}, ints: []int{0}}
	rec := &spawnRecorder{}
	ctx := UpdateContext{Screen: testScreen(), Spawner: rec, Rand: r}
	s := NewEnemySpawner()

	for i := 0; i < 57; i++ {
		s.Update(ctx, 1, nil)
	}
	if len(rec.spawned) != 0 {
		t.Fatalf("spawned %d objects before the interval", len(rec.spawned))
	}

	s.Update(ctx, 1, nil)
	if len(rec.spawned) != 1 || s.Timer() != 0 {
		t.Fatalf("after 58 frames spawned %d, timer %d", len(rec.spawned), s.Timer())
	}
	a, ok := rec.spawned[0].(*Asteroid)
	if !ok {
		t.Fatalf("spawned %T, want *Asteroid", rec.spawned[0])
	}
	if a.Size != 40 || a.X != 50 || a.Y != -40 {
		t.Errorf("asteroid size %d at (%v, %v), want 40 at (50, -40)", a.Size, a.X, a.Y)
	}
}

func TestSpawnerEnemyShipWave(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.1, 0.5, 0.99}, ints: []int{974}}
	rec := &spawnRecorder{}
	ctx := UpdateContext{Screen: testScreen(), Spawner: rec, Rand: r}
	s := NewEnemySpawner()

	s.Update(ctx, 100, nil) // Interval 1: spawns immediately
	e, ok := rec.spawned[0].(*EnemyShip)
	if !ok {
		t.Fatalf("spawned %T, want *EnemyShip", rec.spawned[0])
	}
	if e.X != 974 || e.Y != -50 {
		t.Errorf("enemy ship at (%v, %v), want (974, -50)", e.X, e.Y)
	}
}

func TestSpawnerEnemyFireAndPowerUp(t *testing.T) {
	r := &scriptedRand{floats: []float64{0}, ints: []int{1}}
	rec := &spawnRecorder{}
	ctx := UpdateContext{Screen: testScreen(), Spawner: rec, Rand: r}

	ship := NewEnemyShip(300, 100, r)
	ship.ShootTimer = 0
	cooling := NewEnemyShip(400, 100, r)
	cooling.ShootTimer = 10
	rock := NewAsteroid(500, 100, 50, r)

	shots := NewEnemySpawner().Update(ctx, 1, []Hostile{ship, cooling, rock})
	if shots != 1 {
		t.Errorf("shots = %d, want 1", shots)
	}

	var bullets, powerUps int
	for _, obj := range rec.spawned {
		switch o := obj.(type) {
		case *Bullet:
			bullets++
		case *PowerUp:
			powerUps++
			if o.Kind != ExtraLife || o.Y != -30 {
				t.Errorf("power-up = %+v", o)
			}
		}
	}
	if bullets != 1 || powerUps != 1 {
		t.Errorf("spawned %d bullets and %d power-ups, want 1 and 1", bullets, powerUps)
	}
}

func TestParticleEmitAndAdvance(t *testing.T) {
	r := &scriptedRand{floats: []float64{0}}
	ps := NewParticleSystem(r)
	red := color.NRGBA{R: 255, A: 255}

	ps.Emit(10, 20, red, 5, 2, 3, 4)
	if ps.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", ps.Len())
	}
	p := ps.Particles()[0]
	if p.VX != 2 || p.VY != 0 || p.Radius != 4 || p.Alpha() != 255 {
		t.Errorf("particle = %+v alpha %d", p, p.Alpha())
	}

	ps.Advance()
	p = ps.Particles()[0]
	if p.X != 12 || p.Life != 2 || p.Alpha() != 170 {
		t.Errorf("after advance = %+v alpha %d", p, p.Alpha())
	}

	ps.Advance()
	ps.Advance()
	if ps.Len() != 0 {
		t.Errorf("Len() after life ran out = %d, want 0", ps.Len())
	}
}

type sinkRecorder struct {
	alphas []uint8
}

func (s *sinkRecorder) DrawParticle(_, _, _ float64, c color.NRGBA) {
	s.alphas = append(s.alphas, c.A)
}

func TestParticleRenderFades(t *testing.T) {
	ps := NewParticleSystem(&scriptedRand{})
	ps.EmitDefault(0, 0, color.NRGBA{G: 255, A: 255})
	for i := 0; i < 15; i++ {
		ps.Advance()
	}

	sink := &sinkRecorder{}
	ps.Render(sink)
	if len(sink.alphas) != 10 {
		t.Fatalf("rendered %d particles, want 10", len(sink.alphas))
	}
	if sink.alphas[0] != 127 {
		t.Errorf("alpha at half life = %d, want 127", sink.alphas[0])
	}
}

func TestScoreValues(t *testing.T) {
	r := &scriptedRand{}
	if got := NewEnemyShip(0, 0, r).ScoreValue(); got != 100 {
		t.Errorf("enemy ship ScoreValue() = %d, want 100", got)
	}
	if got := NewAsteroid(0, 0, 40, r).ScoreValue(); got != 50 {
		t.Errorf("asteroid ScoreValue() = %d, want 50", got)
	}
}

func TestEmitDefaultBurst(t *testing.T) {
	ps := NewParticleSystem(&scriptedRand{})
	ps.EmitDefault(5, 5, color.NRGBA{R: 255, A: 255})

	if ps.Len() != DefaultBurstCount {
		t.Fatalf("Len() = %d, want %d", ps.Len(), DefaultBurstCount)
	}
	p := ps.Particles()[0]
	if p.Life != DefaultBurstLife || p.Radius != DefaultBurstRadius || math.Hypot(p.VX, p.VY) != DefaultBurstSpeed {
		t.Errorf("particle = %+v, want life %d radius %v speed %v", p, DefaultBurstLife, DefaultBurstRadius, DefaultBurstSpeed)
	}
}
