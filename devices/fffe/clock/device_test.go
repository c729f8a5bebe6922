package clock

import (
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	d := New()
	now := time.Unix(1000, 0)

	if cycles, ticks := d.Advance(now, 480); cycles != 0 || ticks != 0 {
		t.Fatalf("expected first call to start a period; have %d cycles, %d ticks", cycles, ticks)
	}

	now = now.Add(time.Second / 10)
	cycles, ticks := d.Advance(now, 480)
	if cycles != 48 || ticks != 6 {
		t.Fatalf("expected 48 cycles, 6 ticks; have %d cycles, %d ticks", cycles, ticks)
	}
}

func TestAdvanceCarriesRemainder(t *testing.T) {
	d := New()
	now := time.Unix(1000, 0)
	d.Advance(now, 700)

	var cycles, ticks int
	for i := 0; i < 100; i++ {
		now = now.Add(time.Millisecond * 10)
		c, tk := d.Advance(now, 700)
		cycles += c
		ticks += tk
	}

	// One second in 10ms steps.
	if cycles < 699 || cycles > 700 {
		t.Fatalf("expected ~700 cycles; have %d", cycles)
	}
	if ticks < 59 || ticks > 60 {
		t.Fatalf("expected ~60 ticks; have %d", ticks)
	}
}

func TestAdvanceCapsLag(t *testing.T) {
	d := New()
	now := time.Unix(1000, 0)
	d.Advance(now, 480)

	cycles, ticks := d.Advance(now.Add(time.Hour), 480)
	if cycles != 120 || ticks != 15 {
		t.Fatalf("expected lag to be capped at %v; have %d cycles, %d ticks", MaxLag, cycles, ticks)
	}
}

func TestFrequency(t *testing.T) {
	d := New()
	now := time.Unix(1000, 0)

	if d.Frequency(now) != 0 {
		t.Fatalf("expected zero frequency before the first call")
	}

	d.Advance(now, 480)
	now = now.Add(time.Second / 5)
	d.Advance(now, 480)

	if f := d.Frequency(now); f < 479 || f > 481 {
		t.Fatalf("expected ~480 Hz; have %f", f)
	}

	d.Reset()
	if d.Frequency(now) != 0 {
		t.Fatalf("expected reset to clear the measurement")
	}
}
