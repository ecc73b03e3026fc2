package fractal

import "testing"

func TestNewTargetDefaults(t *testing.T) {
	tg := NewTarget(10, NewSequential())

	if got := tg.View(); got != ViewFullSet {
		t.Errorf("default view = %v, want %v", got, ViewFullSet)
	}
	if tg.scheme != SchemeSequential {
		t.Errorf("default scheme = %v, want SchemeSequential", tg.scheme)
	}
	if got := tg.Size(); got != 10 {
		t.Errorf("Size() = %d, want 10", got)
	}
	if got, want := tg.Pixmap().Bounds().Dx(), 10; got != want {
		t.Errorf("raster width = %d, want %d", got, want)
	}
}

func TestNewTargetOptions(t *testing.T) {
	tg := NewTarget(10, NewSequential(),
		WithScheme(SchemeDevice),
		WithView(ViewLeftSpike),
	)

	if got := tg.View(); got != ViewLeftSpike {
		t.Errorf("view = %v, want %v", got, ViewLeftSpike)
	}
	if tg.scheme != SchemeDevice {
		t.Errorf("scheme = %v, want SchemeDevice", tg.scheme)
	}
}
