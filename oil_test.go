package oilspill

import "testing"

func TestLookupOil(t *testing.T) {
	for _, kind := range []OilKind{Crude, Fuel, Diesel, Gasoline} {
		p, err := LookupOil(kind)
		if err != nil {
			t.Errorf("LookupOil(%s): %v", kind, err)
		}
		if p.Density <= 0 || p.VolatileFrac <= 0 || p.VolatileFrac > 1 {
			t.Errorf("LookupOil(%s): implausible properties %+v", kind, p)
		}
	}
}

func TestLookupOilUnknown(t *testing.T) {
	if _, err := LookupOil(OilKind("bunker-c")); err == nil {
		t.Error("expected an error for an uncatalogued oil kind, got nil")
	}
}
