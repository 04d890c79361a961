// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package objectmap

import "testing"

func TestKnownEntriesHaveOrderedFields(t *testing.T) {
	for _, name := range []string{"ConfigExplosion", "ValueRange", "ConfigProjectile"} {
		fields, ok := Fields(name)
		if !ok {
			t.Fatalf("expected %s to be a known ObjectMap entry", name)
		}
		if len(fields) == 0 {
			t.Fatalf("%s has no fields", name)
		}
		for _, f := range fields {
			if f.Name == "" || f.TypeString == "" {
				t.Fatalf("%s has an incomplete field spec: %+v", name, f)
			}
		}
	}
}

func TestUnknownEntry(t *testing.T) {
	if Has("NotARealAggregate") {
		t.Fatal("expected unknown name to report false")
	}
	if _, ok := Fields("NotARealAggregate"); ok {
		t.Fatal("expected Fields to report ok=false for unknown name")
	}
}

func TestValueRangeShape(t *testing.T) {
	fields, _ := Fields("ValueRange")
	if len(fields) != 2 || fields[0].Name != "min" || fields[1].Name != "max" {
		t.Fatalf("unexpected ValueRange shape: %+v", fields)
	}
}
