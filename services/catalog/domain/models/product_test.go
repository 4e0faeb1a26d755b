package models

import "testing"

func TestProduct_SizeTracked(t *testing.T) {
	t.Run("empty stock map is not tracked", func(t *testing.T) {
		p := Product{ID: "chain-luna"}
		if p.SizeTracked() {
			t.Fatal("expected untracked product")
		}
	})

	t.Run("non-empty stock map is tracked", func(t *testing.T) {
		p := Product{ID: "ring-aurora", SizeStock: map[string]int{"17": 2}}
		if !p.SizeTracked() {
			t.Fatal("expected tracked product")
		}
	})
}

func TestProduct_StockFor(t *testing.T) {
	p := Product{ID: "ring-aurora", SizeStock: map[string]int{"17": 2, "18": 0}}

	t.Run("known size", func(t *testing.T) {
		avail, bounded := p.StockFor("17")
		if !bounded || avail != 2 {
			t.Fatalf("expected (2, true), got (%d, %v)", avail, bounded)
		}
	})

	t.Run("depleted size", func(t *testing.T) {
		avail, bounded := p.StockFor("18")
		if !bounded || avail != 0 {
			t.Fatalf("expected (0, true), got (%d, %v)", avail, bounded)
		}
	})

	t.Run("unknown size counts as zero", func(t *testing.T) {
		avail, bounded := p.StockFor("19")
		if !bounded || avail != 0 {
			t.Fatalf("expected (0, true), got (%d, %v)", avail, bounded)
		}
	})

	t.Run("untracked product is unbounded", func(t *testing.T) {
		free := Product{ID: "chain-luna"}
		_, bounded := free.StockFor("")
		if bounded {
			t.Fatal("expected unbounded stock")
		}
	})
}

func TestProduct_Purchasable(t *testing.T) {
	cases := []struct {
		name string
		p    Product
		want bool
	}{
		{"untracked", Product{ID: "chain-luna"}, true},
		{"one size in stock", Product{SizeStock: map[string]int{"17": 0, "18": 1}}, true},
		{"all sizes depleted", Product{SizeStock: map[string]int{"17": 0, "18": 0}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Purchasable(); got != tc.want {
				t.Fatalf("Purchasable() = %v, want %v", got, tc.want)
			}
		})
	}
}
