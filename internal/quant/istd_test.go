package quant_test

import (
	"errors"
	"testing"

	"trhquant/internal/peaks"
	"trhquant/internal/quant"
)

func istdParams() quant.ISTDParams {
	return quant.ISTDParams{RT: 3, RTTolerance: 0.5, AreaTarget: 5000, AreaTolerance: 500}
}

func TestLocateISTDUniqueCandidate(t *testing.T) {
	area, err := quant.LocateISTD(threePeaks(), istdParams())
	if err != nil {
		t.Fatalf("LocateISTD returned error: %v", err)
	}
	if area != 5000 {
		t.Fatalf("istd area = %v, want 5000", area)
	}
}

func TestLocateISTDBothWindowsMustHold(t *testing.T) {
	// Peak 2 sits inside the retention time window but its area misses the
	// target window; a retention-time-only match must not be accepted.
	list := peaks.List{
		{Index: 1, StartRT: 2, RT: 3, EndRT: 4, Area: 9000},
	}
	_, err := quant.LocateISTD(list, istdParams())
	if !errors.Is(err, quant.ErrISTD) {
		t.Fatalf("expected ErrISTD, got %v", err)
	}
}

func TestLocateISTDDisambiguatesByRetentionTime(t *testing.T) {
	list := peaks.List{
		{Index: 1, StartRT: 2.4, RT: 2.6, EndRT: 2.8, Area: 4800},
		{Index: 2, StartRT: 2.9, RT: 3.1, EndRT: 3.3, Area: 5200},
	}
	area, err := quant.LocateISTD(list, istdParams())
	if err != nil {
		t.Fatalf("LocateISTD returned error: %v", err)
	}
	if area != 5200 {
		t.Fatalf("istd area = %v, want 5200 (peak closer to nominal rt)", area)
	}
}

func TestLocateISTDNoCandidates(t *testing.T) {
	list := peaks.List{
		{Index: 1, StartRT: 7, RT: 8, EndRT: 9, Area: 5000},
	}
	_, err := quant.LocateISTD(list, istdParams())
	if !errors.Is(err, quant.ErrISTD) {
		t.Fatalf("expected ErrISTD, got %v", err)
	}
}
