package collect

import "testing"

func TestProgress250(t *testing.T) {
	var reports []int
	p := NewProgress(250, func(pct int) { reports = append(reports, pct) })

	reportedAt := map[int]int{}
	for i := 1; i <= 250; i++ {
		if pct, ok := p.Step(); ok {
			reportedAt[pct] = i
		}
	}

	if _, ok := reportedAt[0]; ok {
		t.Error("0% should never be reported")
	}
	if at, ok := reportedAt[1]; !ok || at != 3 {
		t.Errorf("1%% reported at package %d, want 3", at)
	}
	if len(reports) != 100 {
		t.Errorf("got %d reports, want 100", len(reports))
	}

	hundreds := 0
	for i, pct := range reports {
		if i > 0 && pct <= reports[i-1] {
			t.Errorf("reports not increasing at %d: %v", i, reports[i-1:i+1])
		}
		if pct == 100 {
			hundreds++
		}
	}
	if hundreds != 1 {
		t.Errorf("100%% reported %d times, want 1", hundreds)
	}
	if reportedAt[100] != 250 {
		t.Errorf("100%% reported at package %d, want 250", reportedAt[100])
	}
}

func TestProgressSmallTotal(t *testing.T) {
	var reports []int
	p := NewProgress(3, func(pct int) { reports = append(reports, pct) })
	for i := 0; i < 3; i++ {
		p.Step()
	}

	want := []int{33, 66, 100}
	if len(reports) != len(want) {
		t.Fatalf("reports = %v, want %v", reports, want)
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Errorf("reports = %v, want %v", reports, want)
		}
	}
}

func TestProgressLargeTotal(t *testing.T) {
	count := 0
	p := NewProgress(1000, func(int) { count++ })
	for i := 0; i < 1000; i++ {
		p.Step()
	}
	if count != 100 {
		t.Errorf("got %d reports for 1000 steps, want 100", count)
	}
}

func TestProgressExtraStepsIgnored(t *testing.T) {
	count := 0
	p := NewProgress(1, func(int) { count++ })
	p.Step()
	if _, ok := p.Step(); ok {
		t.Error("step past total should not report")
	}
	if count != 1 || p.Done() != 1 {
		t.Errorf("count = %d, Done() = %d; want 1, 1", count, p.Done())
	}
}

func TestProgressZeroTotal(t *testing.T) {
	p := NewProgress(0, nil)
	if _, ok := p.Step(); ok {
		t.Error("zero-total progress should never report")
	}
}
