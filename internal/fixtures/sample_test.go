package fixtures

import (
	"reflect"
	"testing"
	"time"
)

func TestSampleMatches_NonEmptyAndConsistent(t *testing.T) {
	sample := SampleMatches()

	if len(sample.Response) == 0 {
		t.Fatal("expected non-empty sample dataset")
	}

	for _, m := range sample.Response {
		if m.Teams.Home.Name == m.Teams.Away.Name {
			t.Errorf("fixture %d: home and away teams must differ, both %q",
				m.Fixture.ID, m.Teams.Home.Name)
		}
		if m.Teams.Home.Name == "" || m.Teams.Away.Name == "" {
			t.Errorf("fixture %d: empty team name", m.Fixture.ID)
		}
		if m.League.Name == "" {
			t.Errorf("fixture %d: empty league name", m.Fixture.ID)
		}
		if m.Goals.Home != nil || m.Goals.Away != nil {
			t.Errorf("fixture %d: unstarted match must have nil goals", m.Fixture.ID)
		}
		if m.Fixture.Status.Short != "NS" {
			t.Errorf("fixture %d: status = %q, want NS", m.Fixture.ID, m.Fixture.Status.Short)
		}
	}
}

func TestSampleMatches_SequentialIDsAndDailyDates(t *testing.T) {
	sample := SampleMatches()

	for i, m := range sample.Response {
		wantID := i + 1
		if m.Fixture.ID != wantID {
			t.Fatalf("response[%d].Fixture.ID = %d, want %d", i, m.Fixture.ID, wantID)
		}

		date, err := time.Parse(time.RFC3339, m.Fixture.Date)
		if err != nil {
			t.Fatalf("fixture %d: invalid date %q: %v", m.Fixture.ID, m.Fixture.Date, err)
		}
		wantDate := sampleAnchorDate.AddDate(0, 0, i)
		if !date.Equal(wantDate) {
			t.Errorf("fixture %d: date = %v, want %v", m.Fixture.ID, date, wantDate)
		}
	}
}

// TestSampleMatches_PairingCount はリーグ内総当たりの試合数を検証する。
// 8チームのリーグは28試合、6チームのリーグは15試合になる。
func TestSampleMatches_PairingCount(t *testing.T) {
	sample := SampleMatches()

	countByLeague := make(map[int]int)
	for _, m := range sample.Response {
		countByLeague[m.League.ID]++
	}

	want := map[int]int{
		39:  28, // Premier League: C(8,2)
		140: 15, // La Liga: C(6,2)
		135: 15, // Serie A
		78:  15, // Bundesliga
		61:  15, // Ligue 1
	}
	if !reflect.DeepEqual(countByLeague, want) {
		t.Errorf("match count per league = %v, want %v", countByLeague, want)
	}
}

func TestSampleMatches_Deterministic(t *testing.T) {
	a := SampleMatches()
	b := SampleMatches()

	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical output on repeated generation")
	}
}

func TestSampleMatches_HomeAdvantageByListPosition(t *testing.T) {
	sample := SampleMatches()

	// 最初の試合はPremier Leagueの先頭2チームで、先のチームがホーム
	first := sample.Response[0]
	if first.Teams.Home.Name != "Manchester United" || first.Teams.Away.Name != "Liverpool" {
		t.Errorf("first fixture = %q vs %q, want Manchester United vs Liverpool",
			first.Teams.Home.Name, first.Teams.Away.Name)
	}
	if first.Fixture.Venue == nil || first.Fixture.Venue.Name != "Manchester United Stadium" {
		t.Errorf("first fixture venue = %+v, want home team stadium", first.Fixture.Venue)
	}
}
