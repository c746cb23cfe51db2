package history

import "testing"

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil)
	if st.TotalPlays != 0 || st.WinRate != 0 || st.MostPlayed != nil {
		t.Fatalf("empty stats = %+v", st)
	}
}

func TestComputeStats(t *testing.T) {
	entries := []*Entry{
		{GameName: "Gates of Olympus", TotalPlay: 12, TotalBet: 600, TotalWin: 450, IsWin: false, IsFavourite: true},
		{GameName: "Mahjong Ways", TotalPlay: 30, TotalBet: 1500, TotalWin: 1800, IsWin: true, IsFavourite: true},
		{GameName: "Aviator", TotalPlay: 5, TotalBet: 100, TotalWin: 0, IsWin: false},
		{GameName: "Super Ace", TotalPlay: 9, TotalBet: 270, TotalWin: 300, IsWin: true},
	}
	st := ComputeStats(entries)

	if st.TotalPlays != 56 {
		t.Errorf("TotalPlays = %d, want 56", st.TotalPlays)
	}
	if st.TotalBet != 2470 {
		t.Errorf("TotalBet = %v, want 2470", st.TotalBet)
	}
	if st.TotalWin != 2550 {
		t.Errorf("TotalWin = %v, want 2550", st.TotalWin)
	}
	if st.FavouriteCount != 2 {
		t.Errorf("FavouriteCount = %d, want 2", st.FavouriteCount)
	}
	if st.WinRate != 50 {
		t.Errorf("WinRate = %v, want 50", st.WinRate)
	}
	if st.MostPlayed == nil || st.MostPlayed.GameName != "Mahjong Ways" {
		t.Errorf("MostPlayed = %+v, want Mahjong Ways", st.MostPlayed)
	}
}

func TestComputeStatsMostPlayedTieKeepsFirst(t *testing.T) {
	entries := []*Entry{
		{GameName: "First", TotalPlay: 7},
		{GameName: "Second", TotalPlay: 7},
	}
	st := ComputeStats(entries)
	if st.MostPlayed.GameName != "First" {
		t.Errorf("MostPlayed = %q, want First", st.MostPlayed.GameName)
	}
}
