package domain

import "testing"

func TestTeam_Holding(t *testing.T) {
	team := &Team{
		Positions: map[string]Position{
			"VOLT": {Quantity: 300, AverageCost: 150.25},
			"GOLD": {Quantity: 50, AverageCost: 80.0},
		},
	}

	if got := team.Holding("VOLT"); got != 300 {
		t.Errorf("Holding(VOLT) = %d, want 300", got)
	}
	if got := team.Holding("GOLD"); got != 50 {
		t.Errorf("Holding(GOLD) = %d, want 50", got)
	}
	if got := team.Holding("JUNK"); got != 0 {
		t.Errorf("Holding(JUNK) = %d, want 0", got)
	}
}

func TestTeam_Clone_IsDeep(t *testing.T) {
	team := &Team{
		TeamID:      "t1",
		CashBalance: 100000,
		Positions: map[string]Position{
			"VOLT": {Quantity: 10, AverageCost: 150.0},
		},
	}

	clone := team.Clone()
	clone.CashBalance = 0
	clone.Positions["VOLT"] = Position{Quantity: 999, AverageCost: 1.0}
	clone.Positions["TECH"] = Position{Quantity: 1, AverageCost: 2.0}

	if team.CashBalance != 100000 {
		t.Errorf("clone mutation leaked into original cash balance: %v", team.CashBalance)
	}
	if team.Positions["VOLT"].Quantity != 10 {
		t.Errorf("clone mutation leaked into original position: %+v", team.Positions["VOLT"])
	}
	if _, ok := team.Positions["TECH"]; ok {
		t.Error("new position on clone appeared in original")
	}
}
