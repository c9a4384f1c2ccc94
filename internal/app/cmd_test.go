package app

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     Command
		wantRest int
	}{
		{name: "空の引数はhelp", args: []string{}, want: CommandHelp},
		{name: "matches", args: []string{"matches"}, want: CommandMatches},
		{name: "matchと残り引数", args: []string{"match", "15"}, want: CommandMatch, wantRest: 1},
		{name: "login", args: []string{"login", "a@example.com", "pw"}, want: CommandLogin, wantRest: 2},
		{name: "signup", args: []string{"signup"}, want: CommandSignup},
		{name: "logout", args: []string{"logout"}, want: CommandLogout},
		{name: "profile", args: []string{"profile"}, want: CommandProfile},
		{name: "update-profile", args: []string{"update-profile"}, want: CommandUpdateProfile},
		{name: "buyと複数ID", args: []string{"buy", "1", "2"}, want: CommandBuy, wantRest: 2},
		{name: "tickets", args: []string{"tickets"}, want: CommandTickets},
		{name: "ticket", args: []string{"ticket", "t-1"}, want: CommandTicket, wantRest: 1},
		{name: "help", args: []string{"help"}, want: CommandHelp},
		{name: "不明なコマンドはhelp", args: []string{"bogus"}, want: CommandHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, rest := ParseCommand(tt.args)
			if cmd != tt.want {
				t.Errorf("ParseCommand(%v) = %q, want %q", tt.args, cmd, tt.want)
			}
			if len(rest) != tt.wantRest {
				t.Errorf("rest = %v, want %d args", rest, tt.wantRest)
			}
		})
	}
}
