package app

// Command はCLIのサブコマンドを表す。
type Command string

const (
	// CommandMatches は今後の試合一覧を表示する。
	CommandMatches Command = "matches"
	// CommandMatch は試合1件の詳細を表示する。
	CommandMatch Command = "match"
	// CommandLogin はメールアドレスとパスワードでログインする。
	CommandLogin Command = "login"
	// CommandSignup は新規アカウントを登録する。
	CommandSignup Command = "signup"
	// CommandLogout はログイン状態を破棄する。
	CommandLogout Command = "logout"
	// CommandProfile はログイン中ユーザーのプロフィールを表示する。
	CommandProfile Command = "profile"
	// CommandUpdateProfile はプロフィールを更新する。
	CommandUpdateProfile Command = "update-profile"
	// CommandBuy は指定した試合のチケットを購入する。
	CommandBuy Command = "buy"
	// CommandTickets は購入済みチケットの一覧を表示する。
	CommandTickets Command = "tickets"
	// CommandTicket は購入済みチケット1枚を表示する。
	CommandTicket Command = "ticket"
	// CommandHelp は使い方を表示する。
	CommandHelp Command = "help"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析し、
// 残りの引数とあわせて返す。引数が空またはサポート外のコマンドの
// 場合はCommandHelpを返す。
func ParseCommand(args []string) (Command, []string) {
	if len(args) == 0 {
		return CommandHelp, nil
	}

	switch args[0] {
	case "matches":
		return CommandMatches, args[1:]
	case "match":
		return CommandMatch, args[1:]
	case "login":
		return CommandLogin, args[1:]
	case "signup":
		return CommandSignup, args[1:]
	case "logout":
		return CommandLogout, args[1:]
	case "profile":
		return CommandProfile, args[1:]
	case "update-profile":
		return CommandUpdateProfile, args[1:]
	case "buy":
		return CommandBuy, args[1:]
	case "tickets":
		return CommandTickets, args[1:]
	case "ticket":
		return CommandTicket, args[1:]
	default:
		return CommandHelp, nil
	}
}

// usage はCLIの使い方。helpサブコマンドと不明なコマンドの際に表示する。
const usage = `ticketgate - サッカー観戦チケットの購入CLI

使い方:
  ticketgate [flags] <command> [args]

コマンド:
  matches [--league <id>]        今後の試合一覧を表示する
  match <id>                     試合の詳細を表示する
  login <email> <password>       ログインする
  signup [flags]                 新規アカウントを登録する
  logout                         ログアウトする
  profile                        プロフィールを表示する
  update-profile [flags]         プロフィールを更新する
  buy <match-id>... [flags]      チケットを購入する
  tickets                        購入済みチケットの一覧を表示する
  ticket <id>                    購入済みチケットを表示する
  help                           この使い方を表示する

グローバルフラグ:
  --log <text|json>              ログ出力形式 (既定: text)

環境変数:
  TICKET_API_URL                 チケッティングAPIのURL（必須）
  FIXTURES_API_URL               フィクスチャーAPIのURL
  FIXTURES_API_KEY               フィクスチャーAPIキー（未設定時はサンプルデータ）
  STATE_DIR                      ローカル状態の保存先
  METRICS_ADDR                   デバッグ用メトリクスリスナーのアドレス
`
