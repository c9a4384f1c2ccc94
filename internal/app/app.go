// Package app はCLIの初期化と実行を担う。
// 設定の読み込み、依存関係のワイヤリング、サブコマンドの振り分けを行う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/hitoshi/ticketgate/internal/cart"
	"github.com/hitoshi/ticketgate/internal/config"
	"github.com/hitoshi/ticketgate/internal/fixtures"
	"github.com/hitoshi/ticketgate/internal/logger"
	"github.com/hitoshi/ticketgate/internal/metrics"
	"github.com/hitoshi/ticketgate/internal/model"
	"github.com/hitoshi/ticketgate/internal/render"
	"github.com/hitoshi/ticketgate/internal/security"
	"github.com/hitoshi/ticketgate/internal/session"
	"github.com/hitoshi/ticketgate/internal/storage"
	"github.com/hitoshi/ticketgate/internal/ticketing"
)

// App は1回のCLI実行に必要な依存関係一式。
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	session   *session.Store
	cart      *cart.Store
	matches   *fixtures.Cache
	ticketing *ticketing.Client
	registry  *prometheus.Registry
	out       io.Writer
}

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、構造化ログをセットアップし、
// 全依存関係をワイヤリングする。outは表示出力先（通常はstdout）。
// ログは診断用であり、常にstderrに出る。
func Init(out io.Writer, logFormat logger.Format) (*App, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(nil, logFormat)
	log := slog.Default()

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. ローカル状態（localStorage相当）の初期化
	kv, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open state directory: %w", err)
	}

	// 4. セッションの復元
	sess := session.New(kv, log)

	// 5. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 6. フィクスチャー取得とキャッシュの初期化
	guard := security.NewOutboundGuard()
	sanitizer := security.NewTextSanitizer()
	fixturesClient := fixtures.NewClient(guard, sanitizer, log, fixtures.ClientConfig{
		BaseURL:           cfg.FixturesAPIURL,
		APIKey:            cfg.FixturesAPIKey,
		Timeout:           cfg.HTTPTimeout,
		RequestsPerMinute: cfg.FixturesRateLimit,
	})
	matchCache := fixtures.NewCache(kv, fixturesClient, log, collector, cfg.CacheTTL)

	// 7. チケッティングAPIクライアントの初期化
	ticketClient := ticketing.NewClient(cfg.TicketAPIURL, sess, log, collector, cfg.HTTPTimeout)

	return &App{
		cfg:       cfg,
		logger:    log,
		session:   sess,
		cart:      cart.New(),
		matches:   matchCache,
		ticketing: ticketClient,
		registry:  registry,
		out:       out,
	}, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応する処理を実行する。
// argsにはos.Args[1:]を渡す。
func Run(out io.Writer, args []string) error {
	flags := pflag.NewFlagSet("ticketgate", pflag.ContinueOnError)
	flags.SetOutput(out)
	// グローバルフラグの解析はサブコマンド名で止める。
	// サブコマンド固有のフラグは各run関数が解析する。
	flags.SetInterspersed(false)
	logFormat := flags.String("log", string(logger.FormatText), "ログ出力形式 (text|json)")
	flags.Usage = func() { fmt.Fprint(out, usage) }

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cmd, cmdArgs := ParseCommand(flags.Args())

	// help は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHelp {
		fmt.Fprint(out, usage)
		return nil
	}

	a, err := Init(out, logger.Format(*logFormat))
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Ctrl-Cで進行中のネットワーク呼び出しを中断できるようにする
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// デバッグ用メトリクスリスナー（構成された場合のみ）
	if a.cfg.MetricsAddr != "" {
		shutdown := a.startMetricsListener()
		defer shutdown()
	}

	slog.Info("starting command",
		slog.String("command", string(cmd)),
		slog.Bool("logged_in", a.session.LoggedIn()),
	)

	switch cmd {
	case CommandMatches:
		return a.runMatches(ctx, cmdArgs)
	case CommandMatch:
		return a.runMatch(ctx, cmdArgs)
	case CommandLogin:
		return a.runLogin(ctx, cmdArgs)
	case CommandSignup:
		return a.runSignup(ctx, cmdArgs)
	case CommandLogout:
		return a.runLogout()
	case CommandProfile:
		return a.runProfile(ctx)
	case CommandUpdateProfile:
		return a.runUpdateProfile(ctx, cmdArgs)
	case CommandBuy:
		return a.runBuy(ctx, cmdArgs)
	case CommandTickets:
		return a.runTickets(ctx)
	case CommandTicket:
		return a.runTicket(ctx, cmdArgs)
	default:
		fmt.Fprint(out, usage)
		return nil
	}
}

// startMetricsListener はデバッグ用のメトリクスHTTPリスナーを起動し、
// 停止用の関数を返す。バインド失敗はログに記録するのみで実行は続ける。
func (a *App) startMetricsListener() func() {
	server := &http.Server{
		Addr:         a.cfg.MetricsAddr,
		Handler:      metrics.NewDebugRouter(a.registry),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics listener starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics listener error", slog.String("error", err.Error()))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("metrics listener shutdown failed", slog.String("error", err.Error()))
		}
	}
}

// requireAuth はログイン済みかつトークンが有効であることを検証する。
func (a *App) requireAuth() error {
	if !a.session.LoggedIn() {
		return model.NewNotLoggedInError()
	}
	if !a.session.TokenValid(time.Now()) {
		return model.NewNotLoggedInError()
	}
	return nil
}

// runMatches は今後の試合一覧を表示する。--leagueでリーグを絞り込める。
func (a *App) runMatches(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("matches", pflag.ContinueOnError)
	flags.SetOutput(a.out)
	leagueID := flags.Int("league", 0, "リーグIDで絞り込む")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var matches []model.Match
	if *leagueID != 0 {
		matches = a.matches.GetByLeague(ctx, *leagueID)
	} else {
		matches = a.matches.GetAll(ctx)
	}

	fmt.Fprintln(a.out, render.Matches(matches))
	return nil
}

// runMatch は試合1件の詳細を表示する。
func (a *App) runMatch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ticketgate match <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid match id: %s", args[0])
	}

	m := a.matches.GetByID(ctx, id)
	if m == nil {
		return model.NewMatchNotFoundError(id)
	}

	fmt.Fprintln(a.out, render.Match(m))
	return nil
}

// runLogin はログインし、取得したプロフィールをセッションに保存する。
func (a *App) runLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ticketgate login <email> <password>")
	}

	token, err := a.ticketing.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	a.session.SetToken(token)

	// トークンを保持した状態でプロフィールを取得して永続化する
	u, err := a.ticketing.Profile(ctx)
	if err != nil {
		return err
	}
	a.session.Login(u)

	slog.Info("logged in", slog.Int("user_id", u.ID))
	fmt.Fprintln(a.out, render.User(u))
	return nil
}

// runSignup は新規アカウントを登録し、そのままログイン状態にする。
func (a *App) runSignup(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("signup", pflag.ContinueOnError)
	flags.SetOutput(a.out)
	firstName := flags.String("first-name", "", "名")
	lastName := flags.String("last-name", "", "姓")
	email := flags.String("email", "", "メールアドレス")
	password := flags.String("password", "", "パスワード")
	phone := flags.String("phone", "", "電話番号")
	birthdate := flags.String("birthdate", "", "生年月日 (ISO-8601)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" || *firstName == "" || *lastName == "" {
		return fmt.Errorf("signup requires --first-name, --last-name, --email and --password")
	}

	token, err := a.ticketing.Signup(ctx, ticketing.SignupRequest{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
		Phone:     *phone,
		Birthdate: *birthdate,
	})
	if err != nil {
		return err
	}
	a.session.SetToken(token)

	u, err := a.ticketing.Profile(ctx)
	if err != nil {
		return err
	}
	a.session.Login(u)

	slog.Info("account created", slog.Int("user_id", u.ID))
	fmt.Fprintln(a.out, render.User(u))
	return nil
}

// runLogout はセッションを破棄する。未ログインでも害はない。
func (a *App) runLogout() error {
	a.session.Logout()
	fmt.Fprintln(a.out, "ログアウトしました。")
	return nil
}

// runProfile はプロフィールを取得して表示する。
// 取得結果でローカルの保存済みユーザーも更新する。
func (a *App) runProfile(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	u, err := a.ticketing.Profile(ctx)
	if err != nil {
		return err
	}
	a.session.Login(u)

	fmt.Fprintln(a.out, render.User(u))
	return nil
}

// runUpdateProfile はプロフィールを更新する。
// 未指定のフィールドはローカルの保存済みユーザーの値を引き継ぐ。
func (a *App) runUpdateProfile(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	current := a.session.Current()

	flags := pflag.NewFlagSet("update-profile", pflag.ContinueOnError)
	flags.SetOutput(a.out)
	firstName := flags.String("first-name", current.FirstName, "名")
	lastName := flags.String("last-name", current.LastName, "姓")
	email := flags.String("email", current.Email, "メールアドレス")
	password := flags.String("password", "", "新しいパスワード")
	phone := flags.String("phone", current.Phone, "電話番号")
	birthdate := flags.String("birthdate", current.Birthdate, "生年月日 (ISO-8601)")
	nationality := flags.String("nationality", current.Nationality, "国籍")
	imagePath := flags.String("image", "", "プロフィール画像のファイルパス")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var image io.Reader
	var imageName string
	if *imagePath != "" {
		f, err := os.Open(*imagePath)
		if err != nil {
			return fmt.Errorf("failed to open image file: %w", err)
		}
		defer f.Close()
		image = f
		imageName = f.Name()
	}

	u, err := a.ticketing.UpdateProfile(ctx, ticketing.ProfileUpdateRequest{
		FirstName:   *firstName,
		LastName:    *lastName,
		Email:       *email,
		Password:    *password,
		Phone:       *phone,
		Birthdate:   *birthdate,
		Nationality: *nationality,
	}, image, imageName)
	if err != nil {
		return err
	}
	a.session.Login(u)

	slog.Info("profile updated", slog.Int("user_id", u.ID))
	fmt.Fprintln(a.out, render.User(u))
	return nil
}

// runBuy は指定された試合のチケットを購入する。
// 試合IDは複数指定でき、いったんカートに積んでから1件ずつ購入する。
// 重複したIDはカートの重複排除により1回だけ購入される。
func (a *App) runBuy(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	flags := pflag.NewFlagSet("buy", pflag.ContinueOnError)
	flags.SetOutput(a.out)
	seat := flags.Int("seat", 0, "座席番号")
	cardType := flags.String("card-type", "", "カード種別 (visa, mastercard など)")
	cardNumber := flags.String("card-number", "", "カード番号 (16桁)")
	cardHolder := flags.String("card-holder", "", "カード名義人")
	expires := flags.String("expires", "", "有効期限 (MM/YY)")
	cvv := flags.String("cvv", "", "CVVコード")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("usage: ticketgate buy <match-id>... [flags]")
	}

	// 1. 指定された試合をカートに積む
	for _, arg := range flags.Args() {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid match id: %s", arg)
		}
		m := a.matches.GetByID(ctx, id)
		if m == nil {
			return model.NewMatchNotFoundError(id)
		}
		if !a.cart.Add(model.CartLineFromMatch(m)) {
			slog.Warn("match already in cart, skipping duplicate", slog.Int("match_id", id))
		}
	}

	fmt.Fprintln(a.out, render.Cart(a.cart.Lines()))

	// 2. カートの行を1件ずつ購入する。成功した行はカートから取り除く。
	for _, line := range a.cart.Lines() {
		m := a.matches.GetByID(ctx, line.ID)
		if m == nil {
			return model.NewMatchNotFoundError(line.ID)
		}

		order := model.TicketOrder{
			HomeTeamName:   m.Teams.Home.Name,
			AwayTeamName:   m.Teams.Away.Name,
			MatchDate:      m.Fixture.Date,
			SeatNumber:     *seat,
			CardType:       *cardType,
			CardNumber:     *cardNumber,
			CardHolderName: *cardHolder,
			ExpirationDate: *expires,
			CVVCode:        *cvv,
		}
		if m.Fixture.Venue != nil {
			order.VenueName = m.Fixture.Venue.Name
			order.VenueCity = m.Fixture.Venue.City
		}

		if err := ticketing.ValidateOrder(order); err != nil {
			return err
		}

		ticket, err := a.ticketing.CreateTicket(ctx, order)
		if err != nil {
			return err
		}
		a.cart.Remove(line.ID)

		slog.Info("ticket purchased",
			slog.Int("match_id", line.ID),
			slog.String("ticket_id", ticket.ID),
		)
		fmt.Fprintln(a.out, render.Ticket(ticket))
	}

	return nil
}

// runTickets は購入済みチケットの一覧を表示する。
func (a *App) runTickets(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	tickets, err := a.ticketing.Tickets(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, render.Tickets(tickets))
	return nil
}

// runTicket は購入済みチケット1枚を表示する。
func (a *App) runTicket(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: ticketgate ticket <id>")
	}

	ticket, err := a.ticketing.Ticket(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, render.Ticket(ticket))
	return nil
}
