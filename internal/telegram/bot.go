package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"travel-planner/internal/api"
	"travel-planner/internal/config"
	"travel-planner/internal/localstore"
	"travel-planner/internal/metrics"
	"travel-planner/internal/render"
	"travel-planner/internal/trip"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// toastDuration is how long transient confirmation messages stay visible.
const toastDuration = 3 * time.Second

// Bot wraps the Telegram API, the travel backend client, and local state.
type Bot struct {
	tg           *tgbotapi.BotAPI
	client       *api.Client
	store        *localstore.Store
	seen         *localstore.SeenStore
	metricsStore *metrics.Store
	cfg          *config.Config
	logger       zerolog.Logger

	mu       sync.Mutex
	sessions map[int64]*trip.Session
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(
	cfg *config.Config,
	client *api.Client,
	store *localstore.Store,
	seen *localstore.SeenStore,
	metricsStore *metrics.Store,
	logger zerolog.Logger,
) (*Bot, error) {
	tg, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	logger.Info().Str("account", tg.Self.UserName).Msg("authorized on telegram")

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := tg.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info().Str("response", resp.Description).Msg("webhook set")

	return &Bot{
		tg:           tg,
		client:       client,
		store:        store,
		seen:         seen,
		metricsStore: metricsStore,
		cfg:          cfg,
		logger:       logger.With().Str("component", "bot").Logger(),
		sessions:     make(map[int64]*trip.Session),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.tg.HandleUpdate(r)
	if err != nil {
		b.logger.Error().Err(err).Msg("error parsing update")
		return
	}

	if update.CallbackQuery != nil {
		if b.allowed(update.CallbackQuery.From.ID) {
			go b.handleCallbackQuery(update.CallbackQuery)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if !b.allowed(update.Message.From.ID) {
		b.logger.Warn().
			Int64("user_id", update.Message.From.ID).
			Str("username", update.Message.From.UserName).
			Msg("unauthorized access attempt")
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) allowed(userID int64) bool {
	if len(b.cfg.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// session returns the per-chat planning session, creating it on first use
// from whatever plan local storage holds.
func (b *Bot) session(chatID int64) *trip.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sessions[chatID]; ok {
		return s
	}

	s := trip.NewSession(trip.DefaultSearchConfig(time.Now()))
	var days trip.Days
	if ok, err := b.store.Get(localstore.KeyTrip, &days); err == nil && ok {
		s.Restore(s.Config(), days)
	}
	b.sessions[chatID] = s
	return s
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	cmd, args := splitCommand(text)

	switch cmd {
	case "/start", "/help":
		b.reply(msg.Chat.ID, helpText)
	case "/login":
		b.handleLogin(msg.Chat.ID, args)
	case "/register":
		b.handleRegister(msg.Chat.ID, args)
	case "/plan":
		b.handlePlan(msg.Chat.ID, args)
	case "/trip":
		b.handleTrip(msg.Chat.ID)
	case "/day":
		b.handleDay(msg.Chat.ID, args)
	case "/places":
		b.handlePlaces(msg.Chat.ID, args)
	case "/reset":
		b.handleResetSeen(msg.Chat.ID, args)
	case "/events":
		b.handleEvents(msg.Chat.ID, args)
	case "/history":
		b.handleHistory(msg.Chat.ID)
	case "/status":
		b.handleStatus(msg)
	default:
		b.reply(msg.Chat.ID, "Lệnh không hợp lệ. Gõ /help để xem danh sách lệnh.")
	}
}

const helpText = `🧭 *Smart Travelling*

/login <user> <pass> — đăng nhập
/register <user> <pass> — đăng ký
/plan [city] [yyyy-mm-dd] [days] — tạo lịch trình
/trip — xem lịch trình hiện tại
/day <n> — chuyển sang ngày n
/places <city> — gợi ý 5 địa điểm
/reset <city> — xóa lịch sử gợi ý
/events <city> <yyyy-mm-dd> — tìm lễ hội
/history — lịch sử chuyến đi`

// --- auth ---

func (b *Bot) handleLogin(chatID int64, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Cú pháp: /login <username> <password>")
		return
	}

	ctx, cancel := b.opCtx()
	defer cancel()

	user, err := b.client.Login(ctx, args[0], args[1])
	if err != nil {
		b.replyError(chatID, "Đăng nhập thất bại", err)
		return
	}

	if err := b.store.Put(localstore.KeyUser, user); err != nil {
		b.logger.Warn().Err(err).Msg("failed to persist user")
	}
	b.reply(chatID, fmt.Sprintf("✅ Xin chào *%s*!", user.Username))
}

func (b *Bot) handleRegister(chatID int64, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Cú pháp: /register <username> <password>")
		return
	}

	ctx, cancel := b.opCtx()
	defer cancel()

	message, err := b.client.Register(ctx, args[0], args[1])
	if err != nil {
		b.replyError(chatID, "Đăng ký thất bại", err)
		return
	}
	if message == "" {
		message = "Đăng ký thành công, hãy /login."
	}
	b.reply(chatID, "✅ "+message)
}

// --- trip generation and viewing ---

func (b *Bot) handlePlan(chatID int64, args []string) {
	sess := b.session(chatID)
	cfg := sess.Config()
	if len(args) > 0 {
		cfg.City = args[0]
	}
	if len(args) > 1 {
		cfg.StartDate = args[1]
	}
	if len(args) > 2 {
		if n, err := strconv.Atoi(args[2]); err == nil {
			cfg.NumDays = n
		}
	}

	if err := cfg.Validate(); err != nil {
		b.reply(chatID, "⚠️ "+err.Error())
		return
	}

	statusMsg := tgbotapi.NewMessage(chatID, "🧭 *Đang tạo lịch trình...*")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.tg.Send(statusMsg)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to send initial reply")
		return
	}

	// Overlapping /plan calls race; only the newest token may install its
	// result.
	token := sess.Begin()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	days, err := b.client.GenerateTrip(ctx, cfg)
	if err != nil {
		b.editError(chatID, sent.MessageID, "Lỗi tạo lịch trình", err)
		return
	}

	if !sess.Apply(token, cfg, days) {
		b.logger.Info().Uint64("token", token).Msg("discarding stale trip generation result")
		b.edit(chatID, sent.MessageID, "⏳ Yêu cầu này đã bị thay thế bởi một yêu cầu mới hơn.", nil)
		return
	}

	if err := b.store.Put(localstore.KeyTrip, days); err != nil {
		b.logger.Warn().Err(err).Msg("failed to persist trip")
	}

	b.renderPlan(chatID, sent.MessageID, sess)
}

func (b *Bot) handleTrip(chatID int64) {
	sess := b.session(chatID)

	// One-shot relay from the history view: a viewed trip replaces the
	// current plan once, then the relay key is cleared.
	var rec api.TripRecord
	if ok, err := b.store.Get(localstore.KeyTripFromHistory, &rec); err == nil && ok {
		cfg := sess.Config()
		cfg.City = rec.City
		cfg.NumDays = rec.NumDays
		if rec.NumPeople > 0 {
			cfg.NumPeople = rec.NumPeople
		}
		sess.Restore(cfg, rec.Days)
		_ = b.store.Delete(localstore.KeyTripFromHistory)
		if err := b.store.Put(localstore.KeyTrip, rec.Days); err != nil {
			b.logger.Warn().Err(err).Msg("failed to persist relayed trip")
		}
	}

	_, days, _ := sess.View()
	if len(days) == 0 {
		b.reply(chatID, "Chưa có lịch trình nào. Dùng /plan để tạo.")
		return
	}
	b.renderPlan(chatID, 0, sess)
}

func (b *Bot) handleDay(chatID int64, args []string) {
	if len(args) < 1 {
		b.reply(chatID, "Cú pháp: /day <số ngày>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(chatID, "Số ngày không hợp lệ.")
		return
	}

	sess := b.session(chatID)
	if !sess.SwitchDay(n - 1) {
		b.reply(chatID, "Không có ngày này trong lịch trình.")
		return
	}
	b.renderPlan(chatID, 0, sess)
}

// renderPlan projects the session onto one message: header, day navigator,
// active day timeline, and the interactive keyboard. messageID zero sends a
// new message, otherwise the existing one is edited in place.
func (b *Bot) renderPlan(chatID int64, messageID int, sess *trip.Session) {
	cfg, days, active := sess.View()

	var sb strings.Builder
	sb.WriteString(render.Header(cfg, days))
	sb.WriteString("\n")
	sb.WriteString(render.DayNavigator(days, active))
	if active >= 0 && active < len(days) {
		sb.WriteString(render.DayTimeline(days[active]))
	}

	keyboard := planKeyboard(days, active, sess.Generation())
	if messageID == 0 {
		msg := tgbotapi.NewMessage(chatID, sb.String())
		msg.ParseMode = "Markdown"
		msg.ReplyMarkup = keyboard
		b.send(msg)
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, sb.String())
	edit.ParseMode = "Markdown"
	edit.ReplyMarkup = &keyboard
	b.send(edit)
}

// planKeyboard builds the day pills and one remove button per item of the
// active day. Callback payloads carry the generation token so clicks on a
// replaced plan are ignored.
func planKeyboard(days trip.Days, active int, gen uint64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var dayRow []tgbotapi.InlineKeyboardButton
	for i := range days {
		label := fmt.Sprintf("Ngày %d", i+1)
		if i == active {
			label = "· " + label + " ·"
		}
		dayRow = append(dayRow, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("day|%d", i)))
		if len(dayRow) == 5 {
			rows = append(rows, dayRow)
			dayRow = nil
		}
	}
	if len(dayRow) > 0 {
		rows = append(rows, dayRow)
	}

	if active >= 0 && active < len(days) {
		for _, block := range trip.BlockConfig {
			for idx, item := range days[active].Blocks[block.ID] {
				label := "🗑 " + truncateLabel(item.Name, 24)
				data := fmt.Sprintf("rm|%s|%d|%d", block.ID, idx, gen)
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(label, data),
				))
			}
		}
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// --- visitor places ---

func (b *Bot) handlePlaces(chatID int64, args []string) {
	if len(args) < 1 {
		b.reply(chatID, "Cú pháp: /places <thành phố>")
		return
	}
	city := strings.Join(args, " ")

	ctx, cancel := b.opCtx()
	defer cancel()

	currentSeen := b.seen.Load(city)
	rec, err := b.client.RecommendPlaces(ctx, city, currentSeen, 5)
	if err != nil {
		b.replyError(chatID, "Lỗi khi gợi ý địa điểm", err)
		return
	}

	// The server's list replaces ours outright; it is the authority on what
	// has been seen.
	if err := b.seen.Replace(city, rec.SeenIDs); err != nil {
		b.logger.Warn().Err(err).Str("city", city).Msg("failed to persist seen ids")
	}

	b.reply(chatID, render.Places(rec))
}

func (b *Bot) handleResetSeen(chatID int64, args []string) {
	if len(args) < 1 {
		b.reply(chatID, "Cú pháp: /reset <thành phố>")
		return
	}
	city := strings.Join(args, " ")
	if err := b.seen.Clear(city); err != nil {
		b.replyError(chatID, "Không xóa được lịch sử gợi ý", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Đã xóa lịch sử gợi ý cho *%s*.", city))
}

// --- events ---

func (b *Bot) handleEvents(chatID int64, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Cú pháp: /events <thành phố> <yyyy-mm-dd>")
		return
	}
	city := strings.Join(args[:len(args)-1], " ")
	targetDate := args[len(args)-1]

	ctx, cancel := b.opCtx()
	defer cancel()

	events, err := b.client.ListEvents(ctx, api.EventFilter{City: city, TargetDate: targetDate})
	if err != nil {
		b.replyError(chatID, "Không thể tải danh sách sự kiện", err)
		return
	}
	b.reply(chatID, render.EventsList(events, city, targetDate))
}

// --- history ---

func (b *Bot) handleHistory(chatID int64) {
	user, ok := b.currentUser()
	if !ok {
		b.reply(chatID, "🔐 Bạn cần /login để xem lịch sử.")
		return
	}

	ctx, cancel := b.opCtx()
	defer cancel()

	h, err := b.client.TripHistory(ctx, user.ID)
	if err != nil {
		b.replyError(chatID, "Lỗi tải lịch sử", err)
		return
	}

	dates := make([]string, 0, len(h.TripsByDate))
	for d := range h.TripsByDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	msg := tgbotapi.NewMessage(chatID, render.History(h, dates))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = historyKeyboard(h, dates)
	b.send(msg)
}

func historyKeyboard(h *api.History, dates []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, date := range dates {
		for _, t := range h.TripsByDate[date] {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("👁 #%d %s", t.ID, truncateLabel(t.City, 16)),
					fmt.Sprintf("hview|%d", t.ID)),
				tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("hdel|%d", t.ID)),
			))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Xóa toàn bộ", "hclear"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// --- status (admin) ---

func (b *Bot) handleStatus(msg *tgbotapi.Message) {
	if b.cfg.AdminTelegramID == 0 || msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	health := metrics.GetSysHealth(b.cfg.DataDir)

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")
	sb.WriteString(fmt.Sprintf("⏳ Uptime: %s\n\n", time.Since(b.metricsStore.Started()).Round(time.Second)))

	sb.WriteString("🌐 *API Activity*\n")
	usage := b.metricsStore.Snapshot()
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, u := range usage {
		sb.WriteString(fmt.Sprintf("• `%s`: %d calls, %d errors, avg %dms\n",
			u.Operation, u.Count, u.Errors, u.AvgLatency().Milliseconds()))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	b.reply(msg.Chat.ID, sb.String())
}

// --- helpers ---

func (b *Bot) currentUser() (*api.User, bool) {
	var user api.User
	ok, err := b.store.Get(localstore.KeyUser, &user)
	if err != nil || !ok {
		return nil, false
	}
	return &user, true
}

func (b *Bot) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 45*time.Second)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.send(msg)
}

func (b *Bot) replyError(chatID int64, prefix string, err error) {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.reply(chatID, fmt.Sprintf("❌ *%s:*\n```\n%s\n```", prefix, safeErr))
}

func (b *Bot) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	edit.ReplyMarkup = keyboard
	b.send(edit)
}

func (b *Bot) editError(chatID int64, messageID int, prefix string, err error) {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.edit(chatID, messageID, fmt.Sprintf("❌ *%s:*\n```\n%s\n```", prefix, safeErr), nil)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.tg.Send(c); err != nil {
		b.logger.Error().Err(err).Msg("telegram send failed")
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.tg.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Error().Err(err).Msg("telegram delete failed")
	}
}

// toast sends a transient confirmation and removes it shortly after.
func (b *Bot) toast(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.tg.Send(msg)
	if err != nil {
		b.logger.Error().Err(err).Msg("telegram send failed")
		return
	}
	time.AfterFunc(toastDuration, func() {
		b.deleteMessage(chatID, sent.MessageID)
	})
}

func splitCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	cmd := fields[0]
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	return cmd, fields[1:]
}
