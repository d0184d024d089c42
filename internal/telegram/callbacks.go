package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"travel-planner/internal/localstore"
	"travel-planner/internal/trip"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCallbackQuery routes inline-button presses. Callback data is
// "action|arg|arg...".
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Acknowledge immediately so the button stops spinning.
	if _, err := b.tg.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Error().Err(err).Msg("failed to ack callback")
	}

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	parts := strings.Split(query.Data, "|")
	switch parts[0] {
	case "day":
		b.callbackSwitchDay(chatID, messageID, parts[1:])
	case "rm":
		b.callbackAskRemove(chatID, messageID, parts[1:])
	case "rmok":
		b.callbackConfirmRemove(chatID, messageID, parts[1:])
	case "rmno":
		b.renderPlan(chatID, messageID, b.session(chatID))
	case "hview":
		b.callbackViewTrip(chatID, parts[1:])
	case "hdel":
		b.callbackDeleteTrip(chatID, messageID, parts[1:])
	case "hclear":
		b.callbackClearHistory(chatID, messageID)
	default:
		b.logger.Warn().Str("data", query.Data).Msg("unknown callback")
	}
}

func (b *Bot) callbackSwitchDay(chatID int64, messageID int, args []string) {
	if len(args) < 1 {
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}

	sess := b.session(chatID)
	if !sess.SwitchDay(idx) {
		return
	}
	b.renderPlan(chatID, messageID, sess)
}

// callbackAskRemove swaps the plan keyboard for a confirm/cancel pair. The
// item's current name goes into the prompt so the user sees exactly what a
// confirm will delete.
func (b *Bot) callbackAskRemove(chatID int64, messageID int, args []string) {
	if len(args) < 3 {
		return
	}
	blockID := args[0]
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return
	}
	gen, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return
	}

	sess := b.session(chatID)
	if gen != sess.Generation() {
		// Button belongs to a plan that has since been replaced.
		b.renderPlan(chatID, messageID, sess)
		return
	}

	day, _, ok := sess.ActiveDay()
	if !ok {
		return
	}
	items := day.Blocks[blockID]
	if idx < 0 || idx >= len(items) {
		b.renderPlan(chatID, messageID, sess)
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Xóa", fmt.Sprintf("rmok|%s|%d|%d", blockID, idx, gen)),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Hủy", "rmno"),
		),
	)
	text := fmt.Sprintf("Bạn có chắc muốn xóa *%s* khỏi lịch trình?", items[idx].Name)
	b.edit(chatID, messageID, text, &keyboard)
}

func (b *Bot) callbackConfirmRemove(chatID int64, messageID int, args []string) {
	if len(args) < 3 {
		return
	}
	blockID := args[0]
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return
	}
	gen, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return
	}

	sess := b.session(chatID)
	if gen != sess.Generation() {
		b.renderPlan(chatID, messageID, sess)
		return
	}

	removed, err := sess.RemovePlace(blockID, idx)
	if err != nil {
		if err == trip.ErrStaleReference {
			// Plan changed between the prompt and the confirm; show the
			// current state and touch nothing.
			b.renderPlan(chatID, messageID, sess)
			return
		}
		b.editError(chatID, messageID, "Không xóa được địa điểm", err)
		return
	}

	_, days, _ := sess.View()
	if err := b.store.Put(localstore.KeyTrip, days); err != nil {
		b.logger.Warn().Err(err).Msg("failed to persist trip after removal")
	}

	b.renderPlan(chatID, messageID, sess)
	b.toast(chatID, fmt.Sprintf("🗑 Đã xóa *%s*.", removed.Name))
}

// callbackViewTrip loads one saved trip and installs it as the current plan
// via the local-storage relay key.
func (b *Bot) callbackViewTrip(chatID int64, args []string) {
	if len(args) < 1 {
		return
	}
	tripID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return
	}

	user, ok := b.currentUser()
	if !ok {
		b.reply(chatID, "🔐 Bạn cần /login để xem lịch sử.")
		return
	}

	ctx, cancel := b.opCtx()
	defer cancel()

	rec, err := b.client.TripDetail(ctx, user.ID, tripID)
	if err != nil {
		b.replyError(chatID, "Không tải được chuyến đi", err)
		return
	}

	if err := b.store.Put(localstore.KeyTripFromHistory, rec); err != nil {
		b.logger.Warn().Err(err).Msg("failed to relay trip from history")
	}
	b.handleTrip(chatID)
}

func (b *Bot) callbackDeleteTrip(chatID int64, messageID int, args []string) {
	if len(args) < 1 {
		return
	}
	tripID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return
	}

	user, ok := b.currentUser()
	if !ok {
		b.reply(chatID, "🔐 Bạn cần /login để xóa lịch sử.")
		return
	}

	ctx, cancel := b.opCtx()
	defer cancel()

	if err := b.client.DeleteTrip(ctx, user.ID, tripID); err != nil {
		b.replyError(chatID, "Không xóa được chuyến đi", err)
		return
	}

	b.deleteMessage(chatID, messageID)
	b.toast(chatID, fmt.Sprintf("🗑 Đã xóa chuyến đi #%d.", tripID))
	b.handleHistory(chatID)
}

func (b *Bot) callbackClearHistory(chatID int64, messageID int) {
	user, ok := b.currentUser()
	if !ok {
		b.reply(chatID, "🔐 Bạn cần /login để xóa lịch sử.")
		return
	}

	ctx, cancel := b.opCtx()
	defer cancel()

	if err := b.client.DeleteAllTrips(ctx, user.ID); err != nil {
		b.replyError(chatID, "Không xóa được lịch sử", err)
		return
	}

	b.deleteMessage(chatID, messageID)
	b.toast(chatID, "🗑 Đã xóa toàn bộ lịch sử.")
}
