package telegram

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/ferpy/internal/config"
	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

const baseContextKey = "base_context"

// Pusher receives the owner's messages as spoken lines.
type Pusher interface {
	Push(ctx context.Context, line string) error
}

// Bot lets the owner talk to the robot remotely. Plain messages are heard
// as if spoken aloud; "/" messages go to the operator commands.
type Bot struct {
	bot     *tele.Bot
	sender  *sender
	inbox   Pusher
	router  core.CmdRouter
	ownerID int64
	quiet   bool
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	inbox Pusher,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		inbox:   inbox,
		router:  router,
		ownerID: cfg.OwnerID,
		quiet:   cfg.QuietSpeech,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(ownerOnly(bot.ownerID))

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func ownerOnly(ownerID int64) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != ownerID {
				return nil
			}
			return next(c)
		}
	}
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	if out, ok := b.router.Execute(ctx, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Recipient(), out, false)
	}

	_ = c.Notify(tele.Typing)
	if err := b.inbox.Push(ctx, c.Text()); err != nil {
		logger.Warn().Err(err).Msg("robot is not listening")
	}
	return nil
}

// Speak forwards what the robot says to the owner's chat.
func (b *Bot) Speak(ctx context.Context, text, lang string) error {
	return b.sender.sendMarkdown(ctx, &tele.User{ID: b.ownerID}, text, b.quiet)
}
