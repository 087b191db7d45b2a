package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// HandlerFunc processes one inbound message and returns the reply text.
// An empty reply means no message is sent back.
type HandlerFunc func(ctx context.Context, sender, text string) string

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain applies middlewares so the first one listed is outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Gateway owns the WhatsApp connection and feeds inbound text messages to
// the handler. The sender principal handed to the handler is the phone
// part of the sender JID.
type Gateway struct {
	client  *whatsmeow.Client
	handler HandlerFunc
}

func NewGateway(ctx context.Context, sessionPath string, handler HandlerFunc) (*Gateway, error) {
	if err := os.MkdirAll(sessionPath, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(sessionPath, "session.db"))
	container, err := sqlstore.New(ctx, "sqlite3", dsn, waLog.Stdout("Database", "WARN", false))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("load device: %w", err)
	}

	g := &Gateway{
		client:  whatsmeow.NewClient(device, waLog.Stdout("Client", "WARN", false)),
		handler: handler,
	}
	g.client.AddEventHandler(g.handleEvent)
	return g, nil
}

// Start connects the client. On first use it runs the QR pairing flow,
// printing the code to the terminal until it is scanned.
func (g *Gateway) Start(ctx context.Context) error {
	if g.client.Store.ID == nil {
		qrChan, err := g.client.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("qr channel: %w", err)
		}
		if err := g.client.Connect(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		for evt := range qrChan {
			switch evt.Event {
			case "code":
				slog.Info("scan the QR code to pair")
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			case "success":
				slog.Info("pairing successful")
			default:
				slog.Info("pairing event", "event", evt.Event)
			}
		}
		return nil
	}
	return g.client.Connect()
}

func (g *Gateway) Close() {
	g.client.Disconnect()
}

func (g *Gateway) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		g.handleMessage(v)
	case *events.Connected:
		slog.Info("whatsapp connected")
	case *events.Disconnected:
		slog.Warn("whatsapp disconnected, waiting for reconnect")
	case *events.LoggedOut:
		slog.Error("session logged out, remove the session dir and pair again")
	}
}

func (g *Gateway) handleMessage(evt *events.Message) {
	if evt.Info.IsFromMe {
		return
	}
	text := messageText(evt)
	if text == "" {
		return
	}

	ctx := context.Background()
	reply := g.handler(ctx, evt.Info.Sender.User, text)
	if reply == "" {
		return
	}

	_, err := g.client.SendMessage(ctx, evt.Info.Chat, &waE2E.Message{
		Conversation: proto.String(reply),
	})
	if err != nil {
		slog.Error("send reply", "chat", evt.Info.Chat.String(), "error", err)
	}
}

func messageText(evt *events.Message) string {
	if t := evt.Message.GetConversation(); t != "" {
		return t
	}
	return evt.Message.GetExtendedTextMessage().GetText()
}
