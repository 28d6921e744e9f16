package whatsapp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	"github.com/nahidhasan98/script-drift/internal/errors"
	"github.com/nahidhasan98/script-drift/internal/logger"
)

// Options configures the client
type Options struct {
	DBDriver   string
	DBDSN      string
	LogLevel   string
	DeviceName string
	QRWriter   io.Writer
}

// Client is a linked WhatsApp device used to deliver drift reports
type Client struct {
	wa        *whatsmeow.Client
	container *sqlstore.Container
	log       *logger.Logger
	qrOut     io.Writer

	mu        sync.RWMutex
	connected bool
	backoff   Backoff
	stopRetry context.CancelFunc
}

// New opens the session store and prepares the device. It does not connect.
func New(ctx context.Context, opts Options, log *logger.Logger) (*Client, error) {
	container, err := sqlstore.New(ctx, opts.DBDriver, opts.DBDSN, waLog.Stdout("Database", opts.LogLevel, true))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load device: %w", err)
	}

	name := opts.DeviceName
	if name == "" {
		name = "Script Drift"
	}
	store.SetOSInfo(name, [3]uint32{0, 1, 0})
	device.Platform = name

	qrOut := opts.QRWriter
	if qrOut == nil {
		qrOut = os.Stdout
	}

	c := &Client{
		wa:        whatsmeow.NewClient(device, waLog.Stdout("Client", opts.LogLevel, true)),
		container: container,
		log:       log.With("component", "whatsapp"),
		qrOut:     qrOut,
		backoff:   DefaultBackoff,
	}
	c.wa.AddEventHandler(c.handleEvent)

	return c, nil
}

func (c *Client) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Connected:
		c.mu.Lock()
		c.connected = true
		if c.stopRetry != nil {
			c.stopRetry()
			c.stopRetry = nil
		}
		c.mu.Unlock()
		c.log.Info("WhatsApp client connected")

	case *events.Disconnected:
		c.mu.Lock()
		c.connected = false
		retrying := c.stopRetry != nil
		c.mu.Unlock()

		c.log.Warn("WhatsApp client disconnected")
		if !retrying {
			go c.reconnect()
		}

	case *events.LoggedOut:
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		c.log.Warnf("WhatsApp session logged out: %v", v.Reason)

	case *events.StreamError:
		c.log.Errorf("WhatsApp stream error: %s", v.Code)
	}
}

func (c *Client) reconnect() {
	c.mu.Lock()
	if c.connected || c.stopRetry != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.stopRetry = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.stopRetry = nil
		c.mu.Unlock()
		cancel()
	}()

	for attempt := 1; attempt <= c.backoff.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff.Delay(attempt)):
		}

		if c.wa.IsConnected() {
			c.setConnected(true)
			return
		}

		c.log.Infof("Reconnection attempt %d/%d", attempt, c.backoff.MaxRetries)
		if err := c.wa.Connect(); err != nil {
			c.log.Errorf("Reconnection attempt %d failed: %v", attempt, err)
			continue
		}
		return
	}

	c.log.Error("All reconnection attempts failed", nil)
}

// Connect resumes a stored session, or starts QR pairing in the background
// when the device has never been linked
func (c *Client) Connect(ctx context.Context) error {
	if c.wa.Store.ID == nil {
		c.log.Info("No existing session found, starting QR pairing")
		go c.pair(ctx)
		return nil
	}

	c.log.Info("Existing session found, connecting")
	if err := c.wa.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.setConnected(true)
	c.log.Infof("Connected as %s", c.wa.Store.ID.String())
	return nil
}

func (c *Client) pair(ctx context.Context) {
	const attempts = 5

	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return
		}

		qrCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		ok, stop := c.pairOnce(ctx, qrCtx)
		cancel()

		if stop {
			return
		}
		if ok {
			c.setConnected(true)
			c.log.Info("WhatsApp pairing successful")
			return
		}

		c.log.Warnf("Pairing attempt %d/%d failed", attempt, attempts)
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}

	c.log.Error("Failed to pair after multiple attempts", nil)
}

// pairOnce shows one QR code. It reports whether pairing succeeded and
// whether the parent context ended.
func (c *Client) pairOnce(ctx, qrCtx context.Context) (bool, bool) {
	qrChan, err := c.wa.GetQRChannel(qrCtx)
	if err != nil {
		c.log.Errorf("Failed to get QR channel: %v", err)
		return false, false
	}

	if !c.wa.IsConnected() {
		if err := c.wa.Connect(); err != nil {
			c.log.Errorf("Failed to connect for pairing: %v", err)
			return false, false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return false, true
		case <-qrCtx.Done():
			return false, false
		case evt, open := <-qrChan:
			if !open {
				return false, ctx.Err() != nil
			}
			switch evt.Event {
			case "code":
				c.printQR(evt.Code)
			case "success":
				return true, false
			case "timeout":
				c.log.Warn("QR code expired")
				return false, false
			default:
				c.log.Infof("Pairing event: %s", evt.Event)
			}
		}
	}
}

func (c *Client) printQR(code string) {
	rule := strings.Repeat("=", 64)
	fmt.Fprintf(c.qrOut, "\n%s\nScan with WhatsApp: Settings > Linked Devices > Link a Device\n%s\n", rule, rule)
	qrterminal.GenerateWithConfig(code, qrterminal.Config{
		Level:      qrterminal.M,
		Writer:     c.qrOut,
		HalfBlocks: true,
		QuietZone:  1,
	})
	fmt.Fprintf(c.qrOut, "%s\n\n", rule)
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

// Disconnect stops reconnection and closes the session
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.stopRetry != nil {
		c.stopRetry()
		c.stopRetry = nil
	}
	c.connected = false
	c.mu.Unlock()

	c.wa.Disconnect()
	if err := c.container.Close(); err != nil {
		c.log.Errorf("Failed to close session store: %v", err)
	}
	c.log.Info("Disconnected from WhatsApp")
}

// IsConnected reports whether messages can be sent right now
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.wa.IsConnected() && c.wa.Store.ID != nil
}

// Status describes the session for the health endpoint
func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Status{
		Connected:    c.connected && c.wa.IsConnected() && c.wa.Store.ID != nil,
		Reconnecting: c.stopRetry != nil,
	}
	if c.wa.Store.ID != nil {
		st.Device = c.wa.Store.ID.String()
	}
	return st
}

// SendText delivers text to a user or group JID
func (c *Client) SendText(ctx context.Context, to string, text string) error {
	jid, err := ParseRecipient(to)
	if err != nil {
		return err
	}
	if !c.IsConnected() {
		return errors.ClientNotConnected()
	}

	msg := &waE2E.Message{Conversation: proto.String(text)}
	if _, err := c.wa.SendMessage(ctx, jid, msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	c.log.Debugf("Message sent to %s", jid.String())
	return nil
}

// ParseRecipient parses a user or group JID
func ParseRecipient(to string) (types.JID, error) {
	jid, err := types.ParseJID(strings.TrimSpace(to))
	if err != nil {
		return types.JID{}, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	if jid.User == "" || (jid.Server != types.DefaultUserServer && jid.Server != types.GroupServer) {
		return types.JID{}, fmt.Errorf("invalid recipient %q: expected a user or group JID", to)
	}
	return jid, nil
}
