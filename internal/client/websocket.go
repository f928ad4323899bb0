package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WSClient is a thin WebSocket subscriber used for signature confirmation
// when the caller wants to fire a transaction and watch it land without
// holding the RPC confirm loop open.
type WSClient struct {
	url    string
	conn   *websocket.Conn
	logger *logrus.Logger

	mu      sync.Mutex
	nextID  int
	pending map[int]chan *SignatureResult // request id -> awaiting subscription
	subs    map[int]chan *SignatureResult // subscription id -> notification sink

	done chan struct{}
}

// SignatureResult carries the outcome of a watched signature. Err is nil
// when the transaction succeeded.
type SignatureResult struct {
	Slot uint64
	Err  interface{}
}

// wsMessage is the JSON-RPC frame shape for both requests and notifications.
type wsMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int            `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *wsError        `json:"error,omitempty"`
}

type wsError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *wsError) Error() string {
	return fmt.Sprintf("ws error %d: %s", e.Code, e.Message)
}

// signatureNotification mirrors the signatureNotification payload.
type signatureNotification struct {
	Subscription int `json:"subscription"`
	Result       struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Err interface{} `json:"err"`
		} `json:"value"`
	} `json:"result"`
}

// NewWSClient creates a signature-watch client for the given endpoint.
func NewWSClient(url string, logger *logrus.Logger) *WSClient {
	return &WSClient{
		url:     url,
		logger:  logger,
		nextID:  1,
		pending: make(map[int]chan *SignatureResult),
		subs:    make(map[int]chan *SignatureResult),
		done:    make(chan struct{}),
	}
}

// Connect establishes the WebSocket connection and starts the read loop.
func (ws *WSClient) Connect() error {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, resp, err := dialer.Dial(ws.url, nil)
	if err != nil {
		if resp != nil {
			ws.logger.WithFields(logrus.Fields{
				"status": resp.Status,
				"url":    ws.url,
			}).Error("WebSocket connection failed")
		}
		return fmt.Errorf("failed to connect to WebSocket: %w", err)
	}
	conn.SetReadLimit(1024 * 1024)

	ws.mu.Lock()
	ws.conn = conn
	ws.mu.Unlock()

	ws.logger.WithField("url", ws.url).Debug("WebSocket connected")

	go ws.readLoop()
	return nil
}

// Close tears down the connection and releases all watchers.
func (ws *WSClient) Close() error {
	close(ws.done)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.conn != nil {
		return ws.conn.Close()
	}
	return nil
}

// WaitForSignature subscribes to a transaction signature and blocks until
// the node reports it at the requested commitment, or the context ends.
func (ws *WSClient) WaitForSignature(ctx context.Context, signature, commitment string) (*SignatureResult, error) {
	ch := make(chan *SignatureResult, 1)

	id, err := ws.sendSubscribe(signature, commitment, ch)
	if err != nil {
		return nil, err
	}

	select {
	case result := <-ch:
		if result == nil {
			return nil, fmt.Errorf("subscription closed before notification")
		}
		return result, nil
	case <-ctx.Done():
		ws.dropRequest(id)
		return nil, ctx.Err()
	case <-ws.done:
		return nil, fmt.Errorf("websocket closed")
	}
}

func (ws *WSClient) sendSubscribe(signature, commitment string, ch chan *SignatureResult) (int, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.conn == nil {
		return 0, fmt.Errorf("websocket not connected")
	}

	id := ws.nextID
	ws.nextID++
	ws.pending[id] = ch

	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "signatureSubscribe",
		"params": []interface{}{
			signature,
			map[string]string{"commitment": commitment},
		},
	}

	if err := ws.conn.WriteJSON(request); err != nil {
		delete(ws.pending, id)
		return 0, fmt.Errorf("failed to send signatureSubscribe: %w", err)
	}

	ws.logger.WithFields(logrus.Fields{
		"signature":  signature,
		"commitment": commitment,
		"request_id": id,
	}).Debug("Signature subscription sent")

	return id, nil
}

func (ws *WSClient) dropRequest(id int) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	delete(ws.pending, id)
}

// readLoop dispatches subscription confirmations and signature
// notifications until the connection closes.
func (ws *WSClient) readLoop() {
	for {
		select {
		case <-ws.done:
			return
		default:
		}

		var msg wsMessage
		if err := ws.conn.ReadJSON(&msg); err != nil {
			select {
			case <-ws.done:
			default:
				ws.logger.WithError(err).Debug("WebSocket read loop ended")
			}
			ws.failAll()
			return
		}

		switch {
		case msg.ID != nil:
			ws.handleSubscribeReply(&msg)
		case msg.Method == "signatureNotification":
			ws.handleNotification(&msg)
		}
	}
}

// handleSubscribeReply maps a request id onto the subscription id the node
// assigned.
func (ws *WSClient) handleSubscribeReply(msg *wsMessage) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ch, ok := ws.pending[*msg.ID]
	if !ok {
		return
	}
	delete(ws.pending, *msg.ID)

	if msg.Error != nil {
		ws.logger.WithError(msg.Error).Error("Signature subscription rejected")
		close(ch)
		return
	}

	var subID int
	if err := json.Unmarshal(msg.Result, &subID); err != nil {
		ws.logger.WithError(err).Error("Malformed subscription reply")
		close(ch)
		return
	}
	ws.subs[subID] = ch
}

func (ws *WSClient) handleNotification(msg *wsMessage) {
	var notification signatureNotification
	if err := json.Unmarshal(msg.Params, &notification); err != nil {
		ws.logger.WithError(err).Debug("Malformed signature notification")
		return
	}

	ws.mu.Lock()
	ch, ok := ws.subs[notification.Subscription]
	if ok {
		delete(ws.subs, notification.Subscription)
	}
	ws.mu.Unlock()

	if !ok {
		return
	}

	ch <- &SignatureResult{
		Slot: notification.Result.Context.Slot,
		Err:  notification.Result.Value.Err,
	}
}

// failAll releases every watcher after the connection drops. A signature
// subscription is one-shot on the node side, so there is nothing to resume.
func (ws *WSClient) failAll() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	for id, ch := range ws.pending {
		close(ch)
		delete(ws.pending, id)
	}
	for id, ch := range ws.subs {
		close(ch)
		delete(ws.subs, id)
	}
}
