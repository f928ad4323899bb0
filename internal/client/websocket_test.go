package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

func testWSLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// subscribeRequest mirrors the outgoing signatureSubscribe frame so the test
// server can decode it.
type subscribeRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// newTestWSClient starts a WebSocket server running serve on each connection
// and returns a connected client.
func newTestWSClient(t *testing.T, serve func(t *testing.T, conn *websocket.Conn)) *WSClient {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		serve(t, conn)
	}))
	t.Cleanup(server.Close)

	ws := NewWSClient("ws"+strings.TrimPrefix(server.URL, "http"), testWSLogger())
	if err := ws.Connect(); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func readSubscribe(t *testing.T, conn *websocket.Conn) subscribeRequest {
	t.Helper()
	var req subscribeRequest
	if err := conn.ReadJSON(&req); err != nil {
		t.Errorf("failed to read subscribe request: %v", err)
	}
	return req
}

func writeSubscribeReply(t *testing.T, conn *websocket.Conn, requestID, subscriptionID int) {
	t.Helper()
	err := conn.WriteJSON(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      requestID,
		"result":  subscriptionID,
	})
	if err != nil {
		t.Errorf("failed to write subscribe reply: %v", err)
	}
}

func writeNotification(t *testing.T, conn *websocket.Conn, subscriptionID int, slot uint64, txErr interface{}) {
	t.Helper()
	err := conn.WriteJSON(map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "signatureNotification",
		"params": map[string]interface{}{
			"subscription": subscriptionID,
			"result": map[string]interface{}{
				"context": map[string]interface{}{"slot": slot},
				"value":   map[string]interface{}{"err": txErr},
			},
		},
	})
	if err != nil {
		t.Errorf("failed to write notification: %v", err)
	}
}

func TestWaitForSignatureSuccess(t *testing.T) {
	ws := newTestWSClient(t, func(t *testing.T, conn *websocket.Conn) {
		req := readSubscribe(t, conn)
		if req.Method != "signatureSubscribe" {
			t.Errorf("method = %q, want signatureSubscribe", req.Method)
		}
		if len(req.Params) != 2 || req.Params[0] != "sigAAA" {
			t.Errorf("params = %v, want signature first", req.Params)
		}
		writeSubscribeReply(t, conn, req.ID, 21)
		writeNotification(t, conn, 21, 5150, nil)
		conn.ReadMessage() // hold the connection until the client is done
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := ws.WaitForSignature(ctx, "sigAAA", "confirmed")
	if err != nil {
		t.Fatalf("WaitForSignature() error: %v", err)
	}
	if result.Slot != 5150 {
		t.Errorf("slot = %d, want 5150", result.Slot)
	}
	if result.Err != nil {
		t.Errorf("transaction error = %v, want nil", result.Err)
	}
}

func TestWaitForSignatureTransactionError(t *testing.T) {
	ws := newTestWSClient(t, func(t *testing.T, conn *websocket.Conn) {
		req := readSubscribe(t, conn)
		writeSubscribeReply(t, conn, req.ID, 7)
		writeNotification(t, conn, 7, 100, map[string]interface{}{
			"InstructionError": []interface{}{0, "Custom"},
		})
		conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := ws.WaitForSignature(ctx, "sigBBB", "confirmed")
	if err != nil {
		t.Fatalf("WaitForSignature() error: %v", err)
	}
	if result.Err == nil {
		t.Fatal("expected transaction error in result")
	}
}

func TestWaitForSignatureRejectedSubscription(t *testing.T) {
	ws := newTestWSClient(t, func(t *testing.T, conn *websocket.Conn) {
		req := readSubscribe(t, conn)
		err := conn.WriteJSON(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]interface{}{"code": -32602, "message": "Invalid param"},
		})
		if err != nil {
			t.Errorf("failed to write error reply: %v", err)
		}
		conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ws.WaitForSignature(ctx, "sigCCC", "confirmed")
	if err == nil {
		t.Fatal("expected error for rejected subscription")
	}
	if !strings.Contains(err.Error(), "subscription closed") {
		t.Errorf("error = %v, want subscription closed", err)
	}
}

func TestWaitForSignatureContextCancel(t *testing.T) {
	ws := newTestWSClient(t, func(t *testing.T, conn *websocket.Conn) {
		req := readSubscribe(t, conn)
		writeSubscribeReply(t, conn, req.ID, 3)
		// never send a notification
		conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := ws.WaitForSignature(ctx, "sigDDD", "confirmed")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestWaitForSignatureConnectionDrop(t *testing.T) {
	ws := newTestWSClient(t, func(t *testing.T, conn *websocket.Conn) {
		req := readSubscribe(t, conn)
		writeSubscribeReply(t, conn, req.ID, 9)
		conn.Close() // drop before any notification
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ws.WaitForSignature(ctx, "sigEEE", "confirmed")
	if err == nil {
		t.Fatal("expected error after connection drop")
	}
}
