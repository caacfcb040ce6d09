package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/gorilla/websocket"
)

// HTTPHandler serves a single request/response cycle over plain HTTP,
// following the GraphQL-over-HTTP convention: POST a JSON body shaped like
// Params, or GET with "query"/"operationName"/"variables" query parameters.
// A response that used @defer/@stream is written back as a
// "multipart/mixed" body, one part for the initial payload and one per
// patch, instead of a single JSON object. Do has already collected every
// patch by the time the body is written.
func HTTPHandler(schema *Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paramsFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		params.Context = WithRequestContext(r.Context(), &RequestContext{Request: r, Writer: w})

		resp, err := Do(schema, params)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if !resp.HasNext() {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
			return
		}
		streamIncremental(w, resp)
	}
}

func paramsFromRequest(r *http.Request) (Params, error) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		var vars map[string]interface{}
		if raw := q.Get("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &vars); err != nil {
				return Params{}, fmt.Errorf("invalid variables: %w", err)
			}
		}
		return Params{Query: q.Get("query"), OperationName: q.Get("operationName"), Variables: vars}, nil
	}

	var params Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		return Params{}, fmt.Errorf("invalid request body: %w", err)
	}
	return params, nil
}

// streamIncremental writes the initial payload followed by every queued
// patch as its own multipart section, in the completion order the
// Dispatcher already produced them in.
func streamIncremental(w http.ResponseWriter, resp *Response) {
	mw := multipart.NewWriter(w)
	w.Header().Set("Content-Type", fmt.Sprintf("multipart/mixed; boundary=%s", mw.Boundary()))
	w.Header().Set("Transfer-Encoding", "chunked")

	flusher, _ := w.(http.Flusher)
	writePart := func(body []byte) {
		part, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json"}})
		if err != nil {
			return
		}
		part.Write(body)
		if flusher != nil {
			flusher.Flush()
		}
	}

	initial, _ := json.Marshal(resp)
	writePart(initial)
	for i, patch := range resp.Incremental {
		body, _ := PatchJSON(patch, i < len(resp.Incremental)-1)
		writePart(body)
	}
	mw.Close()
}

// wsUpgrader accepts connections from any origin; a production deployment
// behind a browser client should replace CheckOrigin with a real allowlist.
var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is one frame of the graphql-transport-ws subprotocol this
// handler speaks: a connection init handshake, one "subscribe" per
// operation, one "next" per delivered event, and a terminal "complete" or
// "error".
type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WebsocketHandler upgrades the connection and speaks a minimal
// graphql-transport-ws: after "connection_init"/"connection_ack", each
// "subscribe" message runs its operation through Subscribe, which accepts
// only subscription operations (a query or mutation is answered with an
// "error" message); a subscription keeps emitting "next" until its event
// source closes or the socket does.
func WebsocketHandler(schema *Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			switch msg.Type {
			case "connection_init":
				conn.WriteJSON(wsMessage{Type: "connection_ack"})
			case "subscribe":
				go serveWSOperation(r.Context(), schema, conn, msg)
			case "complete":
				return
			}
		}
	}
}

func serveWSOperation(ctx context.Context, schema *Schema, conn *websocket.Conn, msg wsMessage) {
	var params Params
	if err := json.Unmarshal(msg.Payload, &params); err != nil {
		conn.WriteJSON(wsMessage{ID: msg.ID, Type: "error", Payload: errorPayload(err)})
		return
	}
	params.Context = ctx

	events, err := Subscribe(ctx, schema, params)
	if err != nil {
		conn.WriteJSON(wsMessage{ID: msg.ID, Type: "error", Payload: errorPayload(err)})
		return
	}
	for resp := range events {
		payload, _ := json.Marshal(resp)
		conn.WriteJSON(wsMessage{ID: msg.ID, Type: "next", Payload: payload})
	}
	conn.WriteJSON(wsMessage{ID: msg.ID, Type: "complete"})
}

func errorPayload(err error) json.RawMessage {
	body, _ := json.Marshal([]struct {
		Message string `json:"message"`
	}{{Message: err.Error()}})
	return body
}
