package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/AdityaPradhan01/Bloom/internal/analysis"
	"github.com/AdityaPradhan01/Bloom/internal/app"
	"github.com/AdityaPradhan01/Bloom/internal/models"
	"github.com/AdityaPradhan01/Bloom/internal/session"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 1024, // snapshots carry embedded images
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, this should be more restrictive
	},
}

// Server bridges websocket clients to the application state machine.
// Each connection gets its own machine over the shared store, so parallel
// connections behave like multiple tabs of the same local session.
type Server struct {
	store    session.Store
	analyzer analysis.Analyzer
	clients  sync.Map
	debug    bool
}

func New(store session.Store, analyzer analysis.Analyzer, debug bool) *Server {
	if debug {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("Debug logging enabled")
	}
	return &Server{
		store:    store,
		analyzer: analyzer,
		debug:    debug,
	}
}

func (s *Server) Start(port, staticDir string) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)

	fs := http.FileServer(http.Dir(staticDir))
	http.Handle("/", fs)

	go func() {
		log.Printf("Starting server on port %s\n", port)
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down server...")
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	s.clients.Store(clientID, conn)
	defer s.clients.Delete(clientID)

	machine, err := app.NewMachine(r.Context(), s.store, s.analyzer)
	if err != nil {
		log.Println("Failed to initialize session:", err)
		return
	}
	s.sendState(conn, machine)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Println("Error reading message:", err)
			break
		}

		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Println("Error parsing message:", err)
			continue
		}

		s.dispatch(r.Context(), conn, machine, msg.Type, msg.Data)
	}
}

// dispatch maps one client intent to a machine event. Guard violations are
// programming errors of the client, logged and reported, never shown as
// analysis failures.
func (s *Server) dispatch(ctx context.Context, conn *websocket.Conn, machine *app.Machine, msgType string, data json.RawMessage) {
	var err error

	switch msgType {
	case "start":
		err = machine.Start()
	case "auth":
		var payload struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err = json.Unmarshal(data, &payload); err == nil {
			err = machine.Authenticate(ctx, payload.Email, payload.Name)
		}
	case "start_scan":
		err = machine.StartScan()
	case "quit_scan":
		err = machine.QuitScan()
	case "submit_image":
		s.handleSubmit(ctx, conn, machine, data)
		return
	case "view_record":
		var payload struct {
			ID string `json:"id"`
		}
		if err = json.Unmarshal(data, &payload); err == nil {
			err = machine.SelectRecord(payload.ID)
		}
	case "close_result":
		err = machine.CloseResult()
	case "view_history":
		err = machine.ViewHistory()
	case "back":
		err = machine.Back()
	case "open_settings":
		err = machine.OpenSettings()
	case "set_theme":
		var payload struct {
			Theme models.Theme `json:"theme"`
		}
		if err = json.Unmarshal(data, &payload); err == nil {
			err = machine.SetTheme(ctx, payload.Theme)
		}
	case "set_diet":
		var payload struct {
			Diet string `json:"diet"`
		}
		if err = json.Unmarshal(data, &payload); err == nil {
			err = machine.SetDiet(ctx, payload.Diet)
		}
	case "logout":
		err = machine.Logout(ctx)
	case "dismiss_error":
		machine.DismissError()
	case "retry_scan":
		err = machine.RetryScan()
	default:
		s.sendError(conn, "Unknown message type")
		return
	}

	if err != nil {
		log.Printf("Rejected %q: %v", msgType, err)
		s.sendError(conn, "Invalid request")
		return
	}
	s.sendState(conn, machine)
}

func (s *Server) handleSubmit(ctx context.Context, conn *websocket.Conn, machine *app.Machine, data json.RawMessage) {
	var payload struct {
		Image string `json:"image"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		s.sendError(conn, "Invalid image data")
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(payload.Image)
	if err != nil {
		log.Printf("Error decoding image: %v", err)
		s.sendError(conn, "Invalid image format")
		return
	}

	// Push the processing frame before the blocking round trip so the
	// client can show its indicator while the call is pending.
	s.sendMessage(conn, "state", map[string]any{"state": app.StateProcessing.String()})

	if err := machine.SubmitImage(ctx, imageData); err != nil {
		log.Printf("Rejected submit_image: %v", err)
		s.sendError(conn, "Invalid request")
		return
	}
	s.sendState(conn, machine)
}

// sendState pushes a full view snapshot: active state, profile, result
// payload and the error banner overlay.
func (s *Server) sendState(conn *websocket.Conn, machine *app.Machine) {
	snapshot := map[string]any{
		"state": machine.State().String(),
	}
	if u := machine.User(); u != nil {
		snapshot["user"] = u
	}
	if r := machine.Result(); r != nil {
		snapshot["result"] = r
	}
	if b := machine.Banner(); b != "" {
		snapshot["error"] = b
	}
	s.sendMessage(conn, "state", snapshot)
}

func (s *Server) sendMessage(conn *websocket.Conn, messageType string, data any) {
	msg := map[string]any{
		"type": messageType,
		"data": data,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Println("Error sending message:", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, message string) {
	msg := map[string]any{
		"type":    "error",
		"message": message,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Println("Error sending error message:", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
